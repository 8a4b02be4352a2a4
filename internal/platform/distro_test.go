package platform

import "testing"

func TestDistroFromImage(t *testing.T) {
	tests := []struct {
		image    string
		expected string
	}{
		{"registry.fedoraproject.org/fedora-toolbox:39", "fedora"},
		{"quay.io/toolbx/ubuntu-toolbox:22.04", "ubuntu"},
		{"docker.io/library/archlinux:latest", "arch"},
		{"quay.io/toolbx/arch-toolbox", "arch"},
		{"docker.io/library/debian:stable-backports", "debian"},
		{"registry.opensuse.org/opensuse/tumbleweed:latest", "opensuse"},
		{"registry.access.redhat.com/ubi9/ubi", "rhel"},
		{"quay.io/rockylinux/rockylinux:9", "rocky"},
		{"docker.io/almalinux/9-init", "unknown"},
		{"docker.io/almalinux/almalinux:9", "almalinux"},
		{"cgr.dev/chainguard/wolfi-base", "wolfi"},
		{"docker.io/library/alpine@sha256:deadbeef", "alpine"},
		{"ALPINE", "alpine"},
		{"ghcr.io/example/custom-image:1", "unknown"},
		{"", "unknown"},
	}

	for _, test := range tests {
		if result := DistroFromImage(test.image); result != test.expected {
			t.Errorf("DistroFromImage(%q) = %q, expected %q", test.image, result, test.expected)
		}
	}
}

func TestImageRepository(t *testing.T) {
	tests := []struct {
		image    string
		expected string
	}{
		{"registry.fedoraproject.org/fedora-toolbox:39", "fedora-toolbox"},
		{"localhost:5000/arch", "arch"},
		{"ubuntu", "ubuntu"},
		{"alpine@sha256:abc", "alpine"},
	}

	for _, test := range tests {
		if result := imageRepository(test.image); result != test.expected {
			t.Errorf("imageRepository(%q) = %q, expected %q", test.image, result, test.expected)
		}
	}
}

func TestLookupDistro(t *testing.T) {
	d, ok := LookupDistro("fedora")
	if !ok || d.DisplayName != "Fedora" {
		t.Errorf("LookupDistro(fedora) = %+v, %v", d, ok)
	}
	if _, ok := LookupDistro("unknown"); ok {
		t.Error("unknown should not be a known distro")
	}
}
