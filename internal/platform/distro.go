package platform

import (
	"path"
	"strings"

	"github.com/distribution/reference"

	"github.com/boxbuddy/boxbuddy/internal/model"
)

// DistroInfo describes a distribution the UI knows how to badge
type DistroInfo struct {
	ID          string
	DisplayName string
	aliases     []string
}

// KnownDistros is matched in order, so more specific aliases come first
// ("ubuntu" must win over the "ubi" alias of rhel).
var KnownDistros = []DistroInfo{
	{ID: "ubuntu", DisplayName: "Ubuntu", aliases: []string{"ubuntu"}},
	{ID: "fedora", DisplayName: "Fedora", aliases: []string{"fedora"}},
	{ID: "debian", DisplayName: "Debian", aliases: []string{"debian"}},
	{ID: "arch", DisplayName: "Arch Linux", aliases: []string{"arch"}},
	{ID: "manjaro", DisplayName: "Manjaro", aliases: []string{"manjaro"}},
	{ID: "opensuse", DisplayName: "openSUSE", aliases: []string{"opensuse", "suse", "tumbleweed", "leap"}},
	{ID: "alpine", DisplayName: "Alpine", aliases: []string{"alpine"}},
	{ID: "almalinux", DisplayName: "AlmaLinux", aliases: []string{"alma"}},
	{ID: "rocky", DisplayName: "Rocky Linux", aliases: []string{"rocky"}},
	{ID: "centos", DisplayName: "CentOS", aliases: []string{"centos"}},
	{ID: "rhel", DisplayName: "Red Hat", aliases: []string{"rhel", "ubi"}},
	{ID: "amazonlinux", DisplayName: "Amazon Linux", aliases: []string{"amazon"}},
	{ID: "gentoo", DisplayName: "Gentoo", aliases: []string{"gentoo"}},
	{ID: "void", DisplayName: "Void", aliases: []string{"void"}},
	{ID: "kali", DisplayName: "Kali", aliases: []string{"kali"}},
	{ID: "mint", DisplayName: "Linux Mint", aliases: []string{"mint"}},
	{ID: "nixos", DisplayName: "NixOS", aliases: []string{"nixos", "nix"}},
	{ID: "deepin", DisplayName: "Deepin", aliases: []string{"deepin"}},
	{ID: "slackware", DisplayName: "Slackware", aliases: []string{"slackware"}},
	{ID: "clearlinux", DisplayName: "Clear Linux", aliases: []string{"clear"}},
	{ID: "vanilla", DisplayName: "Vanilla OS", aliases: []string{"vanilla"}},
	{ID: "wolfi", DisplayName: "Wolfi", aliases: []string{"wolfi", "chainguard"}},
}

// DistroFromImage derives a distro id from an image reference such as
// "registry.fedoraproject.org/fedora-toolbox:38". Only the repository name
// is inspected so registry hosts do not produce false matches.
func DistroFromImage(image string) string {
	repo := imageRepository(image)
	if repo == "" {
		return model.UnknownDistro
	}
	for _, d := range KnownDistros {
		for _, alias := range d.aliases {
			if strings.Contains(repo, alias) {
				return d.ID
			}
		}
	}
	return model.UnknownDistro
}

// LookupDistro returns the entry for an id
func LookupDistro(id string) (DistroInfo, bool) {
	for _, d := range KnownDistros {
		if d.ID == id {
			return d, true
		}
	}
	return DistroInfo{}, false
}

// imageRepository strips registry, namespace, tag and digest. References
// the registry grammar rejects are trimmed by hand.
func imageRepository(image string) string {
	image = strings.TrimSpace(image)
	if named, err := reference.ParseNormalizedNamed(image); err == nil {
		return path.Base(reference.Path(named))
	}

	ref := strings.ToLower(image)
	if i := strings.Index(ref, "@"); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	if i := strings.Index(ref, ":"); i >= 0 {
		ref = ref[:i]
	}
	return ref
}
