package model

import "testing"

func TestBox_IsRunning(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{"Up 2 hours", true},
		{"up 5 minutes", true},
		{"  Up About a minute", true},
		{"Exited (0) 3 days ago", false},
		{"Created", false},
		{"", false},
	}

	for _, test := range tests {
		box := Box{Name: "b", Status: test.status}
		if result := box.IsRunning(); result != test.expected {
			t.Errorf("Box{Status: %q}.IsRunning() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestBox_DisplayStatus(t *testing.T) {
	if got := (Box{Status: "Exited (0)"}).DisplayStatus(); got != "Exited (0)" {
		t.Errorf("DisplayStatus() = %q, expected status verbatim", got)
	}
	if got := (Box{Status: "  "}).DisplayStatus(); got != "—" {
		t.Errorf("DisplayStatus() = %q, expected dash placeholder", got)
	}
}
