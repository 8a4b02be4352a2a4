package model

import "testing"

func TestAction_String(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionCreate, "create"},
		{ActionDelete, "delete"},
		{ActionUpgrade, "upgrade"},
		{ActionOpenTerminal, "open-terminal"},
		{ActionShowApplications, "show-applications"},
		{Action(42), "unknown"},
	}

	for _, test := range tests {
		if result := test.action.String(); result != test.expected {
			t.Errorf("Action(%d).String() = %s, expected %s", test.action, result, test.expected)
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, action := range Actions {
		parsed, ok := ParseAction(action.String())
		if !ok || parsed != action {
			t.Errorf("ParseAction(%q) = %v, %v", action.String(), parsed, ok)
		}
	}

	if _, ok := ParseAction("reboot"); ok {
		t.Error("expected unknown action name to fail")
	}
}

func TestAction_Flags(t *testing.T) {
	tests := []struct {
		action      Action
		destructive bool
		detached    bool
		changes     bool
	}{
		{ActionCreate, false, true, true},
		{ActionDelete, true, false, true},
		{ActionUpgrade, false, false, false},
		{ActionOpenTerminal, false, true, false},
		{ActionShowApplications, false, false, false},
	}

	for _, test := range tests {
		if got := test.action.IsDestructive(); got != test.destructive {
			t.Errorf("%s.IsDestructive() = %v, expected %v", test.action, got, test.destructive)
		}
		if got := test.action.IsDetached(); got != test.detached {
			t.Errorf("%s.IsDetached() = %v, expected %v", test.action, got, test.detached)
		}
		if got := test.action.ChangesRegistry(); got != test.changes {
			t.Errorf("%s.ChangesRegistry() = %v, expected %v", test.action, got, test.changes)
		}
	}
}
