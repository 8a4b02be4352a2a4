package model

// Action enumerates what a user can ask for on a box
type Action int

const (
	ActionCreate Action = iota
	ActionDelete
	ActionUpgrade
	ActionOpenTerminal
	ActionShowApplications
)

// Actions lists every variant in display order
var Actions = []Action{
	ActionCreate,
	ActionDelete,
	ActionUpgrade,
	ActionOpenTerminal,
	ActionShowApplications,
}

// String returns the identifier used in logs and the history store
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionDelete:
		return "delete"
	case ActionUpgrade:
		return "upgrade"
	case ActionOpenTerminal:
		return "open-terminal"
	case ActionShowApplications:
		return "show-applications"
	default:
		return "unknown"
	}
}

// ParseAction is the inverse of String
func ParseAction(s string) (Action, bool) {
	for _, a := range Actions {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// IsDestructive returns true for actions that need explicit confirmation
func (a Action) IsDestructive() bool {
	return a == ActionDelete
}

// IsDetached returns true for actions handed off to a separate terminal
// process whose exit is never observed
func (a Action) IsDetached() bool {
	return a == ActionOpenTerminal || a == ActionCreate
}

// ChangesRegistry returns true when the box list should be re-read afterwards
func (a Action) ChangesRegistry() bool {
	return a == ActionDelete || a == ActionCreate
}
