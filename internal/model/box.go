package model

import "strings"

// UnknownDistro is used when an image reference matches no known distribution
const UnknownDistro = "unknown"

// runningPrefix is how the tool reports a started container ("Up 2 hours")
const runningPrefix = "up"

// Box represents a single managed container as reported by the registry
type Box struct {
	ID     string // container id column
	Name   string // unique key for every action
	Status string // free text, displayed verbatim
	Image  string // image reference the box was created from
	Distro string // identifier used to pick a badge, not unique
}

// IsRunning reports whether the status string describes a started container.
// It is only used for styling; the status itself is never interpreted further.
func (b Box) IsRunning() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(b.Status)), runningPrefix)
}

// DisplayStatus returns the status or a dash when the tool printed nothing
func (b Box) DisplayStatus() string {
	if strings.TrimSpace(b.Status) == "" {
		return "—"
	}
	return b.Status
}
