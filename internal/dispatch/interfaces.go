package dispatch

import (
	"context"

	"github.com/boxbuddy/boxbuddy/internal/model"
)

// Registry reads the current set of boxes
type Registry interface {
	IsInstalled() bool
	ListBoxes(ctx context.Context) ([]model.Box, error)
}

// Dispatcher performs actions on boxes
type Dispatcher interface {
	// Perform runs an action for a named box and blocks until the tool
	// exits, except for detached actions which return once launched
	Perform(ctx context.Context, action model.Action, box string) error

	// Create hands box creation off to a terminal
	Create(ctx context.Context, opts CreateOptions) error
}

// CreateOptions describes a box to create
type CreateOptions struct {
	Name  string
	Image string // optional, the tool picks its default when empty
}
