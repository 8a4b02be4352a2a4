package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boxbuddy/boxbuddy/internal/model"
	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// ErrEmptyBoxName is returned for actions without a target box
var ErrEmptyBoxName = errors.New("box name is empty")

// ErrInvalidBoxName is returned for names distrobox would read as an option
var ErrInvalidBoxName = errors.New("box name must not start with '-'")

// CheckBoxName reports whether name can be passed to distrobox as a box
func CheckBoxName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrEmptyBoxName
	case strings.HasPrefix(name, "-"):
		return ErrInvalidBoxName
	}
	return nil
}

func invalidName(action model.Action, box string, err error) *ActionFailedError {
	return &ActionFailedError{Action: action, Box: strings.TrimSpace(box), Detail: err.Error(), Err: err}
}

// ActionFailedError reports a failed invocation for a box
type ActionFailedError struct {
	Action model.Action
	Box    string
	Detail string // trimmed stderr or the launch error
	Err    error
}

func (e *ActionFailedError) Error() string {
	if e.Box == "" {
		return fmt.Sprintf("%s failed: %s", e.Action, e.Detail)
	}
	return fmt.Sprintf("%s %q failed: %s", e.Action, e.Box, e.Detail)
}

func (e *ActionFailedError) Unwrap() error {
	return e.Err
}

// newActionFailed wraps err, preferring captured stderr as the detail
func newActionFailed(action model.Action, box string, err error) *ActionFailedError {
	detail := err.Error()
	var cmdErr *platform.CommandError
	if errors.As(err, &cmdErr) && strings.TrimSpace(cmdErr.Stderr) != "" {
		detail = strings.TrimSpace(cmdErr.Stderr)
	}
	return &ActionFailedError{Action: action, Box: box, Detail: detail, Err: err}
}
