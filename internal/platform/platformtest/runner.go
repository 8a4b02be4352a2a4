// Package platformtest provides a recording platform.Runner for tests.
package platformtest

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// Call kinds
const (
	KindLookPath = "lookpath"
	KindOutput   = "output"
	KindRun      = "run"
	KindStart    = "start"
)

// Call is one recorded invocation
type Call struct {
	Kind string
	Name string
	Args []string
}

// Runner records every call and answers from the configured funcs.
// Executables listed in Missing behave as if they were not on PATH.
type Runner struct {
	mu    sync.Mutex
	calls []Call

	Missing    map[string]bool
	OutputFunc func(name string, args []string) ([]byte, error)
	RunFunc    func(name string, args []string) error
	StartFunc  func(name string, args []string) error
}

// New returns a runner where every executable exists and every call succeeds
func New() *Runner {
	return &Runner{Missing: make(map[string]bool)}
}

// Calls returns a copy of all recorded calls
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallsOf returns recorded calls of one kind
func (r *Runner) CallsOf(kind string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// LookPath implements platform.Runner
func (r *Runner) LookPath(file string) (string, error) {
	r.record(KindLookPath, file, nil)
	if r.isMissing(file) {
		return "", notFound(file)
	}
	return "/usr/bin/" + file, nil
}

// Output implements platform.Runner
func (r *Runner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.record(KindOutput, name, args)
	if r.isMissing(name) {
		return nil, launchFailure(name, args)
	}
	if r.OutputFunc == nil {
		return nil, nil
	}
	return r.OutputFunc(name, args)
}

// Run implements platform.Runner
func (r *Runner) Run(_ context.Context, name string, args ...string) error {
	r.record(KindRun, name, args)
	if r.isMissing(name) {
		return launchFailure(name, args)
	}
	if r.RunFunc == nil {
		return nil
	}
	return r.RunFunc(name, args)
}

// Start implements platform.Runner
func (r *Runner) Start(name string, args ...string) error {
	r.record(KindStart, name, args)
	if r.isMissing(name) {
		return launchFailure(name, args)
	}
	if r.StartFunc == nil {
		return nil
	}
	return r.StartFunc(name, args)
}

// ExitError builds the error ExecRunner returns for a nonzero exit
func ExitError(name string, args []string, code int, stderr string) error {
	return &platform.CommandError{
		Name:     name,
		Args:     args,
		ExitCode: code,
		Stderr:   stderr,
		Err:      fmt.Errorf("exit status %d", code),
	}
}

func (r *Runner) record(kind, name string, args []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Kind: kind, Name: name, Args: append([]string(nil), args...)})
}

func (r *Runner) isMissing(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Missing[name]
}

func notFound(name string) error {
	return &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func launchFailure(name string, args []string) error {
	return &platform.CommandError{Name: name, Args: args, ExitCode: -1, Err: notFound(name)}
}
