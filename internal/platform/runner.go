package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os/exec"
	"strings"
)

// Runner abstracts process execution so callers never build shell strings.
// Every argument is handed to the process as its own argv element.
type Runner interface {
	// LookPath searches PATH for an executable
	LookPath(file string) (string, error)
	// Output runs a command to completion and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs a command to completion discarding stdout
	Run(ctx context.Context, name string, args ...string) error
	// Start launches a command without waiting for it
	Start(name string, args ...string) error
}

// CommandError describes a failed external invocation
type CommandError struct {
	Name     string
	Args     []string
	ExitCode int // -1 when the process never started
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", cmdline, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", cmdline, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the executable could not be located
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// NewExecRunner returns the default runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// LookPath implements Runner
func (r *ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Output implements Runner
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, newCommandError(name, args, err, stderr.String())
	}
	return out, nil
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return newCommandError(name, args, err, stderr.String())
	}
	return nil
}

// Start implements Runner. The child is reaped in the background and its
// exit status is only logged.
func (r *ExecRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return newCommandError(name, args, err, "")
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("Detached process %s exited: %v", name, err)
		}
	}()
	return nil
}

func newCommandError(name string, args []string, err error, stderr string) *CommandError {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &CommandError{
		Name:     name,
		Args:     append([]string(nil), args...),
		ExitCode: exitCode,
		Stderr:   strings.TrimSpace(stderr),
		Err:      err,
	}
}
