package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/boxbuddy/boxbuddy/internal/model"
)

// Distrobox executable and subcommands
const (
	DistroboxCommand  = "distrobox"
	ListSubcommand    = "list"
	CreateSubcommand  = "create"
	RemoveSubcommand  = "rm"
	UpgradeSubcommand = "upgrade"
	EnterSubcommand   = "enter"
)

// Distrobox flags
const (
	NoColorFlag = "--no-color"
	ForceFlag   = "--force"
	NameFlag    = "--name"
	ImageFlag   = "--image"
)

// List output layout: ID | NAME | STATUS | IMAGE
const (
	ListFieldSeparator = "|"
	ListFieldCount     = 4

	listFieldID     = 0
	listFieldName   = 1
	listFieldStatus = 2
	listFieldImage  = 3

	listHeaderID   = "ID"
	listHeaderName = "NAME"
)

// ErrToolUnavailable means the distrobox executable could not be found or launched
var ErrToolUnavailable = errors.New("distrobox not found")

// ParseError describes a list line that was skipped
type ParseError struct {
	Line   int // 1-based line number in the tool output
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Distrobox wraps the distrobox CLI
type Distrobox struct {
	tool   string
	runner Runner
}

// NewDistrobox creates a wrapper for the given executable. An empty tool
// means "distrobox" on PATH; a nil runner means os/exec.
func NewDistrobox(tool string, runner Runner) *Distrobox {
	if strings.TrimSpace(tool) == "" {
		tool = DistroboxCommand
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Distrobox{tool: tool, runner: runner}
}

// Tool returns the executable name or path
func (d *Distrobox) Tool() string {
	return d.tool
}

// Runner returns the runner used for invocations
func (d *Distrobox) Runner() Runner {
	return d.runner
}

// IsInstalled checks whether the executable is on the search path
func (d *Distrobox) IsInstalled() bool {
	_, err := d.runner.LookPath(d.tool)
	return err == nil
}

// ListBoxes reads the registry. Malformed lines are logged and skipped.
func (d *Distrobox) ListBoxes(ctx context.Context) ([]model.Box, error) {
	out, err := d.runner.Output(ctx, d.tool, d.ListArgs()...)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w", ErrToolUnavailable, err)
		}
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}

	boxes, skipped := ParseList(string(out))
	for _, perr := range skipped {
		log.Printf("Skipping distrobox list entry: %v", perr)
	}
	return boxes, nil
}

// Remove deletes a box. Callers are responsible for confirming first.
func (d *Distrobox) Remove(ctx context.Context, name string) error {
	return d.runner.Run(ctx, d.tool, d.RemoveArgs(name)...)
}

// Upgrade upgrades the packages inside a box and blocks until done
func (d *Distrobox) Upgrade(ctx context.Context, name string) error {
	return d.runner.Run(ctx, d.tool, d.UpgradeArgs(name)...)
}

// ListArgs builds the arguments for the list subcommand
func (d *Distrobox) ListArgs() []string {
	return []string{ListSubcommand, NoColorFlag}
}

// RemoveArgs builds the arguments for deleting a box
func (d *Distrobox) RemoveArgs(name string) []string {
	return []string{RemoveSubcommand, ForceFlag, name}
}

// UpgradeArgs builds the arguments for upgrading a box
func (d *Distrobox) UpgradeArgs(name string) []string {
	return []string{UpgradeSubcommand, name}
}

// EnterCommand builds the full command line that opens a shell in a box
func (d *Distrobox) EnterCommand(name string) []string {
	return []string{d.tool, EnterSubcommand, name}
}

// CreateCommand builds the full command line that creates a box. The tool
// prompts interactively (image pull confirmation), so it is meant to run
// inside a terminal.
func (d *Distrobox) CreateCommand(name, image string) []string {
	cmd := []string{d.tool, CreateSubcommand, NameFlag, name}
	if image = strings.TrimSpace(image); image != "" {
		cmd = append(cmd, ImageFlag, image)
	}
	return cmd
}

// ParseList parses `distrobox list --no-color` output into boxes, in input
// order. Lines that cannot be parsed are returned as ParseErrors.
func ParseList(output string) ([]model.Box, []*ParseError) {
	var boxes []model.Box
	var skipped []*ParseError
	seen := make(map[string]bool)
	headerChecked := false

	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ListFieldSeparator)
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}

		if !headerChecked {
			headerChecked = true
			if isListHeader(fields) {
				continue
			}
		}

		lineNo := i + 1
		if len(fields) < ListFieldCount {
			skipped = append(skipped, &ParseError{Line: lineNo, Text: line, Reason: "too few fields"})
			continue
		}

		name := fields[listFieldName]
		if name == "" {
			skipped = append(skipped, &ParseError{Line: lineNo, Text: line, Reason: "empty name"})
			continue
		}
		if seen[name] {
			skipped = append(skipped, &ParseError{Line: lineNo, Text: line, Reason: "duplicate name"})
			continue
		}
		seen[name] = true

		image := fields[listFieldImage]
		boxes = append(boxes, model.Box{
			ID:     fields[listFieldID],
			Name:   name,
			Status: fields[listFieldStatus],
			Image:  image,
			Distro: DistroFromImage(image),
		})
	}

	return boxes, skipped
}

func isListHeader(fields []string) bool {
	return len(fields) > listFieldName &&
		strings.EqualFold(fields[listFieldID], listHeaderID) &&
		strings.EqualFold(fields[listFieldName], listHeaderName)
}
