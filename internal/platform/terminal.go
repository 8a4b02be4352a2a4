package platform

import (
	"errors"
	"fmt"
	"strings"
)

// defaultExecFlag is used for configured terminals we know nothing about
const defaultExecFlag = "-e"

// ErrNoTerminal means no usable terminal emulator was found
var ErrNoTerminal = errors.New("no supported terminal emulator found")

// Terminal describes how to make a terminal emulator run a command
type Terminal struct {
	Command  string   // executable
	ExecArgs []string // placed between the executable and the command
}

// KnownTerminals are probed in order when none is configured
var KnownTerminals = []Terminal{
	{Command: "gnome-terminal", ExecArgs: []string{"--"}},
	{Command: "ptyxis", ExecArgs: []string{"--"}},
	{Command: "kgx", ExecArgs: []string{"--"}},
	{Command: "konsole", ExecArgs: []string{"-e"}},
	{Command: "tilix", ExecArgs: []string{"-e"}},
	{Command: "xfce4-terminal", ExecArgs: []string{"-x"}},
	{Command: "kitty"},
	{Command: "alacritty", ExecArgs: []string{"-e"}},
	{Command: "foot"},
	{Command: "wezterm", ExecArgs: []string{"start", "--"}},
	{Command: "xterm", ExecArgs: []string{"-e"}},
}

// Argv returns the terminal arguments followed by the command to run
func (t Terminal) Argv(command ...string) []string {
	argv := make([]string, 0, len(t.ExecArgs)+len(command))
	argv = append(argv, t.ExecArgs...)
	return append(argv, command...)
}

// LookupTerminal finds a known terminal by executable name
func LookupTerminal(command string) (Terminal, bool) {
	for _, t := range KnownTerminals {
		if t.Command == command {
			return t, true
		}
	}
	return Terminal{}, false
}

// ParseTerminal turns a configured value into a Terminal. A known name gets
// its usual exec flag; "wezterm start --" style values are split on spaces
// and used verbatim; any other single word gets "-e".
func ParseTerminal(value string) (Terminal, bool) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return Terminal{}, false
	}
	if len(fields) > 1 {
		return Terminal{Command: fields[0], ExecArgs: fields[1:]}, true
	}
	if t, ok := LookupTerminal(fields[0]); ok {
		return t, true
	}
	return Terminal{Command: fields[0], ExecArgs: []string{defaultExecFlag}}, true
}

// ResolveTerminal picks the terminal to launch. A configured terminal must
// exist on PATH; otherwise the first installed known terminal is used.
func ResolveTerminal(preferred string, lookPath func(string) (string, error)) (Terminal, error) {
	if t, ok := ParseTerminal(preferred); ok {
		if _, err := lookPath(t.Command); err != nil {
			return Terminal{}, fmt.Errorf("configured terminal %q: %w", t.Command, err)
		}
		return t, nil
	}

	for _, t := range KnownTerminals {
		if _, err := lookPath(t.Command); err == nil {
			return t, nil
		}
	}
	return Terminal{}, ErrNoTerminal
}

// TerminalNames returns the executables of all known terminals
func TerminalNames() []string {
	names := make([]string, 0, len(KnownTerminals))
	for _, t := range KnownTerminals {
		names = append(names, t.Command)
	}
	return names
}
