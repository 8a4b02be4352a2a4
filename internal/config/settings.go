package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyToolPath          = "tool_path"
	KeyTerminal          = "terminal"
	KeyLanguage          = "app_language"
	KeyBackgroundActions = "background_actions"
)

// Default values
const (
	DefaultToolPath          = platform.DistroboxCommand
	DefaultTerminal          = TerminalAuto
	DefaultLanguage          = "system"
	DefaultBackgroundActions = true
)

// TerminalAuto picks the first installed known terminal
const TerminalAuto = "auto"

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetToolPath returns the distrobox executable name or path
func (s *Settings) GetToolPath() string {
	tool := strings.TrimSpace(s.app.Preferences().String(KeyToolPath))
	if tool == "" {
		s.SetToolPath(DefaultToolPath)
		return DefaultToolPath
	}
	return tool
}

// SetToolPath sets the distrobox executable
func (s *Settings) SetToolPath(tool string) {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		tool = DefaultToolPath
	}
	s.app.Preferences().SetString(KeyToolPath, tool)
}

// GetTerminal returns the configured terminal emulator or TerminalAuto
func (s *Settings) GetTerminal() string {
	term := strings.TrimSpace(s.app.Preferences().String(KeyTerminal))
	if term == "" {
		s.SetTerminal(DefaultTerminal)
		return DefaultTerminal
	}
	return term
}

// SetTerminal sets the terminal emulator
func (s *Settings) SetTerminal(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		term = DefaultTerminal
	}
	s.app.Preferences().SetString(KeyTerminal, term)
}

// PreferredTerminal returns the terminal for the dispatcher, empty for auto
func (s *Settings) PreferredTerminal() string {
	term := s.GetTerminal()
	if term == TerminalAuto {
		return ""
	}
	return term
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetBackgroundActions returns whether blocking actions run off the UI thread
func (s *Settings) GetBackgroundActions() bool {
	return s.app.Preferences().BoolWithFallback(KeyBackgroundActions, DefaultBackgroundActions)
}

// SetBackgroundActions sets whether blocking actions run off the UI thread
func (s *Settings) SetBackgroundActions(background bool) {
	s.app.Preferences().SetBool(KeyBackgroundActions, background)
}

// GetTerminalOptions returns the choices offered in the settings dialog
func (s *Settings) GetTerminalOptions() []string {
	return append([]string{TerminalAuto}, platform.TerminalNames()...)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
