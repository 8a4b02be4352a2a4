package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/boxbuddy/boxbuddy/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(toolChanged bool)

	// UI components
	toolEntry        *widget.Entry
	terminalSelect   *widget.SelectEntry
	languageSelect   *widget.Select
	backgroundToggle *widget.Check

	languageCodes map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func(toolChanged bool)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.toolEntry = widget.NewEntry()
	sd.toolEntry.SetPlaceHolder(config.DefaultToolPath)

	// Known terminals are offered but any command may be typed
	sd.terminalSelect = widget.NewSelectEntry(sd.settings.GetTerminalOptions())

	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.backgroundToggle = widget.NewCheck(sd.localization.GetText(KeyBackgroundActions), nil)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyToolPath)+":"),
		sd.toolEntry,

		widget.NewLabel(sd.localization.GetText(KeyTerminal)+":"),
		sd.terminalSelect,

		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,

		sd.backgroundToggle,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogMinWidth*1.2, 0))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.toolEntry.SetText(sd.settings.GetToolPath())
	sd.terminalSelect.SetText(sd.settings.GetTerminal())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.backgroundToggle.SetChecked(sd.settings.GetBackgroundActions())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	previousTool := sd.settings.GetToolPath()
	sd.settings.SetToolPath(sd.toolEntry.Text)
	sd.settings.SetTerminal(sd.terminalSelect.Text)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetBackgroundActions(sd.backgroundToggle.Checked)

	if sd.onSaved != nil {
		sd.onSaved(sd.settings.GetToolPath() != previousTool)
	}
}
