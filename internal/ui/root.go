package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/boxbuddy/boxbuddy/internal/config"
	"github.com/boxbuddy/boxbuddy/internal/dispatch"
	"github.com/boxbuddy/boxbuddy/internal/history"
	"github.com/boxbuddy/boxbuddy/internal/model"
	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// terminalSetter is implemented by dispatchers with a configurable terminal
type terminalSetter interface {
	SetTerminal(terminal string)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	registry     dispatch.Registry
	dispatcher   dispatch.Dispatcher
	controller   *dispatch.Controller
	settings     *config.Settings
	localization *Localization
	toaster      *Toaster
	history      history.Store

	// Header toolbar
	createBtn   *widget.Button
	refreshBtn  *widget.Button
	historyBtn  *widget.Button
	settingsBtn *widget.Button
	aboutBtn    *widget.Button

	body *fyne.Container
	tabs *container.AppTabs

	// Current snapshot, replaced wholesale on refresh. UI goroutine only.
	boxes    []model.Box
	boxTabs  []*BoxTab
	notFound bool

	// deliver hands results from workers to the UI goroutine. execute is
	// only read and written on the UI goroutine.
	deliver func(func())
	execute dispatch.Executor
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, registry dispatch.Registry, dispatcher dispatch.Dispatcher) *RootUI {
	return newRootUI(window, app, registry, dispatcher, fyne.Do)
}

func newRootUI(window fyne.Window, app fyne.App, registry dispatch.Registry, dispatcher dispatch.Dispatcher, deliver func(func())) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		registry:     registry,
		dispatcher:   dispatcher,
		settings:     settings,
		localization: localization,
		toaster:      NewToaster(window.Canvas()),
		deliver:      deliver,
	}

	ui.controller = dispatch.NewController(dispatcher, &uiNotifier{ui: ui})
	ui.controller.SetConfirmer(ui.confirmDelete)
	ui.controller.SetOnChanged(ui.Refresh)
	ui.applySettings()

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.setupUI()
	ui.Refresh()
	return ui
}

// SetHistory enables the history button
func (ui *RootUI) SetHistory(store history.Store) {
	ui.history = store
	if store != nil {
		ui.historyBtn.Show()
	} else {
		ui.historyBtn.Hide()
	}
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.createBtn = widget.NewButton(IconAdd, ui.onCreateClick)
	ui.refreshBtn = widget.NewButton(IconRefresh, ui.Refresh)
	ui.historyBtn = widget.NewButton(IconHistory, ui.onShowHistory)
	ui.historyBtn.Hide()
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.aboutBtn = widget.NewButton(IconAbout, ui.onShowAbout)
	for _, btn := range []*widget.Button{ui.createBtn, ui.refreshBtn, ui.historyBtn, ui.settingsBtn, ui.aboutBtn} {
		btn.Importance = widget.LowImportance
	}

	title := widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	header := container.NewBorder(nil, nil,
		container.NewHBox(ui.createBtn, ui.refreshBtn),
		container.NewHBox(ui.historyBtn, ui.settingsBtn, ui.aboutBtn),
		title,
	)

	ui.body = container.NewStack()
	content := container.NewBorder(
		container.NewVBox(header, widget.NewSeparator()), // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		ui.body, // center
	)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	createItem := fyne.NewMenuItem(ui.localization.GetText(KeyCreateBox), ui.onCreateClick)
	refreshItem := fyne.NewMenuItem(ui.localization.GetText(KeyRefresh), ui.Refresh)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyAppTitle), createItem, refreshItem, settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts rebuilds everything that carries localized text
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.createMenu()
	ui.renderCurrent()
}

// applySettings pushes stored settings into the dispatcher and controller
func (ui *RootUI) applySettings() {
	if ts, ok := ui.dispatcher.(terminalSetter); ok {
		ts.SetTerminal(ui.settings.PreferredTerminal())
	}

	if ui.settings.GetBackgroundActions() {
		ui.execute = dispatch.DeliverOn(ui.deliver)
	} else {
		ui.execute = dispatch.SyncExecutor
	}
	ui.controller.SetExecutor(ui.execute)
}

// Refresh re-reads the registry and rebuilds the tabs
func (ui *RootUI) Refresh() {
	if !ui.registry.IsInstalled() {
		log.Printf("Distrobox is not installed, showing not found page")
		ui.notFound = true
		ui.boxes = nil
		ui.renderCurrent()
		return
	}

	var boxes []model.Box
	var err error
	ui.execute(func() {
		boxes, err = ui.registry.ListBoxes(context.Background())
	}, func() {
		ui.applyBoxes(boxes, err)
	})
}

// applyBoxes replaces the snapshot. UI goroutine only.
func (ui *RootUI) applyBoxes(boxes []model.Box, err error) {
	if err != nil {
		log.Printf("Failed to list boxes: %v", err)
		if errors.Is(err, platform.ErrToolUnavailable) {
			ui.notFound = true
			ui.boxes = nil
			ui.renderCurrent()
			return
		}
		ui.toaster.Show(ui.localization.GetText(KeyListFailed)+": "+err.Error(), true)
		return
	}

	log.Printf("Loaded %d boxes", len(boxes))
	ui.notFound = false
	ui.boxes = boxes
	ui.renderCurrent()
}

// renderCurrent rebuilds the body from the current snapshot
func (ui *RootUI) renderCurrent() {
	if ui.body == nil {
		return
	}

	if ui.notFound {
		ui.createBtn.Disable()
		ui.refreshBtn.Enable()
		ui.tabs = nil
		ui.boxTabs = nil
		ui.body.Objects = []fyne.CanvasObject{ui.notFoundPage()}
		ui.body.Refresh()
		return
	}
	ui.createBtn.Enable()

	if len(ui.boxes) == 0 {
		ui.tabs = nil
		ui.boxTabs = nil
		ui.body.Objects = []fyne.CanvasObject{
			container.NewCenter(widget.NewLabel(ui.localization.GetText(KeyNoBoxes))),
		}
		ui.body.Refresh()
		return
	}

	selected := ""
	if ui.tabs != nil && ui.tabs.Selected() != nil {
		selected = ui.tabs.Selected().Text
	}

	ui.boxTabs = make([]*BoxTab, 0, len(ui.boxes))
	items := make([]*container.TabItem, 0, len(ui.boxes))
	for _, box := range ui.boxes {
		bt := NewBoxTab(box, ui.localization, ui.controller.Handle)
		ui.boxTabs = append(ui.boxTabs, bt)
		items = append(items, bt.TabItem())
	}

	ui.tabs = container.NewAppTabs(items...)
	ui.tabs.SetTabLocation(container.TabLocationLeading)
	for _, item := range items {
		if item.Text == selected {
			ui.tabs.Select(item)
			break
		}
	}

	ui.body.Objects = []fyne.CanvasObject{ui.tabs}
	ui.body.Refresh()
}

func (ui *RootUI) notFoundPage() fyne.CanvasObject {
	title := widget.NewLabelWithStyle(ui.localization.GetText(KeyNotFoundTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	body := widget.NewLabelWithStyle(ui.localization.GetText(KeyNotFoundBody), fyne.TextAlignCenter, fyne.TextStyle{})
	return container.NewCenter(container.NewVBox(title, body))
}

// confirmDelete implements dispatch.Confirmer with a dialog
func (ui *RootUI) confirmDelete(row dispatch.RowContext, respond func(dispatch.Response)) {
	NewDeleteConfirmDialog(ui.window, ui.localization, row.Box.Name, respond).Show()
}

func (ui *RootUI) onCreateClick() {
	NewCreateDialog(ui.window, ui.localization, func(opts dispatch.CreateOptions) {
		ui.controller.Handle(model.ActionCreate, dispatch.RowContext{
			Box: model.Box{Name: opts.Name, Image: opts.Image},
		})
	}).Show()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func(toolChanged bool) {
		ui.applySettings()
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()

		message := ui.localization.GetText(KeySettingsSaved)
		if toolChanged {
			message += ". " + ui.localization.GetText(KeyRestartRequired)
		}
		ui.toaster.Show(message, false)
	}).Show()
}

func (ui *RootUI) onShowAbout() {
	ShowAboutDialog(ui.window, ui.localization)
}

func (ui *RootUI) onShowHistory() {
	if ui.history == nil {
		return
	}
	ShowHistoryDialog(ui.window, ui.localization, ui.history)
}

// Boxes returns the current snapshot
func (ui *RootUI) Boxes() []model.Box {
	return ui.boxes
}

// BoxTab returns the tab for a box name
func (ui *RootUI) BoxTab(name string) (*BoxTab, bool) {
	for _, bt := range ui.boxTabs {
		if bt.Box().Name == name {
			return bt, true
		}
	}
	return nil, false
}

// uiNotifier turns controller events into toasts. Every call arrives on the
// UI goroutine.
type uiNotifier struct {
	ui *RootUI
}

func (n *uiNotifier) Started(action model.Action, row dispatch.RowContext) {
	var key string
	switch action {
	case model.ActionUpgrade:
		key = KeyUpgrading
	case model.ActionDelete:
		key = KeyDeleting
	default:
		return
	}
	n.ui.toaster.Show(fmt.Sprintf("%s%s%s", row.Box.Name, MiddleDotSeparator, n.ui.localization.GetText(key)), false)
}

func (n *uiNotifier) Succeeded(action model.Action, row dispatch.RowContext) {
	var key string
	switch action {
	case model.ActionDelete:
		key = KeyBoxDeleted
	case model.ActionUpgrade:
		key = KeyBoxUpgraded
	case model.ActionOpenTerminal:
		key = KeyTerminalOpened
	case model.ActionCreate:
		key = KeyCreateStarted
	default:
		return
	}
	n.ui.toaster.Show(n.ui.localization.GetText(key), false)
}

func (n *uiNotifier) Failed(action model.Action, row dispatch.RowContext, err error) {
	log.Printf("Action %s failed for %s: %v", action, row.Box.Name, err)

	detail := err.Error()
	var failed *dispatch.ActionFailedError
	if errors.As(err, &failed) {
		detail = failed.Detail
	}
	n.ui.toaster.Show(fmt.Sprintf("%s: %s", n.ui.localization.GetText(KeyActionFailed), detail), true)
}
