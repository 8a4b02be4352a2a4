package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/boxbuddy/boxbuddy/internal/dispatch"
	"github.com/boxbuddy/boxbuddy/internal/model"
)

// rowActions are the per-box actions, in display order
var rowActions = []model.Action{
	model.ActionOpenTerminal,
	model.ActionUpgrade,
	model.ActionShowApplications,
	model.ActionDelete,
}

// BoxTab is the page shown for one box
type BoxTab struct {
	box          model.Box
	localization *Localization
	onAction     func(model.Action, dispatch.RowContext)

	content    fyne.CanvasObject
	statusText *canvas.Text
	buttons    map[model.Action]*widget.Button
}

// NewBoxTab builds the page for box. onAction receives the row context
// bound to this box.
func NewBoxTab(box model.Box, localization *Localization, onAction func(model.Action, dispatch.RowContext)) *BoxTab {
	bt := &BoxTab{
		box:          box,
		localization: localization,
		onAction:     onAction,
		buttons:      make(map[model.Action]*widget.Button),
	}
	bt.createUI()
	return bt
}

func (bt *BoxTab) createUI() {
	badge := canvas.NewImageFromResource(DistroBadge(bt.box.Distro))
	badge.FillMode = canvas.ImageFillContain
	badge.SetMinSize(fyne.NewSize(PageBadgeSize, PageBadgeSize))

	title := canvas.NewText(bt.box.Name, theme.Color(theme.ColorNameForeground))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = theme.Size(theme.SizeNameHeadingText)

	bt.statusText = canvas.NewText(bt.box.DisplayStatus(), theme.Color(StatusColor(bt.box.IsRunning())))
	bt.statusText.TextSize = statusTextSize()

	image := widget.NewLabel(DistroDisplayName(bt.box.Distro) + MiddleDotSeparator + bt.box.Image)
	image.Truncation = fyne.TextTruncateEllipsis

	header := container.NewBorder(nil, nil, badge, nil,
		container.NewVBox(title, bt.statusText, image))

	rows := container.NewVBox()
	for _, action := range rowActions {
		rows.Add(bt.createActionRow(action))
	}

	bt.content = container.NewVBox(
		container.NewPadded(header),
		widget.NewSeparator(),
		rows,
	)
}

func (bt *BoxTab) createActionRow(action model.Action) fyne.CanvasObject {
	label := widget.NewLabel(bt.localization.GetText(actionTextKey(action)))

	row := dispatch.RowContext{Box: bt.box}
	btn := widget.NewButton(actionIcon(action), func() {
		bt.onAction(action, row)
	})
	if action.IsDestructive() {
		btn.Importance = widget.DangerImportance
	} else {
		btn.Importance = widget.LowImportance
	}
	bt.buttons[action] = btn

	return container.NewBorder(nil, nil, nil, btn, label)
}

// Box returns the box this tab was built for
func (bt *BoxTab) Box() model.Box {
	return bt.box
}

// Button returns the button bound to an action
func (bt *BoxTab) Button(action model.Action) *widget.Button {
	return bt.buttons[action]
}

// Content returns the page
func (bt *BoxTab) Content() fyne.CanvasObject {
	return bt.content
}

// TabItem returns a tab with the distro badge and box name
func (bt *BoxTab) TabItem() *container.TabItem {
	return container.NewTabItemWithIcon(bt.box.Name, DistroBadge(bt.box.Distro), container.NewVScroll(bt.content))
}

func actionTextKey(action model.Action) string {
	switch action {
	case model.ActionOpenTerminal:
		return KeyOpenTerminal
	case model.ActionUpgrade:
		return KeyUpgradeBox
	case model.ActionShowApplications:
		return KeyShowApplications
	case model.ActionDelete:
		return KeyDeleteBox
	default:
		return KeyCreateBox
	}
}

func actionIcon(action model.Action) string {
	switch action {
	case model.ActionOpenTerminal:
		return IconTerminal
	case model.ActionUpgrade:
		return IconUpgrade
	case model.ActionShowApplications:
		return IconApps
	case model.ActionDelete:
		return IconDelete
	default:
		return IconAdd
	}
}

// statusTextSize falls back to caption size under themes without the custom name
func statusTextSize() float32 {
	if size := theme.Size(SizeNameStatusText); size > 0 {
		return size
	}
	return theme.Size(theme.SizeNameCaptionText) + 2
}
