package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/boxbuddy/boxbuddy/internal/dispatch"
	"github.com/boxbuddy/boxbuddy/internal/history"
)

// HistoryDialogLimit is how many entries the history dialog shows
const HistoryDialogLimit = 50

// Version is shown in the about dialog; main sets it from build flags
var Version = "dev"

// SuggestedImages are offered in the create dialog
var SuggestedImages = []string{
	"registry.fedoraproject.org/fedora-toolbox:latest",
	"quay.io/toolbx/ubuntu-toolbox:latest",
	"quay.io/toolbx/arch-toolbox:latest",
	"docker.io/library/debian:stable",
	"docker.io/library/alpine:latest",
	"registry.opensuse.org/opensuse/tumbleweed:latest",
}

var errBoxNameSpaces = errors.New("name must not contain spaces")

// validateBoxName rejects names distrobox would refuse or read as an option
func validateBoxName(name string) error {
	if err := dispatch.CheckBoxName(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, " \t\n") {
		return errBoxNameSpaces
	}
	return nil
}

// NewDeleteConfirmDialog asks whether boxName should really be deleted.
// Cancel is the default; closing the dialog counts as cancel.
func NewDeleteConfirmDialog(window fyne.Window, localization *Localization, boxName string, respond func(dispatch.Response)) *dialog.ConfirmDialog {
	message := widget.NewLabel(fmt.Sprintf(localization.GetText(KeyConfirmDeleteFormat), boxName))
	message.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustomConfirm(
		localization.GetText(KeyReallyDelete),
		localization.GetText(KeyDelete),
		localization.GetText(KeyCancel),
		message,
		func(confirmed bool) {
			if confirmed {
				respond(dispatch.ResponseDelete)
				return
			}
			respond(dispatch.ResponseCancel)
		},
		window,
	)
	d.SetConfirmImportance(widget.DangerImportance)
	d.Resize(fyne.NewSize(DialogMinWidth, 0))
	return d
}

// NewCreateDialog asks for the name and optional image of a new box
func NewCreateDialog(window fyne.Window, localization *Localization, onCreate func(dispatch.CreateOptions)) dialog.Dialog {
	nameEntry := widget.NewEntry()
	nameEntry.Validator = validateBoxName

	imageEntry := widget.NewSelectEntry(SuggestedImages)
	imageEntry.SetPlaceHolder(localization.GetText(KeyImageHint))

	items := []*widget.FormItem{
		widget.NewFormItem(localization.GetText(KeyBoxName), nameEntry),
		widget.NewFormItem(localization.GetText(KeyImage), imageEntry),
	}

	d := dialog.NewForm(
		localization.GetText(KeyCreateBox),
		localization.GetText(KeyCreate),
		localization.GetText(KeyCancel),
		items,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			onCreate(dispatch.CreateOptions{
				Name:  strings.TrimSpace(nameEntry.Text),
				Image: strings.TrimSpace(imageEntry.Text),
			})
		},
		window,
	)
	d.Resize(fyne.NewSize(DialogMinWidth*1.3, 0))
	return d
}

// ShowAboutDialog shows the application name and version
func ShowAboutDialog(window fyne.Window, localization *Localization) {
	body := fmt.Sprintf("%s %s\n\n%s", localization.GetText(KeyAppTitle), Version, localization.GetText(KeyAboutBody))
	dialog.ShowInformation(localization.GetText(KeyAbout), body, window)
}

// ShowHistoryDialog lists recent actions from store
func ShowHistoryDialog(window fyne.Window, localization *Localization, store history.Store) {
	entries, err := store.List(context.Background(), HistoryDialogLimit)
	if err != nil {
		log.Printf("Failed to load history: %v", err)
		dialog.ShowError(err, window)
		return
	}

	if len(entries) == 0 {
		dialog.ShowInformation(localization.GetText(KeyHistory), localization.GetText(KeyNoHistory), window)
		return
	}

	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(formatHistoryEntry(entries[id]))
		},
	)

	d := dialog.NewCustom(localization.GetText(KeyHistory), localization.GetText(KeyClose), container.NewStack(list), window)
	d.Resize(fyne.NewSize(DialogMinWidth*1.5, DialogMinWidth))
	d.Show()
}

func formatHistoryEntry(e history.Entry) string {
	result := "✓"
	if !e.Success {
		result = "✗ " + e.Detail
	}
	return strings.Join([]string{
		humanize.Time(e.StartedAt),
		e.Action.String(),
		e.Box,
		formatDuration(e.Duration()),
		result,
	}, MiddleDotSeparator)
}

// formatDuration rounds to what a person can read at a glance
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
