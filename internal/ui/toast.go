package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toaster shows transient notifications in the top-right corner of a
// canvas. Only one toast is visible at a time. Show must be called on the
// UI goroutine.
type Toaster struct {
	canvas   fyne.Canvas
	autoHide time.Duration

	mu      sync.Mutex
	current *widget.PopUp
	last    string
}

// NewToaster creates a toaster for the given canvas
func NewToaster(canvas fyne.Canvas) *Toaster {
	return &Toaster{canvas: canvas, autoHide: ToastAutoHide}
}

// Show displays message, replacing any visible toast
func (t *Toaster) Show(message string, isError bool) {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	if isError {
		label.Importance = widget.DangerImportance
	}

	var popup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if popup != nil {
			popup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	popup = widget.NewPopUp(container.NewBorder(nil, nil, nil, closeBtn, label), t.canvas)

	t.mu.Lock()
	if t.current != nil {
		t.current.Hide()
	}
	t.current = popup
	t.last = message
	t.mu.Unlock()

	size := fyne.NewSize(ToastWidth, ToastHeight)
	canvasSize := t.canvas.Size()
	popup.Resize(size)
	popup.Move(fyne.NewPos(canvasSize.Width-size.Width-ToastMargin, ToastMargin))
	popup.Show()

	time.AfterFunc(t.autoHide, func() {
		fyne.Do(popup.Hide)
	})
}

// Last returns the most recently shown message
func (t *Toaster) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
