// Package ui contains the Fyne-based desktop user interface.
// It renders one tab per box, wires the per-box action rows to the
// dispatch controller and turns results into toasts. All UI strings are
// localized via Localization.
package ui
