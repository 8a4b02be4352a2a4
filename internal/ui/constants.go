package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconAdd      = "＋"
	IconRefresh  = "⟳"
	IconAbout    = "?"
	IconClose    = "×"
	IconTerminal = "⌨"
	IconUpgrade  = "⬆"
	IconApps     = "▦"
	IconDelete   = "🗑️"
	IconHistory  = "☰"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Window and layout sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 450

	PageBadgeSize  float32 = 64
	DialogMinWidth float32 = 420
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 64
	ToastMargin   float32 = 20
	ToastAutoHide         = 4 * time.Second
)
