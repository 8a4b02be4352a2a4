package ui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/boxbuddy/boxbuddy/internal/model"
	"github.com/boxbuddy/boxbuddy/internal/platform"
)

// badgeStyle is the colour and glyph drawn for a distro
type badgeStyle struct {
	Color string
	Glyph string
}

var distroBadges = map[string]badgeStyle{
	"ubuntu":      {"#E95420", "U"},
	"fedora":      {"#3C6EB4", "F"},
	"debian":      {"#A80030", "D"},
	"arch":        {"#1793D1", "A"},
	"manjaro":     {"#35BF5C", "M"},
	"opensuse":    {"#73BA25", "S"},
	"alpine":      {"#0D597F", "Al"},
	"almalinux":   {"#0F4266", "Al"},
	"rocky":       {"#10B981", "R"},
	"centos":      {"#932279", "C"},
	"rhel":        {"#EE0000", "RH"},
	"amazonlinux": {"#FF9900", "Az"},
	"gentoo":      {"#54487A", "G"},
	"void":        {"#478061", "V"},
	"kali":        {"#2777FF", "K"},
	"mint":        {"#86BE43", "Mi"},
	"nixos":       {"#5277C3", "N"},
	"deepin":      {"#0050FF", "Dp"},
	"slackware":   {"#000000", "Sl"},
	"clearlinux":  {"#56BBE6", "CL"},
	"vanilla":     {"#F4C20D", "Va"},
	"wolfi":       {"#4445E7", "W"},
}

var unknownBadge = badgeStyle{"#757575", "?"}

var (
	badgeCacheMu sync.Mutex
	badgeCache   = make(map[string]fyne.Resource)
)

// DistroBadge returns an SVG badge for a distro id. Unknown ids share one
// neutral badge.
func DistroBadge(distro string) fyne.Resource {
	style, ok := distroBadges[distro]
	if !ok {
		distro = model.UnknownDistro
		style = unknownBadge
	}

	badgeCacheMu.Lock()
	defer badgeCacheMu.Unlock()
	if res, ok := badgeCache[distro]; ok {
		return res
	}

	res := fyne.NewStaticResource("distro-"+distro+".svg", []byte(badgeSVG(style)))
	badgeCache[distro] = res
	return res
}

// DistroDisplayName returns a readable name for a distro id
func DistroDisplayName(distro string) string {
	if d, ok := platform.LookupDistro(distro); ok {
		return d.DisplayName
	}
	return strings.ToUpper(distro[:min(1, len(distro))]) + distro[min(1, len(distro)):]
}

func badgeSVG(style badgeStyle) string {
	fontSize := 30
	if len([]rune(style.Glyph)) > 1 {
		fontSize = 24
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64">`+
		`<circle cx="32" cy="32" r="30" fill="%s"/>`+
		`<text x="32" y="42" font-family="sans-serif" font-size="%d" font-weight="bold" fill="#FFFFFF" text-anchor="middle">%s</text>`+
		`</svg>`, style.Color, fontSize, style.Glyph)
}
