// Package theme holds the EduPlay palette and shared styles.
// The palette flips between a dark and a light variant; the voice
// command "dark mode on/off" and the settings toggle both land here.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

type palette struct {
	primary   color.Color
	secondary color.Color
	accent    color.Color
	success   color.Color
	err       color.Color
	text      color.Color
	textDim   color.Color
	bgCard    color.Color
	border    color.Color
}

// Bright, kid-friendly colors on a deep navy background.
var darkPalette = palette{
	primary:   lipgloss.Color("#A78BFA"), // Soft Purple
	secondary: lipgloss.Color("#2DD4BF"), // Teal
	accent:    lipgloss.Color("#FBBF24"), // Amber
	success:   lipgloss.Color("#34D399"), // Emerald
	err:       lipgloss.Color("#FB7185"), // Rose
	text:      lipgloss.Color("#F8FAFC"), // White
	textDim:   lipgloss.Color("#94A3B8"), // Slate
	bgCard:    lipgloss.Color("#1E293B"), // Dark Slate
	border:    lipgloss.Color("#334155"), // Slate
}

var lightPalette = palette{
	primary:   lipgloss.Color("#7C3AED"), // Violet
	secondary: lipgloss.Color("#0D9488"), // Teal
	accent:    lipgloss.Color("#D97706"), // Amber
	success:   lipgloss.Color("#059669"), // Emerald
	err:       lipgloss.Color("#E11D48"), // Rose
	text:      lipgloss.Color("#0F172A"), // Navy
	textDim:   lipgloss.Color("#64748B"), // Slate
	bgCard:    lipgloss.Color("#E2E8F0"), // Light Slate
	border:    lipgloss.Color("#CBD5E1"), // Slate
}

// Colors
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

var darkMode = true

func init() {
	apply(darkPalette)
}

// DarkMode reports the active variant.
func DarkMode() bool {
	return darkMode
}

// SetDarkMode switches the palette. Styles are rebuilt; views pick
// them up on the next render.
func SetDarkMode(enabled bool) {
	if darkMode == enabled {
		return
	}
	darkMode = enabled
	if enabled {
		apply(darkPalette)
	} else {
		apply(lightPalette)
	}
}

func apply(p palette) {
	Primary = p.primary
	Secondary = p.secondary
	Accent = p.accent
	Success = p.success
	Error = p.err
	Text = p.text
	TextDim = p.textDim
	BgCard = p.bgCard
	Border = p.border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
}
