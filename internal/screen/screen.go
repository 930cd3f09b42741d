package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/masumhasan/eduplay/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// Teardowner is an optional interface for screens that own external
// resources (speech captures, media tracks, in-flight provider calls).
// The router calls Teardown exactly once when the screen is left, on
// every exit path.
type Teardowner interface {
	Teardown()
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Tab identifies a bottom-nav destination. Navigating by tab is a total
// function: every tab maps to exactly one screen.
type Tab int

const (
	TabHome Tab = iota
	TabScan
	TabChat
	TabQuiz
	TabRewards
	TabAssistant
)

// String returns the tab label shown in the nav bar.
func (t Tab) String() string {
	switch t {
	case TabHome:
		return "Home"
	case TabScan:
		return "Scan"
	case TabChat:
		return "Chat"
	case TabQuiz:
		return "Quiz"
	case TabRewards:
		return "Rewards"
	case TabAssistant:
		return "Buddy Live"
	default:
		return "Unknown"
	}
}
