package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/screen"
	"github.com/masumhasan/eduplay/internal/ui/theme"
)

// PlaceholderScreen stands in for a feature whose backend is not
// configured, e.g. the AI tabs when no API key is set.
type PlaceholderScreen struct {
	title string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title.
func New(title string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render("This needs a grown-up's help!\n\nAsk them to set up an AI key\n(GEMINI_API_KEY works best),\nthen come back and play.")

	return content
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
