package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/screen"
	"github.com/masumhasan/eduplay/internal/ui/components"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
)

// HomeScreen greets the child and offers the feature menu.
type HomeScreen struct {
	menu components.Menu
	prog *progress.Store
	now  func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(prog *progress.Store) *HomeScreen {
	nav := func(tab screen.Tab) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.NavigateMsg{Tab: tab}
			}
		}
	}

	items := []components.MenuItem{
		{Icon: "📷", Label: "SCAN OBJECTS", Desc: "Point at something and learn about it", Action: nav(screen.TabScan)},
		{Icon: "💬", Label: "CHAT BUDDY", Desc: "Talk with your learning buddy", Action: nav(screen.TabChat)},
		{Icon: "🎯", Label: "QUIZ TIME", Desc: "Answer questions and earn stars", Action: nav(screen.TabQuiz)},
		{Icon: "🏆", Label: "MY REWARDS", Desc: "See your stars and badges", Action: nav(screen.TabRewards)},
		{Icon: "🎤", Label: "LIVE ASSISTANT", Desc: "Voice and camera mode", Action: nav(screen.TabAssistant)},
		{Icon: "👋", Label: "ALL DONE", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
		prog: prog,
		now:  time.Now,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	p := h.prog.Current()

	var sections []string

	greeting := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(greetingForHour(h.now().Hour()) + ", explorer!")
	sections = append(sections, greeting)

	stats := theme.Hint.Render(fmt.Sprintf(
		"★ %d stars   🎯 %d quizzes   🔍 %d discoveries   🔥 %d day streak",
		p.Stars, p.QuizzesCompleted, p.ObjectsDiscovered, p.LearningStreak,
	))
	sections = append(sections, stats)
	sections = append(sections, "")

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func greetingForHour(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
