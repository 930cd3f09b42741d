package rewards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quizgen"
	"github.com/masumhasan/eduplay/internal/screen"
	"github.com/masumhasan/eduplay/internal/ui/components"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
)

// Badge is an achievement unlocked by progress milestones.
type Badge struct {
	Icon  string
	Label string
	Check func(p progress.Progress) bool
}

// Badges in display order.
var Badges = []Badge{
	{Icon: "🌟", Label: "First Quiz", Check: func(p progress.Progress) bool { return p.QuizzesCompleted >= 1 }},
	{Icon: "🔍", Label: "Curious Explorer", Check: func(p progress.Progress) bool { return p.ObjectsDiscovered >= 5 }},
	{Icon: "⭐", Label: "Star Collector", Check: func(p progress.Progress) bool { return p.Stars >= 10 }},
	{Icon: "🔥", Label: "On a Roll", Check: func(p progress.Progress) bool { return p.LearningStreak >= 3 }},
	{Icon: "🧠", Label: "Quiz Whiz", Check: func(p progress.Progress) bool { return p.QuizLevel >= 3 }},
	{Icon: "🏆", Label: "Super Learner", Check: func(p progress.Progress) bool { return p.Stars >= 50 }},
}

// RewardsScreen shows earned stars, the quiz level, and badges.
type RewardsScreen struct {
	prog *progress.Store
}

var _ screen.Screen = (*RewardsScreen)(nil)
var _ screen.KeyHintProvider = (*RewardsScreen)(nil)

// New creates a RewardsScreen.
func New(prog *progress.Store) *RewardsScreen {
	return &RewardsScreen{prog: prog}
}

func (r *RewardsScreen) Init() tea.Cmd {
	return nil
}

func (r *RewardsScreen) Title() string {
	return "My Rewards"
}

func (r *RewardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Home"},
	}
}

func (r *RewardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return r, nil
}

func (r *RewardsScreen) View(width, height int) string {
	p := r.prog.Current()

	var lines []string

	lines = append(lines, theme.Title.Render("🏆 Your Treasure Chest"))
	lines = append(lines, "")

	lines = append(lines, lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("★ %d stars collected", p.Stars)))
	lines = append(lines, "")

	lines = append(lines, theme.Body.Render(fmt.Sprintf(
		"Quiz level %d (%s questions)", p.QuizLevel, quizgen.DifficultyForLevel(p.QuizLevel))))
	lines = append(lines, theme.Body.Render(fmt.Sprintf(
		"%d quizzes finished  ·  %d things discovered", p.QuizzesCompleted, p.ObjectsDiscovered)))

	if p.LearningStreak > 0 {
		lines = append(lines, theme.Body.Render(fmt.Sprintf("🔥 %d day learning streak", p.LearningStreak)))
	}

	lines = append(lines, "")
	lines = append(lines, theme.Subtitle.Render("Badges"))
	lines = append(lines, "")

	for _, b := range Badges {
		if b.Check(p) {
			lines = append(lines, theme.Body.Render(fmt.Sprintf("  %s  %s", b.Icon, b.Label)))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("  🔒  %s", b.Label)))
		}
	}

	lines = append(lines, "")
	lines = append(lines, components.StarRow(earnedBadges(p), len(Badges)))

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func earnedBadges(p progress.Progress) int {
	n := 0
	for _, b := range Badges {
		if b.Check(p) {
			n++
		}
	}
	return n
}
