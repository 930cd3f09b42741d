package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quiz"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/screen"
	"github.com/masumhasan/eduplay/internal/ui/components"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
)

type phase int

const (
	phaseTopic phase = iota
	phaseLoading
	phasePlaying
	phaseFeedback
	phaseFinished
)

// Topics offered on the picker. "Surprise Me" lets the model choose.
var Topics = []string{"Animals", "Space", "Colors", "Numbers", "Nature", "Surprise Me"}

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type roundReadyMsg struct {
	Round *quiz.Round
	Err   error
}

type answerResultMsg struct {
	Correct bool
	Err     error
}

type roundDoneMsg struct {
	Snapshot  progress.Progress
	LeveledUp bool
	Err       error
}

type spinnerTickMsg time.Time

// QuizScreen runs one quiz round from topic pick to score card.
type QuizScreen struct {
	engine *quiz.Engine

	phase   phase
	topic   string
	single  bool
	menu    components.Menu
	round   *quiz.Round
	choice  components.MultiChoice

	snapshot  progress.Progress
	leveledUp bool

	spinnerFrame int
	errMsg       string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen starting at the topic picker.
func New(engine *quiz.Engine) *QuizScreen {
	s := &QuizScreen{engine: engine, phase: phaseTopic}
	s.menu = s.topicMenu()
	return s
}

// NewWithTopic creates a QuizScreen that skips the picker and starts
// generating a round immediately. Used by the chat buddy's quiz tool
// and by voice commands.
func NewWithTopic(engine *quiz.Engine, topic string) *QuizScreen {
	s := &QuizScreen{engine: engine, phase: phaseLoading, topic: topic}
	return s
}

// NewForObject starts a one-question quiz about a discovered object.
func NewForObject(engine *quiz.Engine, object string) *QuizScreen {
	s := &QuizScreen{engine: engine, phase: phaseLoading, topic: object, single: true}
	return s
}

func (s *QuizScreen) topicMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(Topics))
	for _, t := range Topics {
		topic := t
		items = append(items, components.MenuItem{
			Label: topic,
			Action: func() tea.Cmd {
				s.topic = topic
				s.single = false
				s.phase = phaseLoading
				return tea.Batch(s.generateRound(), s.spinnerTick())
			},
		})
	}
	return components.NewMenu(items)
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.phase == phaseLoading {
		return tea.Batch(s.generateRound(), s.spinnerTick())
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz Time"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseTopic:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Pick a topic"},
			{Key: "Enter", Description: "Start"},
		}
	case phasePlaying:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Pick"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
		}
	case phaseFinished:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Play again"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return nil
}

func (s *QuizScreen) generateRound() tea.Cmd {
	topic, single := s.topic, s.single
	return func() tea.Msg {
		var r *quiz.Round
		var err error
		if single {
			r, err = s.engine.NewObjectRound(context.Background(), topic)
		} else {
			r, err = s.engine.NewThemedRound(context.Background(), topic)
		}
		return roundReadyMsg{Round: r, Err: err}
	}
}

func (s *QuizScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		s.spinnerFrame++
		return s, s.spinnerTick()

	case roundReadyMsg:
		if msg.Err != nil {
			s.errMsg = "Uh oh, the quiz machine hiccuped. Press Esc to go home."
			return s, nil
		}
		s.round = msg.Round
		s.phase = phasePlaying
		s.loadQuestion()
		return s, nil

	case answerResultMsg:
		// The choice widget already shows the reveal; the engine's
		// verdict only matters for scoring, which it has done by now.
		return s, nil

	case roundDoneMsg:
		if msg.Err == nil {
			s.snapshot = msg.Snapshot
			s.leveledUp = msg.LeveledUp
		}
		s.phase = phaseFinished
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseTopic:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case phasePlaying:
		wasSubmitted := s.choice.Submitted
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if !wasSubmitted && s.choice.Submitted {
			s.phase = phaseFeedback
			chosen := s.choice.ChosenIndex
			return s, func() tea.Msg {
				correct, err := s.engine.SubmitAnswer(context.Background(), s.round, chosen)
				return answerResultMsg{Correct: correct, Err: err}
			}
		}
		return s, cmd

	case phaseFeedback:
		if s.round.Advance() {
			s.phase = phasePlaying
			s.loadQuestion()
			return s, nil
		}
		return s, func() tea.Msg {
			snap, leveled, err := s.engine.CompleteRound(context.Background(), s.round)
			return roundDoneMsg{Snapshot: snap, LeveledUp: leveled, Err: err}
		}

	case phaseFinished:
		switch msg.String() {
		case "enter":
			s.phase = phaseTopic
			s.round = nil
			s.menu = s.topicMenu()
			return s, nil
		case "esc":
			return s, func() tea.Msg { return router.NavigateMsg{Tab: screen.TabHome} }
		}
	}

	return s, nil
}

func (s *QuizScreen) loadQuestion() {
	q, _ := s.round.Current()
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex)
}

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return center(width, height, theme.Incorrect.Render(s.errMsg))
	}

	switch s.phase {
	case phaseTopic:
		title := theme.Title.Render("What do you want to learn about?")
		return center(width, height, title+"\n\n"+s.menu.View())

	case phaseLoading:
		frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		msg := fmt.Sprintf("%s  Making up fun questions about %s...", frame, s.topic)
		return center(width, height, theme.Body.Render(msg))

	case phasePlaying, phaseFeedback:
		return s.renderQuestion(width, height)

	case phaseFinished:
		return s.renderScoreCard(width, height)
	}

	return ""
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	_, idx := s.round.Current()
	header := theme.Hint.Render(fmt.Sprintf("Question %d of %d  ·  %s", idx+1, s.round.Len(), s.round.Topic))

	body := header + "\n\n" + s.choice.View()

	if s.phase == phaseFeedback {
		body += "\n"
		if s.choice.IsCorrect() {
			body += theme.Correct.Render("Yay! You earned a star! ★")
		} else {
			body += theme.Incorrect.Render("Good try! Now you know it!")
		}
	}

	return center(width, height, body)
}

func (s *QuizScreen) renderScoreCard(width, height int) string {
	var lines []string

	lines = append(lines, theme.Title.Render("Round complete!"))
	lines = append(lines, "")
	lines = append(lines, components.StarRow(s.round.Score(), s.round.Len()))
	lines = append(lines, "")
	lines = append(lines, theme.Body.Render(fmt.Sprintf("You got %d of %d right.", s.round.Score(), s.round.Len())))

	if s.leveledUp {
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("🎉 Perfect round! You reached level %d!", s.snapshot.QuizLevel)))
	}

	return center(width, height, strings.Join(lines, "\n"))
}

func center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
