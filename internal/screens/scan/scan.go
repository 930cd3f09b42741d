package scan

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/quiz"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/scan"
	"github.com/masumhasan/eduplay/internal/screen"
	quizscreen "github.com/masumhasan/eduplay/internal/screens/quiz"
	"github.com/masumhasan/eduplay/internal/ui/components"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
)

type phase int

const (
	phasePick phase = iota
	phaseLoading
	phaseResult
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type discoveryMsg struct {
	Discovery *scan.Discovery
	Err       error
}

type spinnerTickMsg time.Time

// ScanScreen lets the child point the buddy at a photo and learn what
// is in it.
type ScanScreen struct {
	analyzer *scan.Analyzer
	engine   *quiz.Engine

	phase     phase
	input     components.TextInput
	discovery *scan.Discovery
	errMsg    string

	spinnerFrame int
}

var _ screen.Screen = (*ScanScreen)(nil)
var _ screen.KeyHintProvider = (*ScanScreen)(nil)

// New creates a ScanScreen. engine may be nil; the discovery card then
// skips the quiz shortcut.
func New(analyzer *scan.Analyzer, engine *quiz.Engine) *ScanScreen {
	return &ScanScreen{
		analyzer: analyzer,
		engine:   engine,
		input:    components.NewTextInput("Path to a photo (jpg, png, webp)...", 260),
	}
}

func (s *ScanScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ScanScreen) Title() string {
	return "Scan Objects"
}

func (s *ScanScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseResult:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Scan another"},
		}
		if s.engine != nil {
			hints = append(hints, layout.KeyHint{Key: "Q", Description: "Quiz me"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Scan"},
			{Key: "Esc", Description: "Home"},
		}
	}
}

func (s *ScanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if s.phase != phaseLoading {
			return s, nil
		}
		s.spinnerFrame++
		return s, s.spinnerTick()

	case discoveryMsg:
		if msg.Err != nil {
			s.errMsg = "Hmm, I couldn't figure that one out. Try another photo!"
			s.phase = phasePick
			return s, s.input.Focus()
		}
		s.discovery = msg.Discovery
		s.phase = phaseResult
		return s, nil

	case tea.KeyMsg:
		switch s.phase {
		case phasePick:
			if msg.String() == "enter" {
				path := s.input.Value()
				if path == "" {
					return s, nil
				}
				s.errMsg = ""
				s.phase = phaseLoading
				return s, tea.Batch(s.analyze(path), s.spinnerTick())
			}
		case phaseResult:
			switch msg.String() {
			case "enter":
				s.phase = phasePick
				s.discovery = nil
				s.input.Reset()
				return s, s.input.Focus()
			case "q":
				if s.engine == nil {
					return s, nil
				}
				object := s.discovery.Identification
				return s, func() tea.Msg {
					return router.PushScreenMsg{Screen: quizscreen.NewForObject(s.engine, object)}
				}
			}
			return s, nil
		case phaseLoading:
			return s, nil
		}
	}

	if s.phase == phasePick {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *ScanScreen) analyze(path string) tea.Cmd {
	return func() tea.Msg {
		mime, ok := scan.MIMEForFile(path)
		if !ok {
			return discoveryMsg{Err: fmt.Errorf("unsupported image type: %s", path)}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return discoveryMsg{Err: err}
		}
		d, err := s.analyzer.Analyze(context.Background(), mime, data)
		return discoveryMsg{Discovery: d, Err: err}
	}
}

func (s *ScanScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ScanScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		frame := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		return center(width, height, theme.Body.Render(frame+"  Looking closely..."))

	case phaseResult:
		return center(width, height, s.renderDiscovery(width))
	}

	var lines []string
	lines = append(lines, theme.Title.Render("📷 What did you find?"))
	lines = append(lines, "")
	lines = append(lines, theme.Body.Render("Give me a photo and I'll tell you all about it!"))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().
		Width(min(width-8, 60)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(s.input.View()))
	if s.errMsg != "" {
		lines = append(lines, "")
		lines = append(lines, theme.Incorrect.Render(s.errMsg))
	}

	return center(width, height, strings.Join(lines, "\n"))
}

func (s *ScanScreen) renderDiscovery(width int) string {
	d := s.discovery

	var lines []string
	lines = append(lines, theme.Title.Render("🔍 It's "+d.Identification+"!"))
	lines = append(lines, "")
	for _, fact := range d.FunFacts {
		lines = append(lines, theme.Body.Render("  ✦ "+fact))
	}
	if d.SoundSuggestion != "" {
		lines = append(lines, "")
		lines = append(lines, theme.Hint.Render("  🔊 It goes: "+d.SoundSuggestion))
	}
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render("  🤔 "+d.Quiz))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(d.Encouragement))

	card := theme.Card.
		Width(min(width-8, 64)).
		Render(strings.Join(lines, "\n"))

	return card
}

func center(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
