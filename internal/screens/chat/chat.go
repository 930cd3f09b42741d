package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/agents"
	"github.com/masumhasan/eduplay/internal/chat"
	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quiz"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/screen"
	quizscreen "github.com/masumhasan/eduplay/internal/screens/quiz"
	"github.com/masumhasan/eduplay/internal/ui/components"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
	"github.com/masumhasan/eduplay/internal/voice"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type replyMsg struct {
	Err error
}

type captureMsg struct {
	Text string
	Err  error
}

type spinnerTickMsg time.Time

// QuizRequests is the mailbox the session's startQuiz tool drops the
// requested topic into. It belongs to the session, not the screen, so
// the transcript and the pending request both survive navigation.
type QuizRequests struct {
	mu    sync.Mutex
	topic string
	set   bool
}

func (q *QuizRequests) request(topic string) {
	q.mu.Lock()
	q.topic = topic
	q.set = true
	q.mu.Unlock()
}

func (q *QuizRequests) take() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	topic, ok := q.topic, q.set
	q.set = false
	return topic, ok
}

// NewSession builds the buddy session and its quiz-request mailbox.
// The caller owns both for the life of the app; screens come and go
// over the same transcript.
func NewSession(provider llm.Provider, prog *progress.Store, persona agents.Profile) (*chat.Session, *QuizRequests) {
	reqs := &QuizRequests{}
	tools := chat.StandardTools(prog, reqs.request)
	return chat.NewSession(provider, persona, tools), reqs
}

// ChatScreen is the conversation view with the learning buddy.
type ChatScreen struct {
	session *chat.Session
	reqs    *QuizRequests
	engine  *quiz.Engine
	gateway *voice.Gateway

	input     components.TextInput
	busy      bool
	listening bool

	spinnerFrame int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Teardowner = (*ChatScreen)(nil)

// New creates a ChatScreen over an existing session and its quiz
// mailbox. gateway may be nil when no speech backend is configured.
func New(session *chat.Session, reqs *QuizRequests, engine *quiz.Engine, gateway *voice.Gateway) *ChatScreen {
	return &ChatScreen{
		session: session,
		reqs:    reqs,
		engine:  engine,
		gateway: gateway,
		input:   components.NewTextInput("Say something to your buddy...", 280),
	}
}

// Session exposes the underlying conversation, mostly for the header
// and for wiring checks.
func (s *ChatScreen) Session() *chat.Session {
	return s.session
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Chat with " + s.session.Persona().Name
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
	}
	if s.gateway != nil {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Talk"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
	return hints
}

func (s *ChatScreen) Teardown() {
	if s.gateway != nil {
		s.gateway.StopSpeaking()
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !s.busy && !s.listening {
			return s, nil
		}
		s.spinnerFrame++
		return s, s.spinnerTick()

	case replyMsg:
		s.busy = false
		cmd := s.input.Focus()

		if topic, ok := s.reqs.take(); ok {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.NewWithTopic(s.engine, topic)}
			}
		}
		return s, cmd

	case captureMsg:
		s.listening = false
		if msg.Err != nil || msg.Text == "" {
			return s, s.input.Focus()
		}
		return s, s.send(msg.Text)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.busy || s.listening {
				return s, nil
			}
			text := s.input.Value()
			if text == "" {
				return s, nil
			}
			return s, s.send(text)
		case "tab":
			if s.gateway == nil || s.busy || s.listening {
				return s, nil
			}
			s.listening = true
			s.input.Blur()
			return s, tea.Batch(s.capture(), s.spinnerTick())
		}
	}

	if s.busy || s.listening {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send(text string) tea.Cmd {
	s.busy = true
	s.input.Reset()
	s.input.Blur()
	return tea.Batch(
		func() tea.Msg {
			_, err := s.session.Send(context.Background(), text)
			return replyMsg{Err: err}
		},
		s.spinnerTick(),
	)
}

func (s *ChatScreen) capture() tea.Cmd {
	return func() tea.Msg {
		text, err := s.gateway.Capture(context.Background())
		return captureMsg{Text: text, Err: err}
	}
}

func (s *ChatScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ChatScreen) View(width, height int) string {
	persona := s.session.Persona()

	transcriptHeight := height - 4
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	transcript := s.renderTranscript(width, transcriptHeight, persona)

	var status string
	switch {
	case s.listening:
		status = theme.Hint.Render(spinnerFrames[s.spinnerFrame%len(spinnerFrames)] + "  Listening...")
	case s.busy:
		status = theme.Hint.Render(spinnerFrames[s.spinnerFrame%len(spinnerFrames)] + "  " + persona.Name + " is thinking...")
	default:
		status = ""
	}

	inputBox := lipgloss.NewStyle().
		Width(width - 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(s.input.View())

	return transcript + "\n" + status + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, inputBox)
}

func (s *ChatScreen) renderTranscript(width, height int, persona agents.Profile) string {
	bubbleWidth := width * 2 / 3
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var lines []string
	for _, m := range s.session.Transcript() {
		var bubble string
		if m.Sender == chat.SenderChild {
			bubble = lipgloss.NewStyle().
				MaxWidth(bubbleWidth).
				Foreground(theme.Text).
				Background(theme.BgCard).
				Padding(0, 1).
				Render("You: " + m.Text)
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble+"  "))
		} else {
			bubble = lipgloss.NewStyle().
				MaxWidth(bubbleWidth).
				Foreground(theme.Text).
				Padding(0, 1).
				Render(persona.AvatarGlyph + " " + m.Text)
			lines = append(lines, "  "+bubble)
		}
		lines = append(lines, "")
	}

	// Show only the tail that fits.
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	return strings.Join(lines, "\n")
}
