package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/masumhasan/eduplay/internal/agents"
	"github.com/masumhasan/eduplay/internal/chat"
	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/media"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/quiz"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/scan"
	"github.com/masumhasan/eduplay/internal/screen"
	assistantscreen "github.com/masumhasan/eduplay/internal/screens/assistant"
	chatscreen "github.com/masumhasan/eduplay/internal/screens/chat"
	homescreen "github.com/masumhasan/eduplay/internal/screens/home"
	"github.com/masumhasan/eduplay/internal/screens/placeholder"
	quizscreen "github.com/masumhasan/eduplay/internal/screens/quiz"
	rewardsscreen "github.com/masumhasan/eduplay/internal/screens/rewards"
	scanscreen "github.com/masumhasan/eduplay/internal/screens/scan"
	welcomescreen "github.com/masumhasan/eduplay/internal/screens/welcome"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
	"github.com/masumhasan/eduplay/internal/voice"
)

// Options carries the wired services the screens depend on. Provider,
// Progress, and Engine are required; Gateway and Media are nil when the
// host has no speech or camera backend.
type Options struct {
	Provider llm.Provider
	Progress *progress.Store
	Engine   *quiz.Engine
	Analyzer *scan.Analyzer
	Gateway  *voice.Gateway
	Media    *media.Controller
	Rooms    media.RoomClient
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	prog    *progress.Store
	gateway *voice.Gateway
	width   int
	height  int

	// Global voice-command mode: a toggled listener that routes spoken
	// commands on every screen except the chat surface, which owns the
	// microphone itself.
	voiceOn     bool
	voiceCancel context.CancelFunc
	utterances  chan string
}

type voiceUtteranceMsg struct {
	Text string
}

type voiceStoppedMsg struct{}

// newAppModel builds the screen factory and seeds the stack with the
// welcome splash.
func newAppModel(opts Options) AppModel {
	// The buddy conversation outlives any one screen: built lazily on
	// the first visit, then every chat screen resumes the same
	// transcript (and the greeting is only ever seeded once).
	var chatSession *chat.Session
	var chatQuiz *chatscreen.QuizRequests

	factory := func(tab screen.Tab) screen.Screen {
		switch tab {
		case screen.TabScan:
			if opts.Analyzer == nil {
				return placeholder.New(tab.String())
			}
			return scanscreen.New(opts.Analyzer, opts.Engine)
		case screen.TabChat:
			if opts.Provider == nil {
				return placeholder.New(tab.String())
			}
			if chatSession == nil {
				chatSession, chatQuiz = chatscreen.NewSession(opts.Provider, opts.Progress, agents.Default())
			}
			return chatscreen.New(chatSession, chatQuiz, opts.Engine, opts.Gateway)
		case screen.TabQuiz:
			if opts.Engine == nil {
				return placeholder.New(tab.String())
			}
			return quizscreen.New(opts.Engine)
		case screen.TabRewards:
			return rewardsscreen.New(opts.Progress)
		case screen.TabAssistant:
			if opts.Provider == nil {
				return placeholder.New(tab.String())
			}
			return assistantscreen.New(opts.Provider, opts.Progress, opts.Gateway, opts.Media, opts.Rooms)
		default:
			return homescreen.New(opts.Progress)
		}
	}

	return AppModel{
		router:  router.New(welcomescreen.New(), screen.TabHome, factory),
		prog:    opts.Progress,
		gateway: opts.Gateway,
	}
}

// startVoiceMode spins up the continuous command listener.
func (m *AppModel) startVoiceMode() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.voiceCancel = cancel
	m.utterances = make(chan string, 4)

	ch := m.utterances
	listener := voice.NewListener(m.gateway, func(text string) {
		select {
		case ch <- text:
		default:
		}
	})
	go func() {
		_ = listener.Run(ctx)
		close(ch)
	}()

	m.voiceOn = true
	return m.waitForVoice()
}

func (m *AppModel) stopVoiceMode() {
	if m.voiceCancel != nil {
		m.voiceCancel()
		m.voiceCancel = nil
	}
	m.voiceOn = false
}

func (m AppModel) waitForVoice() tea.Cmd {
	ch := m.utterances
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return voiceStoppedMsg{}
		}
		return voiceUtteranceMsg{Text: text}
	}
}

// handleVoiceUtterance routes a spoken phrase heard in command mode.
// The chat screen owns its own microphone, so commands are ignored
// while it is active.
func (m AppModel) handleVoiceUtterance(text string) tea.Cmd {
	if m.router.ActiveTab() == screen.TabChat && m.router.Depth() == 1 {
		return nil
	}

	action := voice.Route(text)
	switch action.Kind {
	case voice.ActionNavigate:
		tab := action.Tab
		return func() tea.Msg { return router.NavigateMsg{Tab: tab} }
	case voice.ActionSetDarkMode:
		theme.SetDarkMode(action.DarkMode)
	}
	return nil
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case voiceUtteranceMsg:
		return m, tea.Batch(m.waitForVoice(), m.handleVoiceUtterance(msg.Text))

	case voiceStoppedMsg:
		m.voiceOn = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopVoiceMode()
			m.router.Teardown()
			return m, tea.Quit
		case "ctrl+v":
			if m.gateway == nil {
				return m, nil
			}
			if m.voiceOn {
				m.stopVoiceMode()
				return m, nil
			}
			return m, m.startVoiceMode()
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			if m.router.ActiveTab() != screen.TabHome {
				return m, func() tea.Msg { return router.NavigateMsg{Tab: screen.TabHome} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The splash draws without chrome.
	if title == "" {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	var stars, level int
	if m.prog != nil {
		p := m.prog.Current()
		stars, level = p.Stars, p.QuizLevel
	}
	header := layout.RenderHeader(title, stars, level, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if m.gateway != nil {
		desc := "Voice commands"
		if m.voiceOn {
			desc = "Voice off"
		}
		footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+V", Description: desc})
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model := newAppModel(opts)
	defer model.router.Teardown()

	p := tea.NewProgram(model)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
