package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/masumhasan/eduplay/internal/agents"
	"github.com/masumhasan/eduplay/internal/chat"
	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/media"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/screen"
	"github.com/masumhasan/eduplay/internal/ui/components"
	"github.com/masumhasan/eduplay/internal/ui/layout"
	"github.com/masumhasan/eduplay/internal/ui/theme"
	"github.com/masumhasan/eduplay/internal/voice"
)

type phase int

const (
	phasePick phase = iota
	phaseLive
)

const feedLimit = 8

// errClearDelay is how long a transient speech notice stays on screen.
const errClearDelay = 3 * time.Second

type utteranceMsg struct {
	Text string
}

type listenerStoppedMsg struct {
	Err error
}

type speechErrMsg struct {
	Err error
}

type errClearMsg struct{}

type connectedMsg struct {
	Err error
}

type roomReadyMsg struct {
	Room string
	Err  error
}

type replyMsg struct {
	Text string
	Err  error
}

// AssistantScreen is the hands-free mode: a persona listens through the
// microphone, answers out loud, and obeys spoken commands.
type AssistantScreen struct {
	provider llm.Provider
	prog     *progress.Store
	gateway  *voice.Gateway
	media    *media.Controller
	rooms    media.RoomClient

	phase   phase
	menu    components.Menu
	persona agents.Profile
	session *chat.Session
	room    string

	utterances chan string
	speechErrs chan error
	cancel     context.CancelFunc

	feed     []string
	thinking bool
	errMsg   string
}

var _ screen.Screen = (*AssistantScreen)(nil)
var _ screen.KeyHintProvider = (*AssistantScreen)(nil)
var _ screen.Teardowner = (*AssistantScreen)(nil)

// New creates an AssistantScreen starting at the persona picker.
// gateway, mediaCtrl, and rooms may be nil when the host has no speech,
// camera, or room backend; the screen then degrades to a notice.
func New(provider llm.Provider, prog *progress.Store, gateway *voice.Gateway, mediaCtrl *media.Controller, rooms media.RoomClient) *AssistantScreen {
	s := &AssistantScreen{
		provider: provider,
		prog:     prog,
		gateway:  gateway,
		media:    mediaCtrl,
		rooms:    rooms,
	}

	items := make([]components.MenuItem, 0, len(agents.All()))
	for _, p := range agents.All() {
		persona := p
		items = append(items, components.MenuItem{
			Icon:  persona.AvatarGlyph,
			Label: persona.Name,
			Desc:  persona.Description,
			Action: func() tea.Cmd {
				return s.goLive(persona)
			},
		})
	}
	s.menu = components.NewMenu(items)

	return s
}

func (s *AssistantScreen) Init() tea.Cmd {
	return nil
}

func (s *AssistantScreen) Title() string {
	return "Live Assistant"
}

func (s *AssistantScreen) KeyHints() []layout.KeyHint {
	if s.phase == phasePick {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Pick a buddy"},
			{Key: "Enter", Description: "Go live"},
		}
	}
	hints := []layout.KeyHint{}
	if s.media != nil {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Camera on/off"})
	}
	hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Hang up"})
	return hints
}

// Teardown stops the listener, the speaker, and the media session.
func (s *AssistantScreen) Teardown() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.gateway != nil {
		s.gateway.StopSpeaking()
	}
	if s.media != nil {
		s.media.Disconnect()
	}
}

func (s *AssistantScreen) goLive(persona agents.Profile) tea.Cmd {
	s.persona = persona
	s.session = chat.NewSession(s.provider, persona, chat.StandardTools(s.prog, func(string) {}))
	s.phase = phaseLive

	cmds := []tea.Cmd{}

	if s.rooms != nil {
		cmds = append(cmds, func() tea.Msg {
			ctx := context.Background()
			name := "eduplay-" + uuid.New().String()[:8]
			if err := s.rooms.CreateRoom(ctx, name, "private"); err != nil {
				return roomReadyMsg{Err: err}
			}
			exp := time.Now().Add(time.Hour).Unix()
			if _, err := s.rooms.CreateSessionToken(ctx, name, persona.Name, exp); err != nil {
				return roomReadyMsg{Err: err}
			}
			return roomReadyMsg{Room: name}
		})
	}

	if s.media != nil {
		cmds = append(cmds, func() tea.Msg {
			return connectedMsg{Err: s.media.Connect(context.Background())}
		})
	}

	if s.gateway != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.utterances = make(chan string, 4)
		s.speechErrs = make(chan error, 1)

		listener := voice.NewListener(s.gateway, func(text string) {
			select {
			case s.utterances <- text:
			default:
			}
		})
		listener.OnError(func(err error) {
			select {
			case s.speechErrs <- err:
			default:
			}
		})
		ch, errCh := s.utterances, s.speechErrs
		go func() {
			_ = listener.Run(ctx)
			close(ch)
			close(errCh)
		}()

		cmds = append(cmds, s.waitForUtterance(), s.waitForSpeechError())
	}

	return tea.Batch(cmds...)
}

func (s *AssistantScreen) waitForUtterance() tea.Cmd {
	ch := s.utterances
	return func() tea.Msg {
		text, ok := <-ch
		if !ok {
			return listenerStoppedMsg{}
		}
		return utteranceMsg{Text: text}
	}
}

func (s *AssistantScreen) waitForSpeechError() tea.Cmd {
	ch := s.speechErrs
	return func() tea.Msg {
		err, ok := <-ch
		if !ok {
			return nil
		}
		return speechErrMsg{Err: err}
	}
}

func (s *AssistantScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case connectedMsg:
		if msg.Err != nil {
			s.errMsg = "Camera could not start. Voice still works!"
		}
		return s, nil

	case roomReadyMsg:
		if msg.Err == nil {
			s.room = msg.Room
		}
		return s, nil

	case utteranceMsg:
		return s.handleUtterance(msg.Text)

	case listenerStoppedMsg:
		return s, nil

	case speechErrMsg:
		s.errMsg = "I couldn't hear for a second. Trying again!"
		return s, tea.Batch(s.waitForSpeechError(), tea.Tick(errClearDelay, func(time.Time) tea.Msg {
			return errClearMsg{}
		}))

	case errClearMsg:
		s.errMsg = ""
		return s, nil

	case replyMsg:
		s.thinking = false
		if msg.Err != nil || msg.Text == "" {
			return s, s.waitForUtterance()
		}
		s.pushFeed(s.persona.AvatarGlyph + " " + msg.Text)
		cmds := []tea.Cmd{s.waitForUtterance()}
		if s.gateway != nil {
			voiceID := s.persona.VoiceID
			text := msg.Text
			cmds = append(cmds, func() tea.Msg {
				_ = s.gateway.Speak(context.Background(), text, voiceID)
				return nil
			})
		}
		return s, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch s.phase {
		case phasePick:
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case phaseLive:
			if msg.String() == "c" && s.media != nil {
				enabled := !s.media.CameraEnabled()
				return s, func() tea.Msg {
					return connectedMsg{Err: s.media.SetCameraEnabled(context.Background(), enabled)}
				}
			}
		}
	}

	return s, nil
}

// handleUtterance routes a spoken phrase: navigation and theme commands
// act immediately, anything else goes to the persona for a spoken reply.
func (s *AssistantScreen) handleUtterance(text string) (screen.Screen, tea.Cmd) {
	s.errMsg = ""
	s.pushFeed("🎤 " + text)

	action := voice.Route(text)
	switch action.Kind {
	case voice.ActionNavigate:
		tab := action.Tab
		return s, func() tea.Msg {
			return router.NavigateMsg{Tab: tab}
		}

	case voice.ActionSetDarkMode:
		theme.SetDarkMode(action.DarkMode)
		if action.DarkMode {
			s.pushFeed("🌙 Dark mode on")
		} else {
			s.pushFeed("☀️ Dark mode off")
		}
		return s, s.waitForUtterance()

	default:
		s.thinking = true
		return s, func() tea.Msg {
			reply, err := s.session.Send(context.Background(), action.Text)
			return replyMsg{Text: reply, Err: err}
		}
	}
}

func (s *AssistantScreen) pushFeed(line string) {
	stamp := time.Now().Format("15:04")
	s.feed = append(s.feed, theme.Hint.Render(stamp)+" "+line)
	if len(s.feed) > feedLimit {
		s.feed = s.feed[len(s.feed)-feedLimit:]
	}
}

func (s *AssistantScreen) View(width, height int) string {
	if s.phase == phasePick {
		title := theme.Title.Render("Who do you want to talk to?")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			title+"\n\n"+s.menu.View())
	}

	var lines []string

	lines = append(lines, theme.Title.Render(s.persona.AvatarGlyph+" "+s.persona.Name+" is listening"))
	lines = append(lines, "")

	if s.gateway != nil {
		lines = append(lines, theme.Hint.Render("state: "+s.gateway.State().String()))
	} else {
		lines = append(lines, theme.Incorrect.Render("No microphone available on this device."))
	}

	if s.media != nil {
		cam := "off"
		if s.media.CameraEnabled() {
			cam = "on"
		}
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("camera: %s (%s)", cam, s.media.State())))
	}

	if s.room != "" {
		lines = append(lines, theme.Hint.Render("room: "+s.room))
	}

	if s.errMsg != "" {
		lines = append(lines, theme.Incorrect.Render(s.errMsg))
	}

	lines = append(lines, "")
	if s.thinking {
		lines = append(lines, theme.Hint.Render("thinking..."))
		lines = append(lines, "")
	}

	lines = append(lines, s.feed...)

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
