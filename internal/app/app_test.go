package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/masumhasan/eduplay/internal/llm"
	"github.com/masumhasan/eduplay/internal/progress"
	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/screen"
	chatscreen "github.com/masumhasan/eduplay/internal/screens/chat"
	"github.com/masumhasan/eduplay/internal/screens/placeholder"
	"github.com/masumhasan/eduplay/internal/ui/theme"
)

type memKV struct {
	data map[string]json.RawMessage
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]json.RawMessage)}
}

func (m *memKV) Get(_ context.Context, key string) (json.RawMessage, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value json.RawMessage) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	return newAppModel(Options{
		Provider: llm.NewMockProvider(),
		Progress: progress.Load(context.Background(), newMemKV()),
	})
}

func TestChatSessionSurvivesNavigation(t *testing.T) {
	m := newTestModel(t)

	m.router.Navigate(screen.TabChat)
	first, ok := m.router.Active().(*chatscreen.ChatScreen)
	if !ok {
		t.Fatalf("active screen is %T, want chat", m.router.Active())
	}
	session := first.Session()
	greeted := len(session.Transcript())
	if greeted == 0 {
		t.Fatal("expected the greeting to be seeded")
	}

	m.router.Navigate(screen.TabHome)
	m.router.Navigate(screen.TabChat)
	second, ok := m.router.Active().(*chatscreen.ChatScreen)
	if !ok {
		t.Fatalf("active screen is %T, want chat", m.router.Active())
	}

	if second.Session() != session {
		t.Fatal("navigating away and back must resume the same session")
	}
	if len(session.Transcript()) != greeted {
		t.Fatalf("transcript grew from %d to %d without any sends", greeted, len(session.Transcript()))
	}
}

func TestChatTabWithoutProviderShowsPlaceholder(t *testing.T) {
	m := newAppModel(Options{Progress: progress.Load(context.Background(), newMemKV())})

	m.router.Navigate(screen.TabChat)
	if _, ok := m.router.Active().(*placeholder.PlaceholderScreen); !ok {
		t.Fatalf("active screen is %T, want placeholder", m.router.Active())
	}
}

func TestVoiceCommandNavigates(t *testing.T) {
	m := newTestModel(t)
	m.router.Navigate(screen.TabHome)

	cmd := m.handleVoiceUtterance("let's play a quiz")
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	nav, ok := cmd().(router.NavigateMsg)
	if !ok || nav.Tab != screen.TabQuiz {
		t.Fatalf("expected navigation to the quiz tab, got %v", cmd())
	}
}

func TestVoiceCommandIgnoredOnChatSurface(t *testing.T) {
	m := newTestModel(t)
	m.router.Navigate(screen.TabChat)

	if cmd := m.handleVoiceUtterance("go home"); cmd != nil {
		t.Fatal("commands must not fire while the chat surface is active")
	}
}

func TestVoiceCommandFlipsDarkMode(t *testing.T) {
	m := newTestModel(t)
	m.router.Navigate(screen.TabHome)
	defer theme.SetDarkMode(true)

	m.handleVoiceUtterance("dark mode off")
	if theme.DarkMode() {
		t.Fatal("expected dark mode off")
	}

	m.handleVoiceUtterance("dark mode on")
	if !theme.DarkMode() {
		t.Fatal("expected dark mode back on")
	}
}
