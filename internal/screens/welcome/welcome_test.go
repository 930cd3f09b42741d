package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/masumhasan/eduplay/internal/router"
	"github.com/masumhasan/eduplay/internal/screen"
)

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w := New()

	// Initially only the mascot shows.
	view := w.View(80, 24)
	if strings.Contains(view, "EduPlay") {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != 500*time.Millisecond {
		t.Errorf("expected elapsed 500ms, got %v", w.elapsed)
	}

	sendTicks(w, 10)
	view = w.View(80, 24)
	if !strings.Contains(view, "E d u P l a y") {
		t.Error("banner should be visible after the logo reveal")
	}
}

func TestKeypressBeforeRevealDoesNothing(t *testing.T) {
	w := New()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd != nil {
		t.Fatal("keypress before the logo reveal should not transition")
	}
}

func TestKeypressAfterRevealNavigatesHome(t *testing.T) {
	w := New()
	sendTicks(w, 40)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("expected a command from keypress after animation")
	}

	msg := cmd()
	nav, ok := msg.(router.NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg, got %T", msg)
	}
	if nav.Tab != screen.TabHome {
		t.Errorf("tab = %v, want home", nav.Tab)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w := New()

	sendTicks(w, 40)
	if w.transitioned {
		t.Error("screen should not transition without a keypress")
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestTransitionFiresOnce(t *testing.T) {
	w := New()
	sendTicks(w, 40)

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
}

func TestTitleEmpty(t *testing.T) {
	w := New()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
