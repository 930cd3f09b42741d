package router

import (
	"github.com/masumhasan/eduplay/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// NavigateMsg requests a tab change. The router resolves the tab to its
// screen via the factory table and replaces the whole stack with it.
type NavigateMsg struct {
	Tab screen.Tab
}

// ScreenFactory builds the screen for a tab. Factories are registered
// once at startup; navigation then never fails.
type ScreenFactory func(tab screen.Tab) screen.Screen

// Router manages a stack of screens and tab navigation between them.
type Router struct {
	stack     []screen.Screen
	activeTab screen.Tab
	factory   ScreenFactory
}

// New creates a new Router with the given initial screen and tab.
func New(initial screen.Screen, tab screen.Tab, factory ScreenFactory) *Router {
	return &Router{
		stack:     []screen.Screen{initial},
		activeTab: tab,
		factory:   factory,
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen, tearing it down. No-op if stack depth
// would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	teardown(r.stack[len(r.stack)-1])
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Navigate switches to the given tab. The screens being left are torn
// down before the new screen's Init runs, so owned resources (captures,
// media tracks) are released before the next screen acquires its own.
// Navigating to the already-active tab rebuilds that screen; the
// teardown/setup effects still run, but nothing else changes.
func (r *Router) Navigate(tab screen.Tab) tea.Cmd {
	if r.factory == nil {
		return nil
	}
	for _, s := range r.stack {
		teardown(s)
	}
	next := r.factory(tab)
	r.stack = []screen.Screen{next}
	r.activeTab = tab
	return next.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// ActiveTab returns the tab the current stack belongs to.
func (r *Router) ActiveTab() screen.Tab {
	return r.activeTab
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case NavigateMsg:
		return r.Navigate(msg.Tab)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

// Teardown releases every screen on the stack. Called on app exit.
func (r *Router) Teardown() {
	for _, s := range r.stack {
		teardown(s)
	}
}

func teardown(s screen.Screen) {
	if td, ok := s.(screen.Teardowner); ok {
		td.Teardown()
	}
}
