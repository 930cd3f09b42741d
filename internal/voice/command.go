package voice

import (
	"strings"

	"github.com/masumhasan/eduplay/internal/screen"
)

// ActionKind classifies what a spoken utterance asks the app to do.
type ActionKind int

const (
	// ActionNavigate switches to another screen.
	ActionNavigate ActionKind = iota

	// ActionSetDarkMode flips the color theme.
	ActionSetDarkMode

	// ActionConversation has no command keyword; the utterance goes to
	// the buddy chat as-is.
	ActionConversation
)

// Action is the routed result of one utterance.
type Action struct {
	Kind     ActionKind
	Tab      screen.Tab
	DarkMode bool
	Text     string
}

// navRoutes is the ordered keyword table. Earlier entries win, so an
// utterance mentioning both "quiz" and "home" starts the quiz.
var navRoutes = []struct {
	keywords []string
	tab      screen.Tab
}{
	{[]string{"quiz"}, screen.TabQuiz},
	{[]string{"chat", "talk"}, screen.TabChat},
	{[]string{"scan", "object"}, screen.TabScan},
	{[]string{"reward", "star"}, screen.TabRewards},
	{[]string{"home"}, screen.TabHome},
}

// Route classifies a transcript into an app action. Matching is
// case-insensitive substring search; anything that matches no command
// keyword is conversation input.
func Route(utterance string) Action {
	lower := strings.ToLower(utterance)

	for _, r := range navRoutes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return Action{Kind: ActionNavigate, Tab: r.tab}
			}
		}
	}

	if strings.Contains(lower, "dark mode") {
		return Action{Kind: ActionSetDarkMode, DarkMode: !strings.Contains(lower, "off")}
	}

	return Action{Kind: ActionConversation, Text: utterance}
}
