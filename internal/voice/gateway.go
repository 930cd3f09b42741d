// Package voice handles spoken input and output: a gateway that keeps
// the microphone and the speaker mutually exclusive, a command router,
// a voice picker, and a continuous listening loop.
package voice

import (
	"context"
	"errors"
	"sync"
)

// State is the gateway's audio state.
type State int

const (
	StateIdle State = iota
	StateCapturing
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateCapturing:
		return "capturing"
	case StateSpeaking:
		return "speaking"
	default:
		return "idle"
	}
}

// ErrBusy is returned when capture is requested while audio is already
// in flight. The app never listens to itself talk.
var ErrBusy = errors.New("voice gateway busy")

// ErrNoSpeech is returned by recognizers when the capture window closed
// without hearing anything.
var ErrNoSpeech = errors.New("no speech detected")

// ErrNetwork is returned by recognizers when the speech service could
// not be reached. Continuous mode treats it as transient.
var ErrNetwork = errors.New("speech service unreachable")

// ErrAborted is returned by recognizers when the backend cancelled the
// capture on its own.
var ErrAborted = errors.New("capture aborted")

// Recognizer turns microphone audio into a transcript.
type Recognizer interface {
	// Recognize blocks until an utterance is transcribed, the context
	// is cancelled, or the capture window times out with ErrNoSpeech.
	Recognize(ctx context.Context) (string, error)
}

// Synthesizer speaks text aloud.
type Synthesizer interface {
	// Speak blocks until playback finishes or the context is cancelled.
	Speak(ctx context.Context, text string, voiceID string) error
}

// VoiceLister is an optional Synthesizer capability. Backends that can
// enumerate the host's installed voices get the requested voice
// resolved through Choose, so a persona preference still lands on a
// real voice when the exact ID is not installed.
type VoiceLister interface {
	Voices() []SystemVoice
}

// Gateway serializes access to the microphone and speaker.
// Capture is single-flight and refused while speaking; speaking
// interrupts an active capture and any previous utterance (latest
// utterance wins).
type Gateway struct {
	mu          sync.Mutex
	state       State
	recognizer  Recognizer
	synthesizer Synthesizer

	captureCancel context.CancelFunc
	speakCancel   context.CancelFunc
	generation    int
}

// NewGateway creates a Gateway over the given audio backends.
func NewGateway(r Recognizer, s Synthesizer) *Gateway {
	return &Gateway{recognizer: r, synthesizer: s}
}

// State returns the current audio state.
func (g *Gateway) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Capture records one utterance and returns its transcript.
// Returns ErrBusy while speaking or while another capture is running.
func (g *Gateway) Capture(ctx context.Context) (string, error) {
	g.mu.Lock()
	if g.state != StateIdle {
		g.mu.Unlock()
		return "", ErrBusy
	}
	cctx, cancel := context.WithCancel(ctx)
	g.state = StateCapturing
	g.captureCancel = cancel
	g.generation++
	gen := g.generation
	g.mu.Unlock()

	transcript, err := g.recognizer.Recognize(cctx)
	cancel()

	g.mu.Lock()
	if g.generation == gen {
		g.state = StateIdle
		g.captureCancel = nil
	}
	g.mu.Unlock()

	return transcript, err
}

// Speak voices the text with the given voice. An active capture is
// stopped first; an active utterance is cancelled and replaced.
func (g *Gateway) Speak(ctx context.Context, text, voiceID string) error {
	g.mu.Lock()
	if g.captureCancel != nil {
		g.captureCancel()
		g.captureCancel = nil
	}
	if g.speakCancel != nil {
		g.speakCancel()
	}
	sctx, cancel := context.WithCancel(ctx)
	g.state = StateSpeaking
	g.speakCancel = cancel
	g.generation++
	gen := g.generation
	g.mu.Unlock()

	if lister, ok := g.synthesizer.(VoiceLister); ok {
		if v, found := Choose(lister.Voices(), voiceID, ""); found {
			voiceID = v.ID
		}
	}

	err := g.synthesizer.Speak(sctx, text, voiceID)
	cancel()

	g.mu.Lock()
	if g.generation == gen {
		g.state = StateIdle
		g.speakCancel = nil
	}
	g.mu.Unlock()

	return err
}

// StopSpeaking cancels the active utterance, if any.
func (g *Gateway) StopSpeaking() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.speakCancel != nil {
		g.speakCancel()
		g.speakCancel = nil
		g.state = StateIdle
		g.generation++
	}
}
