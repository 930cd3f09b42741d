package voice

import (
	"context"
	"errors"
	"time"
)

// RestartDelay is the pause between capture windows in continuous
// mode. The original hardware gateway needs a beat to rearm.
const RestartDelay = 250 * time.Millisecond

// Listener runs the always-on voice command mode: capture, hand the
// transcript to the callback, pause, repeat.
type Listener struct {
	gateway      *Gateway
	onUtterance  func(string)
	onError      func(error)
	restartDelay time.Duration
}

// NewListener creates a Listener that forwards each transcript to fn.
func NewListener(g *Gateway, fn func(string)) *Listener {
	return &Listener{
		gateway:      g,
		onUtterance:  fn,
		restartDelay: RestartDelay,
	}
}

// OnError registers a callback for transient speech errors. The loop
// keeps running after surfacing one.
func (l *Listener) OnError(fn func(error)) {
	l.onError = fn
}

// Run loops until the context is cancelled. Empty captures and busy
// windows are skipped, network hiccups are surfaced and retried; any
// other recognizer error ends the loop.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		transcript, err := l.gateway.Capture(ctx)
		switch {
		case err == nil && transcript != "":
			l.onUtterance(transcript)
		case errors.Is(err, ErrNoSpeech), errors.Is(err, ErrBusy), errors.Is(err, ErrAborted):
			// Nothing heard, audio in flight, or the backend bailed;
			// rearm after the delay, no message for the child.
		case errors.Is(err, ErrNetwork):
			if l.onError != nil {
				l.onError(err)
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.restartDelay):
		}
	}
}
