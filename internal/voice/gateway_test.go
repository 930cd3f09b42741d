package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// blockingRecognizer blocks until its context is cancelled or release
// is closed, then returns the configured transcript.
type blockingRecognizer struct {
	mu         sync.Mutex
	transcript string
	release    chan struct{}
	started    chan struct{}
}

func newBlockingRecognizer(transcript string) *blockingRecognizer {
	return &blockingRecognizer{
		transcript: transcript,
		release:    make(chan struct{}),
		started:    make(chan struct{}, 8),
	}
}

func (r *blockingRecognizer) Recognize(ctx context.Context) (string, error) {
	r.started <- struct{}{}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-r.release:
		return r.transcript, nil
	}
}

type blockingSynthesizer struct {
	release chan struct{}
	started chan struct{}
	spoken  []string
	mu      sync.Mutex
}

func newBlockingSynthesizer() *blockingSynthesizer {
	return &blockingSynthesizer{
		release: make(chan struct{}),
		started: make(chan struct{}, 8),
	}
}

func (s *blockingSynthesizer) Speak(ctx context.Context, text, _ string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()
	s.started <- struct{}{}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.release:
		return nil
	}
}

func TestGateway_CaptureReturnsTranscript(t *testing.T) {
	rec := newBlockingRecognizer("hello buddy")
	g := NewGateway(rec, newBlockingSynthesizer())
	close(rec.release)

	transcript, err := g.Capture(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript != "hello buddy" {
		t.Fatalf("unexpected transcript: %q", transcript)
	}
	if g.State() != StateIdle {
		t.Fatalf("expected idle after capture, got %s", g.State())
	}
}

func TestGateway_CaptureWhileSpeakingIsBusy(t *testing.T) {
	rec := newBlockingRecognizer("x")
	syn := newBlockingSynthesizer()
	g := NewGateway(rec, syn)

	go g.Speak(context.Background(), "story time", "v1")
	<-syn.started

	_, err := g.Capture(context.Background())
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(syn.release)
}

func TestGateway_SecondCaptureIsBusy(t *testing.T) {
	rec := newBlockingRecognizer("x")
	g := NewGateway(rec, newBlockingSynthesizer())

	go g.Capture(context.Background())
	<-rec.started

	_, err := g.Capture(context.Background())
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(rec.release)
}

func TestGateway_SpeakInterruptsCapture(t *testing.T) {
	rec := newBlockingRecognizer("x")
	syn := newBlockingSynthesizer()
	g := NewGateway(rec, syn)

	captureErr := make(chan error, 1)
	go func() {
		_, err := g.Capture(context.Background())
		captureErr <- err
	}()
	<-rec.started

	go g.Speak(context.Background(), "important announcement", "v1")
	<-syn.started

	select {
	case err := <-captureErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancelled capture, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("capture was not interrupted")
	}
	if g.State() != StateSpeaking {
		t.Fatalf("expected speaking, got %s", g.State())
	}

	close(syn.release)
}

func TestGateway_LatestUtteranceWins(t *testing.T) {
	syn := newBlockingSynthesizer()
	g := NewGateway(newBlockingRecognizer("x"), syn)

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- g.Speak(context.Background(), "first", "v1")
	}()
	<-syn.started

	go g.Speak(context.Background(), "second", "v1")
	<-syn.started

	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected first utterance cancelled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("first utterance was not cancelled")
	}
	if g.State() != StateSpeaking {
		t.Fatalf("expected speaking, got %s", g.State())
	}

	close(syn.release)
}

func TestGateway_StopSpeaking(t *testing.T) {
	syn := newBlockingSynthesizer()
	g := NewGateway(newBlockingRecognizer("x"), syn)

	done := make(chan error, 1)
	go func() {
		done <- g.Speak(context.Background(), "long story", "v1")
	}()
	<-syn.started

	g.StopSpeaking()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("utterance did not stop")
	}
	if g.State() != StateIdle {
		t.Fatalf("expected idle, got %s", g.State())
	}
}

// listingSynthesizer enumerates installed voices and records the voice
// it was asked to use.
type listingSynthesizer struct {
	voices []SystemVoice
	usedID string
}

func (s *listingSynthesizer) Speak(ctx context.Context, text, voiceID string) error {
	s.usedID = voiceID
	return nil
}

func (s *listingSynthesizer) Voices() []SystemVoice {
	return s.voices
}

func TestGateway_SpeakResolvesVoiceThroughLister(t *testing.T) {
	syn := &listingSynthesizer{voices: []SystemVoice{
		{ID: "v1", Name: "Karen"},
		{ID: "v2", Name: "Samantha"},
	}}
	g := NewGateway(newBlockingRecognizer("x"), syn)

	if err := g.Speak(context.Background(), "hi", "samantha"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if syn.usedID != "v2" {
		t.Fatalf("expected resolved voice v2, got %q", syn.usedID)
	}
}

func TestGateway_SpeakFallsBackToFirstVoice(t *testing.T) {
	syn := &listingSynthesizer{voices: []SystemVoice{
		{ID: "v1", Name: "Karen"},
	}}
	g := NewGateway(newBlockingRecognizer("x"), syn)

	if err := g.Speak(context.Background(), "hi", "no-such-voice"); err != nil {
		t.Fatalf("speak: %v", err)
	}
	if syn.usedID != "v1" {
		t.Fatalf("expected first-voice fallback, got %q", syn.usedID)
	}
}
