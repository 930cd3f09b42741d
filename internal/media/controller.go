// Package media manages the live-session media lifecycle: a lazily
// acquired local video track and the room tokens for the voice session.
package media

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// SessionState is the controller's connection state.
type SessionState int

const (
	Disconnected SessionState = iota
	Connected
)

func (s SessionState) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// VideoTrack is a live local video track.
type VideoTrack interface {
	SetMuted(muted bool)
	Stop()
}

// TrackSource acquires local media tracks.
type TrackSource interface {
	OpenVideoTrack(ctx context.Context) (VideoTrack, error)
}

// Controller owns one media session. The video track is acquired
// lazily, only while connected with the camera enabled. A failed
// acquisition leaves the session disconnected; there is no automatic
// retry, re-entering the session tries again.
type Controller struct {
	mu            sync.Mutex
	source        TrackSource
	state         SessionState
	cameraEnabled bool
	track         VideoTrack
}

// NewController creates a disconnected Controller.
// Camera starts disabled; the child opts in.
func NewController(source TrackSource) *Controller {
	return &Controller{source: source}
}

// State returns the current session state.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CameraEnabled reports the camera toggle.
func (c *Controller) CameraEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cameraEnabled
}

// Connect starts the session. When the camera is enabled the video
// track is acquired now; a track failure aborts the connect.
// Connecting while connected is a no-op.
func (c *Controller) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Connected {
		return nil
	}

	if c.cameraEnabled {
		track, err := c.source.OpenVideoTrack(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: video track unavailable: %v\n", err)
			return fmt.Errorf("open video track: %w", err)
		}
		c.track = track
	}

	c.state = Connected
	return nil
}

// Disconnect stops and releases the track and resets the session.
// Disconnecting while disconnected is a no-op.
func (c *Controller) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.track != nil {
		c.track.Stop()
		c.track = nil
	}
	c.state = Disconnected
}

// SetCameraEnabled toggles the camera. While connected, enabling
// lazily acquires the track if none exists yet and unmutes it;
// disabling mutes without releasing, so re-enabling is instant.
func (c *Controller) SetCameraEnabled(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cameraEnabled = enabled

	if c.state != Connected {
		return nil
	}

	if enabled && c.track == nil {
		track, err := c.source.OpenVideoTrack(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: video track unavailable: %v\n", err)
			c.cameraEnabled = false
			return fmt.Errorf("open video track: %w", err)
		}
		c.track = track
	}
	if c.track != nil {
		c.track.SetMuted(!enabled)
	}
	return nil
}
