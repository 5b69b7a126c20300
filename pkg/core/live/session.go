package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/borex256/century-music-empire/pkg/core"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateActive
	StateClosed
	StateError
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateActive:
		return "ACTIVE"
	case StateClosed:
		return "CLOSED"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state ends the session.
func (s State) Terminal() bool {
	return s == StateClosed || s == StateError
}

// Event is a controller notification surfaced to the UI layer.
type Event interface {
	eventType() string
}

// StateChangeEvent reports one state machine transition. Err is set only
// on transitions into StateError.
type StateChangeEvent struct {
	From State
	To   State
	Err  error
}

func (StateChangeEvent) eventType() string { return "state_change" }

// ControllerConfig wires a Controller.
type ControllerConfig struct {
	Dialer Dialer
	Source FrameSource
	Output Output

	// Clock defaults to a wall clock started at construction.
	Clock Clock

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Controller owns the session lifecycle: it dials the handle, starts
// capture once the remote acknowledges open, routes inbound audio to
// playback, and tears everything down on stop, remote close, or error.
type Controller struct {
	dialer Dialer
	source FrameSource
	log    *slog.Logger

	capture  *Capture
	playback *Playback

	mu     sync.Mutex
	state  State
	handle Handle
	cancel context.CancelFunc
	done   chan struct{}

	events chan Event
}

// NewController validates the wiring and returns an idle controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if cfg.Dialer == nil {
		return nil, core.NewInvalidRequestError("live controller requires a dialer")
	}
	if cfg.Source == nil {
		return nil, core.NewInvalidRequestError("live controller requires a frame source")
	}
	if cfg.Output == nil {
		return nil, core.NewInvalidRequestError("live controller requires an output")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = NewWallClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		dialer:   cfg.Dialer,
		source:   cfg.Source,
		log:      logger,
		capture:  NewCapture(cfg.Source),
		playback: NewPlayback(clock, cfg.Output),
		state:    StateIdle,
		events:   make(chan Event, 64),
	}, nil
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Active is the UI-visible activity flag: true from start until a
// terminal transition.
func (c *Controller) Active() bool {
	s := c.State()
	return s == StateConnecting || s == StateActive
}

// Events yields state change notifications. Emission is non-blocking;
// a consumer that stops reading misses events rather than stalling the
// session.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// CaptureStats returns outbound pipeline counters.
func (c *Controller) CaptureStats() CaptureStats {
	return c.capture.Stats()
}

// Start begins a session. A no-op (not an error) while a session is
// connecting or active; a new session may start after a terminal state.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateActive {
		c.mu.Unlock()
		return nil
	}
	prev := c.done
	c.mu.Unlock()

	// The terminal event fires before the previous run goroutine has
	// released the source and playback state. Wait for that cleanup so
	// it cannot close resources out from under the new session.
	if prev != nil {
		<-prev
	}

	c.mu.Lock()
	if c.state == StateConnecting || c.state == StateActive {
		c.mu.Unlock()
		return nil
	}
	from := c.state
	c.state = StateConnecting
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	c.emit(StateChangeEvent{From: from, To: StateConnecting})
	go c.run(runCtx, done)
	return nil
}

// Stop tears down an in-flight session: the handle closes, capture
// stops, the microphone source is released, and scheduled playback is
// dropped. A no-op when no session is running.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateConnecting && c.state != StateActive {
		c.mu.Unlock()
		return
	}
	cancel := c.cancel
	handle := c.handle
	done := c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if handle != nil {
		_ = handle.Close()
	}
	if done != nil {
		<-done
	}
}

func (c *Controller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	handle, err := c.dialer.Dial(ctx)
	if err != nil {
		// A dial cancelled by a local Stop is a clean hang-up, not a
		// session failure.
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			c.finish(StateClosed, nil)
			return
		}
		c.log.Error("live session dial failed", "error", err)
		c.finish(StateError, core.AsError(err, "live"))
		return
	}

	c.mu.Lock()
	c.handle = handle
	c.mu.Unlock()

	captureCtx, stopCapture := context.WithCancel(ctx)
	defer stopCapture()
	captureStarted := false

	defer func() {
		stopCapture()
		_ = c.source.Close()
		_ = handle.Close()
		c.playback.Reset()
		c.mu.Lock()
		c.handle = nil
		c.mu.Unlock()
	}()

	for event := range handle.Events() {
		switch e := event.(type) {
		case OpenEvent:
			c.transition(StateActive, nil)
			if !captureStarted {
				captureStarted = true
				go func() {
					if err := c.capture.Run(captureCtx, handle.Send); err != nil {
						c.log.Warn("capture pipeline stopped", "error", err)
					}
				}()
			}
		case AudioEvent:
			if err := c.playback.HandleChunk(e.Chunk); err != nil {
				c.log.Warn("dropping undecodable audio chunk", "error", err)
			}
		case ErrorEvent:
			c.log.Error("live session error", "error", e.Err)
			c.finish(StateError, core.AsError(e.Err, "live"))
			return
		case CloseEvent:
			c.finish(StateClosed, nil)
			return
		}
	}

	// Handle channel closed without a terminal event: local stop or
	// transport teardown. Treat as a clean close.
	c.finish(StateClosed, nil)
}

// transition moves to a non-terminal state unless already terminal.
func (c *Controller) transition(to State, err error) {
	c.mu.Lock()
	from := c.state
	if from == to || from.Terminal() {
		c.mu.Unlock()
		return
	}
	c.state = to
	c.mu.Unlock()
	c.emit(StateChangeEvent{From: from, To: to, Err: err})
}

// finish enters a terminal state exactly once.
func (c *Controller) finish(to State, err error) {
	c.mu.Lock()
	from := c.state
	if from.Terminal() {
		c.mu.Unlock()
		return
	}
	c.state = to
	c.mu.Unlock()
	c.emit(StateChangeEvent{From: from, To: to, Err: err})
}

func (c *Controller) emit(event Event) {
	select {
	case c.events <- event:
	default:
		// Slow consumers miss events; the session never blocks on them.
	}
}
