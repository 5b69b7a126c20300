package live

import "context"

// Handle is one open connection to the remote AI endpoint. One handle
// per session lifetime; there is no retry or reconnect.
type Handle interface {
	// Send queues a chunk for transmission, fire-and-forget. Sends
	// before the open notification are dropped silently, not queued.
	Send(chunk EncodedChunk) error

	// Events yields inbound notifications in arrival order. The channel
	// closes after a close or error event.
	Events() <-chan HandleEvent

	// Close tears down the connection. Safe to call more than once.
	Close() error
}

// Dialer opens handles. Implemented by the provider adapters; tests use
// a fake.
type Dialer interface {
	Dial(ctx context.Context) (Handle, error)
}

// HandleEvent is an inbound notification from the remote endpoint.
type HandleEvent interface {
	handleEventType() string
}

// OpenEvent acknowledges the connection; capture starts after it.
type OpenEvent struct{}

func (OpenEvent) handleEventType() string { return "open" }

// AudioEvent carries one inbound encoded audio chunk.
type AudioEvent struct {
	Chunk EncodedChunk
}

func (AudioEvent) handleEventType() string { return "audio" }

// ErrorEvent reports a transport-level failure. Terminal.
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) handleEventType() string { return "error" }

// CloseEvent reports remote closure. Terminal.
type CloseEvent struct{}

func (CloseEvent) handleEventType() string { return "close" }
