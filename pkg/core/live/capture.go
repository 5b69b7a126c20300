package live

import (
	"context"
	"errors"
	"io"
	"sync"
)

// FrameSource yields fixed-size frames of raw amplitudes in [-1, 1] at
// the capture sample rate. Returns io.EOF when the underlying device
// stream ends.
type FrameSource interface {
	ReadFrame(ctx context.Context) ([]float32, error)
	Close() error
}

// CaptureStats is a point-in-time view of the capture pipeline.
type CaptureStats struct {
	FramesSent int64
	LastRMS    float64
}

// Capture converts microphone frames to transport chunks and sends them
// over the session. One send per frame, synchronous within the loop, so
// at most one frame is ever in flight and frames go out in capture
// order.
type Capture struct {
	source FrameSource
	cfg    AudioConfig

	mu         sync.Mutex
	framesSent int64
	lastRMS    float64
}

func NewCapture(source FrameSource) *Capture {
	return &Capture{source: source, cfg: CaptureConfig()}
}

// Run pumps frames until the context is cancelled, the source ends, or
// a send fails. A clean source EOF returns nil.
func (c *Capture) Run(ctx context.Context, send func(EncodedChunk) error) error {
	for {
		frame, err := c.source.ReadFrame(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if len(frame) == 0 {
			continue
		}

		chunk := EncodeFrame(frame, c.cfg)

		c.mu.Lock()
		c.framesSent++
		c.lastRMS = RMSEnergy(frame)
		c.mu.Unlock()

		if err := send(chunk); err != nil {
			return err
		}
	}
}

// Stats returns capture counters for display.
func (c *Capture) Stats() CaptureStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CaptureStats{FramesSent: c.framesSent, LastRMS: c.lastRMS}
}
