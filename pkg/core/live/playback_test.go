package live

import (
	"math"
	"sync"
	"testing"
)

// manualClock is a test clock advanced by hand.
type manualClock struct {
	mu  sync.Mutex
	now float64
}

func (c *manualClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d float64) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

type recordedPlay struct {
	duration float64
	start    float64
}

type recordingOutput struct {
	mu    sync.Mutex
	plays []recordedPlay
}

func (o *recordingOutput) PlayAt(buf PlaybackBuffer, start float64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.plays = append(o.plays, recordedPlay{duration: buf.Duration(), start: start})
	return nil
}

func TestSchedulerBackToBackSequencing(t *testing.T) {
	// Three buffers arriving before the clock passes the end of the
	// first must start at t1, t1+d1, t1+d1+d2 regardless of arrival
	// jitter.
	clock := &manualClock{now: 1.0}
	sched := NewScheduler(clock)

	d1, d2, d3 := 0.4, 0.3, 0.5
	starts := []float64{
		sched.Schedule(d1),
		sched.Schedule(d2),
		sched.Schedule(d3),
	}

	want := []float64{1.0, 1.4, 1.7}
	for i := range want {
		if math.Abs(starts[i]-want[i]) > 1e-9 {
			t.Errorf("buffer %d: start %f, want %f", i, starts[i], want[i])
		}
	}
	if cursor := sched.Cursor(); math.Abs(cursor-2.2) > 1e-9 {
		t.Errorf("cursor = %f, want 2.2", cursor)
	}
}

func TestSchedulerCursorNeverBehindClock(t *testing.T) {
	clock := &manualClock{}
	sched := NewScheduler(clock)

	first := sched.Schedule(0.1)
	if first != 0 {
		t.Fatalf("first start = %f, want 0", first)
	}

	// Let the clock run well past the scheduled audio; the next buffer
	// must start at the device clock, not at the stale cursor.
	clock.Advance(5.0)
	late := sched.Schedule(0.1)
	if math.Abs(late-5.0) > 1e-9 {
		t.Errorf("late start = %f, want 5.0", late)
	}
}

func TestSchedulerMonotoneCursor(t *testing.T) {
	clock := &manualClock{}
	sched := NewScheduler(clock)

	prev := sched.Cursor()
	durations := []float64{0.25, 0.05, 0.8, 0.01}
	for i, d := range durations {
		sched.Schedule(d)
		cur := sched.Cursor()
		if cur < prev {
			t.Fatalf("cursor decreased after schedule %d: %f -> %f", i, prev, cur)
		}
		prev = cur
		clock.Advance(0.1)
	}
}

func TestSchedulerPrunesFinishedSources(t *testing.T) {
	clock := &manualClock{}
	sched := NewScheduler(clock)

	for i := 0; i < 10; i++ {
		sched.Schedule(0.1)
	}
	if got := sched.InFlight(); got != 10 {
		t.Fatalf("expected 10 in-flight sources, got %d", got)
	}

	// All scheduled audio ends by t=1.0.
	clock.Advance(1.0)
	sched.Schedule(0.1)
	if got := sched.InFlight(); got != 1 {
		t.Errorf("expected retention bounded to the live source, got %d", got)
	}
}

func TestSchedulerReset(t *testing.T) {
	clock := &manualClock{now: 2.0}
	sched := NewScheduler(clock)
	sched.Schedule(3.0)

	sched.Reset()
	if got := sched.InFlight(); got != 0 {
		t.Errorf("expected no sources after reset, got %d", got)
	}
	if cursor := sched.Cursor(); math.Abs(cursor-2.0) > 1e-9 {
		t.Errorf("cursor = %f, want clock value 2.0", cursor)
	}
}

func TestPlaybackSchedulesDecodedChunks(t *testing.T) {
	clock := &manualClock{}
	out := &recordingOutput{}
	playback := NewPlayback(clock, out)

	// 2400 samples at 24 kHz = 100 ms per chunk.
	frame := make([]float32, 2400)
	chunk := EncodeFrame(frame, PlaybackConfig())

	for i := 0; i < 3; i++ {
		if err := playback.HandleChunk(chunk); err != nil {
			t.Fatalf("HandleChunk error: %v", err)
		}
	}

	out.mu.Lock()
	defer out.mu.Unlock()
	if len(out.plays) != 3 {
		t.Fatalf("expected 3 plays, got %d", len(out.plays))
	}
	wantStarts := []float64{0, 0.1, 0.2}
	for i, p := range out.plays {
		if math.Abs(p.start-wantStarts[i]) > 1e-9 {
			t.Errorf("play %d: start %f, want %f", i, p.start, wantStarts[i])
		}
		if math.Abs(p.duration-0.1) > 1e-9 {
			t.Errorf("play %d: duration %f, want 0.1", i, p.duration)
		}
	}
}
