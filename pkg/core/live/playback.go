package live

import (
	"sync"
	"time"
)

// Clock reads the output device playback clock, in seconds. Tests use a
// manual implementation.
type Clock interface {
	Now() float64
}

// WallClock measures seconds elapsed since construction.
type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// Output receives decoded buffers with absolute start times against the
// device clock.
type Output interface {
	PlayAt(buf PlaybackBuffer, start float64) error
}

type scheduledSource struct {
	start float64
	end   float64
}

// Scheduler sequences playback buffers back-to-back. It keeps a cursor
// that is monotonically non-decreasing and always at or ahead of the
// device clock, so buffers never overlap and never start in the past.
// Frames arriving faster than real time queue up gaplessly; frames
// arriving late add latency rather than being dropped.
type Scheduler struct {
	clock Clock

	mu        sync.Mutex
	nextStart float64
	inflight  []scheduledSource
}

func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Schedule assigns the buffer duration a start time of
// max(cursor, clock.Now()) and advances the cursor by the duration.
// Sources whose end time has passed the clock are pruned on every call,
// so retention is bounded by audio actually in flight.
func (s *Scheduler) Schedule(duration float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.nextStart < now {
		s.nextStart = now
	}
	start := s.nextStart
	s.nextStart += duration

	kept := s.inflight[:0]
	for _, src := range s.inflight {
		if src.end > now {
			kept = append(kept, src)
		}
	}
	s.inflight = append(kept, scheduledSource{start: start, end: start + duration})
	return start
}

// Cursor returns the next start time.
func (s *Scheduler) Cursor() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextStart
}

// InFlight returns the number of retained sources, pruned against the
// current clock.
func (s *Scheduler) InFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	n := 0
	for _, src := range s.inflight {
		if src.end > now {
			n++
		}
	}
	return n
}

// Reset releases all retained sources and rewinds the cursor to the
// current clock. Called on terminal session transitions.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight = nil
	s.nextStart = s.clock.Now()
}

// Playback decodes inbound chunks and schedules them for gapless
// sequential output.
type Playback struct {
	sched *Scheduler
	out   Output
	cfg   AudioConfig
}

func NewPlayback(clock Clock, out Output) *Playback {
	return &Playback{
		sched: NewScheduler(clock),
		out:   out,
		cfg:   PlaybackConfig(),
	}
}

// HandleChunk decodes one chunk and hands it to the output at its
// scheduled start time.
func (p *Playback) HandleChunk(chunk EncodedChunk) error {
	buf, err := DecodeChunk(chunk, p.cfg)
	if err != nil {
		return err
	}
	start := p.sched.Schedule(buf.Duration())
	return p.out.PlayAt(buf, start)
}

// Scheduler exposes the underlying scheduler for inspection.
func (p *Playback) Scheduler() *Scheduler {
	return p.sched
}

// Reset releases scheduled state.
func (p *Playback) Reset() {
	p.sched.Reset()
}
