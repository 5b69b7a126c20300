package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/borex256/century-music-empire/pkg/core/live"
)

// ffplaySpeaker plays PCM through an ffplay child process. Buffers are
// written to stdin in schedule order; ffplay's own device buffering
// handles pacing, so the scheduled start time is not needed here.
type ffplaySpeaker struct {
	path       string
	sampleRate int
	channels   int
	volume     int

	runningMu sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
}

func newFFPlaySpeaker(path string, cfg live.AudioConfig, volume int) *ffplaySpeaker {
	if path == "" {
		path = "ffplay"
	}
	if volume <= 0 {
		volume = 80
	}
	return &ffplaySpeaker{path: path, sampleRate: cfg.SampleRate, channels: cfg.Channels, volume: volume}
}

func (s *ffplaySpeaker) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.startLocked()
}

func (s *ffplaySpeaker) startLocked() error {
	if s.cmd != nil && s.cmd.Process != nil {
		return nil
	}
	// ffplay does not accept ffmpeg-style `-ac`; use `-ch_layout`.
	chLayout := "mono"
	if s.channels == 2 {
		chLayout = "stereo"
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostats",
		"-volume", fmt.Sprintf("%d", s.volume),
		"-nodisp",
		"-f", "s16le",
		"-ch_layout", chLayout,
		"-ar", fmt.Sprintf("%d", s.sampleRate),
		"-i", "-",
	}
	cmd := exec.Command(s.path, args...)
	if runtime.GOOS == "darwin" {
		// SDL can pick a silent dummy audio backend on macOS; prefer
		// CoreAudio unless the user overrides it.
		if os.Getenv("SDL_AUDIODRIVER") == "" {
			cmd.Env = append(os.Environ(), "SDL_AUDIODRIVER=coreaudio")
		}
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return err
	}
	s.cmd = cmd
	s.stdin = stdin
	go func(c *exec.Cmd) {
		_ = c.Wait()
		s.runningMu.Lock()
		if s.cmd == c {
			s.cmd = nil
			s.stdin = nil
		}
		s.runningMu.Unlock()
	}(cmd)
	return nil
}

// PlayAt implements live.Output.
func (s *ffplaySpeaker) PlayAt(buf live.PlaybackBuffer, _ float64) error {
	pcm := packPCM16(buf.Samples)
	if len(pcm) == 0 {
		return nil
	}

	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if err := s.startLocked(); err != nil {
		return err
	}
	if s.stdin == nil {
		return fmt.Errorf("ffplay is not running")
	}
	_, err := s.stdin.Write(pcm)
	return err
}

// packPCM16 converts float amplitudes in [-1, 1] to raw little-endian
// PCM16 bytes for the ffplay stdin stream.
func packPCM16(samples []float32) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, sample := range samples {
		v := int32(sample * 32768)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		}
		if v < math.MinInt16 {
			v = math.MinInt16
		}
		pcm[i*2] = byte(v)
		pcm[i*2+1] = byte(v >> 8)
	}
	return pcm
}

func (s *ffplaySpeaker) Close() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.stdin != nil {
		_ = s.stdin.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	s.cmd = nil
	s.stdin = nil
	return nil
}

// discardSpeaker drops playback. Used with --no-speaker so the rest of
// the pipeline still runs end to end.
type discardSpeaker struct{}

func (discardSpeaker) PlayAt(live.PlaybackBuffer, float64) error { return nil }
