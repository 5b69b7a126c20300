package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/borex256/century-music-empire/pkg/core/live"
)

type captureConfig struct {
	ffmpegPath  string
	inputFormat string
	inputDevice string
	sampleRate  int
	channels    int
	frameMS     int
}

// ffmpegSource captures microphone audio through an ffmpeg child
// process and yields fixed-duration frames of normalized samples. A
// background goroutine drains ffmpeg stdout so ReadFrame can honor
// context cancellation.
type ffmpegSource struct {
	cfg    captureConfig
	stderr *bytes.Buffer

	process *os.Process
	waitErr <-chan error

	frames chan []float32
	closed chan struct{}

	stopOnce sync.Once
	stopErr  error
}

func defaultInputFormat() string {
	if runtime.GOOS == "darwin" {
		return "avfoundation"
	}
	return "pulse"
}

func defaultInputDevice(format string) string {
	if format == "avfoundation" {
		return ":0"
	}
	return "default"
}

func startFFmpegSource(cfg captureConfig) (*ffmpegSource, error) {
	if cfg.ffmpegPath == "" {
		cfg.ffmpegPath = "ffmpeg"
	}
	if cfg.inputFormat == "" {
		cfg.inputFormat = defaultInputFormat()
	}
	if cfg.inputDevice == "" {
		cfg.inputDevice = defaultInputDevice(cfg.inputFormat)
	}
	if cfg.sampleRate <= 0 {
		cfg.sampleRate = 16000
	}
	if cfg.channels <= 0 {
		cfg.channels = 1
	}
	if cfg.frameMS <= 0 {
		cfg.frameMS = 20
	}

	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", cfg.inputFormat,
		"-i", cfg.inputDevice,
		"-ac", strconv.Itoa(cfg.channels),
		"-ar", strconv.Itoa(cfg.sampleRate),
		"-f", "s16le",
		"-",
	}

	cmd := exec.Command(cfg.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	// Give ffmpeg a beat to fail on a missing device before we commit.
	select {
	case err := <-waitErr:
		if err != nil {
			return nil, fmt.Errorf("ffmpeg exited before capture started: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, errors.New("ffmpeg exited before capture started")
	case <-time.After(250 * time.Millisecond):
	}

	s := &ffmpegSource{
		cfg:     cfg,
		stderr:  &stderr,
		process: cmd.Process,
		waitErr: waitErr,
		frames:  make(chan []float32, 8),
		closed:  make(chan struct{}),
	}
	go s.readLoop(stdout)
	return s, nil
}

func (s *ffmpegSource) readLoop(stdout io.Reader) {
	defer close(s.frames)

	audioCfg := live.AudioConfig{SampleRate: s.cfg.sampleRate, Channels: s.cfg.channels, BitsPerSample: 16}
	frameBytes := s.cfg.sampleRate * s.cfg.channels * 2 * s.cfg.frameMS / 1000
	buf := make([]byte, frameBytes)
	for {
		if _, err := io.ReadFull(stdout, buf); err != nil {
			return
		}
		select {
		case s.frames <- live.DecodePCM(buf, audioCfg).Samples:
		case <-s.closed:
			return
		}
	}
}

func (s *ffmpegSource) ReadFrame(ctx context.Context) ([]float32, error) {
	select {
	case frame, ok := <-s.frames:
		if !ok {
			return nil, io.EOF
		}
		return frame, nil
	case <-s.closed:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *ffmpegSource) Close() error {
	s.stopOnce.Do(func() {
		close(s.closed)
		if s.process != nil {
			_ = s.process.Signal(os.Interrupt)
		}
		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.stopErr = normalizeStopErr(err)
			}
		case <-time.After(1200 * time.Millisecond):
			if s.process != nil {
				_ = s.process.Kill()
			}
			err, ok := <-s.waitErr
			if ok {
				s.stopErr = normalizeStopErr(err)
			}
		}
	})
	return s.stopErr
}

// normalizeStopErr hides the exit status ffmpeg reports after an
// interrupt; a deliberate stop is not a capture failure.
func normalizeStopErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
