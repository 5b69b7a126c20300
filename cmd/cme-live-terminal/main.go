// Command cme-live-terminal opens a voice line to the A&R terminal
// from the shell: ffmpeg captures the microphone, the model answers
// in audio, and ffplay plays the reply. It talks to the Gemini live
// API directly and does not need the gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/borex256/century-music-empire/internal/dotenv"
	"github.com/borex256/century-music-empire/pkg/core/live"
	"github.com/borex256/century-music-empire/pkg/core/providers/gemini"
)

type options struct {
	apiKey     string
	model      string
	micFormat  string
	micDevice  string
	frameMS    int
	ffmpegPath string
	ffplayPath string
	volume     int
	noSpeaker  bool
	debug      bool
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	if err := dotenv.LoadFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "cme-live-terminal:", err)
		return 1
	}

	var opt options
	flag.StringVar(&opt.apiKey, "api-key", strings.TrimSpace(os.Getenv("CME_GEMINI_API_KEY")), "Gemini API key (also reads CME_GEMINI_API_KEY or GEMINI_API_KEY)")
	flag.StringVar(&opt.model, "model", "", "Live model name (default: the native audio dialog model)")
	flag.StringVar(&opt.micFormat, "mic-format", "", "ffmpeg input format (default: pulse, avfoundation on macOS)")
	flag.StringVar(&opt.micDevice, "mic-device", "", "ffmpeg input device (default: default, :0 on macOS)")
	flag.IntVar(&opt.frameMS, "mic-frame-ms", 20, "Mic frame duration in ms (default: 20)")
	flag.StringVar(&opt.ffmpegPath, "ffmpeg-path", "ffmpeg", "Path to ffmpeg executable (default: ffmpeg)")
	flag.StringVar(&opt.ffplayPath, "ffplay-path", "ffplay", "Path to ffplay executable (default: ffplay)")
	flag.IntVar(&opt.volume, "speaker-volume", 80, "ffplay startup volume 0=min 100=max (default: 80)")
	flag.BoolVar(&opt.noSpeaker, "no-speaker", false, "Do not spawn ffplay; replies are received and discarded")
	flag.BoolVar(&opt.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if opt.apiKey == "" {
		opt.apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if opt.apiKey == "" {
		fmt.Fprintln(os.Stderr, "--api-key is required (or set CME_GEMINI_API_KEY)")
		return 2
	}

	level := slog.LevelInfo
	if opt.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runTerminal(ctx, logger, opt); err != nil {
		fmt.Fprintln(os.Stderr, "cme-live-terminal:", err)
		return 1
	}
	return 0
}

func runTerminal(ctx context.Context, logger *slog.Logger, opt options) error {
	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:    opt.apiKey,
		LiveModel: opt.model,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	captureCfg := live.CaptureConfig()
	source, err := startFFmpegSource(captureConfig{
		ffmpegPath:  opt.ffmpegPath,
		inputFormat: opt.micFormat,
		inputDevice: opt.micDevice,
		sampleRate:  captureCfg.SampleRate,
		channels:    captureCfg.Channels,
		frameMS:     opt.frameMS,
	})
	if err != nil {
		return fmt.Errorf("open microphone: %w", err)
	}
	defer source.Close()

	var out live.Output
	if opt.noSpeaker {
		out = discardSpeaker{}
	} else {
		speaker := newFFPlaySpeaker(opt.ffplayPath, live.PlaybackConfig(), opt.volume)
		if err := speaker.Start(); err != nil {
			return fmt.Errorf("start speaker: %w", err)
		}
		defer speaker.Close()
		out = speaker
	}

	ctrl, err := live.NewController(live.ControllerConfig{
		Dialer: client,
		Source: source,
		Output: out,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	fmt.Println("Connecting to the A&R terminal. Speak once the line is active; Ctrl-C hangs up.")

	for {
		select {
		case <-ctx.Done():
			ctrl.Stop()
			fmt.Println("Line closed.")
			return nil
		case ev := <-ctrl.Events():
			change, ok := ev.(live.StateChangeEvent)
			if !ok {
				continue
			}
			logger.Debug("state change", "from", change.From.String(), "to", change.To.String())
			switch change.To {
			case live.StateActive:
				fmt.Println("Line active.")
			case live.StateClosed:
				fmt.Println("Line closed.")
				return nil
			case live.StateError:
				return fmt.Errorf("session failed: %w", change.Err)
			}
		}
	}
}
