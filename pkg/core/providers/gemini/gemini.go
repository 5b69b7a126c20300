// Package gemini adapts the Google GenAI SDK to the live session and
// demo feedback interfaces. It is the only package that imports the
// SDK; everything above it talks to the interfaces in pkg/core/live.
package gemini

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/borex256/century-music-empire/pkg/core"
)

const (
	// DefaultLiveModel is the native-audio dialog model used for the
	// A&R terminal voice line.
	DefaultLiveModel = "gemini-2.5-flash-native-audio-preview-12-2025"

	// DefaultFeedbackModel scores demo submissions.
	DefaultFeedbackModel = "gemini-2.5-flash"

	// DefaultSystemInstruction is the A&R terminal persona.
	DefaultSystemInstruction = "You are the CENTURY MUSIC EMPIRE AI A&R Terminal. " +
		"You are professional, visionary, and sharp. You evaluate talent for " +
		"global dominance. Keep responses short, direct, and elite."
)

// Config wires a Client. APIKey is required; everything else defaults.
type Config struct {
	APIKey            string
	LiveModel         string
	FeedbackModel     string
	SystemInstruction string
	Logger            *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.LiveModel == "" {
		c.LiveModel = DefaultLiveModel
	}
	if c.FeedbackModel == "" {
		c.FeedbackModel = DefaultFeedbackModel
	}
	if c.SystemInstruction == "" {
		c.SystemInstruction = DefaultSystemInstruction
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client holds one authenticated SDK client. It is safe for concurrent
// use and serves both the live dialer and the feedback generator.
type Client struct {
	api *genai.Client
	cfg Config
}

// NewClient authenticates against the Gemini API.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, core.NewAuthenticationError("gemini api key is required")
	}
	cfg.applyDefaults()

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, core.NewProviderError("gemini", err)
	}
	return &Client{api: api, cfg: cfg}, nil
}
