// Package config loads gateway configuration from CME_-prefixed
// environment variables and validates it before the server starts.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	// DatabaseURL selects the catalog backend. When empty the gateway
	// serves the built-in seed catalog from memory.
	DatabaseURL string

	GeminiAPIKey   string
	StripeAPIKey   string
	WorkOSAPIKey   string
	WorkOSClientID string

	// SettingsPath is where client preferences (theme, remembered
	// login, cart) are persisted between runs.
	SettingsPath string

	// If true, client identity may be derived from proxy headers like
	// X-Forwarded-For. Only enable behind a trusted proxy/LB.
	TrustProxyHeaders bool

	MaxBodyBytes int64

	// CORS
	CORSAllowedOrigins map[string]struct{} // empty => disabled

	// Live WebSocket mode (/v1/live).
	LiveMaxAudioFrameBytes  int
	LiveMaxJSONMessageBytes int64
	LiveWSPingInterval      time.Duration
	LiveWSWriteTimeout      time.Duration
	LiveHandshakeTimeout    time.Duration
	LiveMaxSessionDuration  time.Duration

	// Simulated async backends.
	CaptchaDelay   time.Duration
	BookingDelay   time.Duration
	PaymentLatency time.Duration

	// In-memory limits (per client).
	LimitRPS                   float64
	LimitBurst                 int
	LimitMaxConcurrentRequests int
	LimitMaxConcurrentStreams  int

	// Operational defaults
	ReadHeaderTimeout   time.Duration
	ReadTimeout         time.Duration
	HandlerTimeout      time.Duration
	ShutdownGracePeriod time.Duration
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		Addr:                       envOr("CME_ADDR", ":8080"),
		DatabaseURL:                envOr("CME_DATABASE_URL", ""),
		GeminiAPIKey:               envOr("CME_GEMINI_API_KEY", os.Getenv("GEMINI_API_KEY")),
		StripeAPIKey:               envOr("CME_STRIPE_API_KEY", ""),
		WorkOSAPIKey:               envOr("CME_WORKOS_API_KEY", ""),
		WorkOSClientID:             envOr("CME_WORKOS_CLIENT_ID", ""),
		SettingsPath:               envOr("CME_SETTINGS_PATH", "cme-settings.json"),
		TrustProxyHeaders:          envBoolOr("CME_TRUST_PROXY_HEADERS", false),
		MaxBodyBytes:               envInt64Or("CME_MAX_BODY_BYTES", 1<<20), // 1 MiB
		CORSAllowedOrigins:         make(map[string]struct{}),
		LiveMaxAudioFrameBytes:     envIntOr("CME_LIVE_MAX_AUDIO_FRAME_BYTES", 32*1024),
		LiveMaxJSONMessageBytes:    envInt64Or("CME_LIVE_MAX_JSON_MESSAGE_BYTES", 64*1024),
		LiveWSPingInterval:         envDurationOr("CME_LIVE_WS_PING_INTERVAL", 20*time.Second),
		LiveWSWriteTimeout:         envDurationOr("CME_LIVE_WS_WRITE_TIMEOUT", 5*time.Second),
		LiveHandshakeTimeout:       envDurationOr("CME_LIVE_HANDSHAKE_TIMEOUT", 5*time.Second),
		LiveMaxSessionDuration:     envDurationOr("CME_LIVE_MAX_SESSION_DURATION", 30*time.Minute),
		CaptchaDelay:               envDurationOr("CME_CAPTCHA_DELAY", 800*time.Millisecond),
		BookingDelay:               envDurationOr("CME_BOOKING_DELAY", 1500*time.Millisecond),
		PaymentLatency:             envDurationOr("CME_PAYMENT_LATENCY", 3*time.Second),
		LimitRPS:                   envFloat64Or("CME_RATE_LIMIT_RPS", 5.0),
		LimitBurst:                 envIntOr("CME_RATE_LIMIT_BURST", 10),
		LimitMaxConcurrentRequests: envIntOr("CME_MAX_CONCURRENT_REQUESTS", 20),
		LimitMaxConcurrentStreams:  envIntOr("CME_MAX_LIVE_SESSIONS_PER_CLIENT", 2),
		ReadHeaderTimeout:          envDurationOr("CME_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:                envDurationOr("CME_READ_TIMEOUT", 30*time.Second),
		HandlerTimeout:             envDurationOr("CME_TOTAL_REQUEST_TIMEOUT", 2*time.Minute),
		ShutdownGracePeriod:        envDurationOr("CME_SHUTDOWN_GRACE_PERIOD", 30*time.Second),
	}

	for _, origin := range splitCSV(os.Getenv("CME_CORS_ORIGINS")) {
		cfg.CORSAllowedOrigins[origin] = struct{}{}
	}

	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("CME_MAX_BODY_BYTES must be > 0")
	}
	if cfg.LiveMaxAudioFrameBytes <= 0 {
		return Config{}, fmt.Errorf("CME_LIVE_MAX_AUDIO_FRAME_BYTES must be > 0")
	}
	if cfg.LiveMaxJSONMessageBytes <= 0 {
		return Config{}, fmt.Errorf("CME_LIVE_MAX_JSON_MESSAGE_BYTES must be > 0")
	}
	if cfg.LiveWSPingInterval <= 0 {
		return Config{}, fmt.Errorf("CME_LIVE_WS_PING_INTERVAL must be > 0")
	}
	if cfg.LiveWSWriteTimeout <= 0 {
		return Config{}, fmt.Errorf("CME_LIVE_WS_WRITE_TIMEOUT must be > 0")
	}
	if cfg.LiveHandshakeTimeout <= 0 {
		return Config{}, fmt.Errorf("CME_LIVE_HANDSHAKE_TIMEOUT must be > 0")
	}
	if cfg.LiveMaxSessionDuration <= 0 {
		return Config{}, fmt.Errorf("CME_LIVE_MAX_SESSION_DURATION must be > 0")
	}
	if cfg.CaptchaDelay < 0 {
		return Config{}, fmt.Errorf("CME_CAPTCHA_DELAY must be >= 0")
	}
	if cfg.BookingDelay < 0 {
		return Config{}, fmt.Errorf("CME_BOOKING_DELAY must be >= 0")
	}
	if cfg.PaymentLatency < 0 {
		return Config{}, fmt.Errorf("CME_PAYMENT_LATENCY must be >= 0")
	}
	if cfg.LimitRPS < 0 {
		return Config{}, fmt.Errorf("CME_RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.LimitBurst < 0 {
		return Config{}, fmt.Errorf("CME_RATE_LIMIT_BURST must be >= 0")
	}
	if cfg.LimitMaxConcurrentRequests < 0 {
		return Config{}, fmt.Errorf("CME_MAX_CONCURRENT_REQUESTS must be >= 0")
	}
	if cfg.LimitMaxConcurrentStreams < 0 {
		return Config{}, fmt.Errorf("CME_MAX_LIVE_SESSIONS_PER_CLIENT must be >= 0")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return Config{}, fmt.Errorf("CME_READ_HEADER_TIMEOUT must be > 0")
	}
	if cfg.ReadTimeout <= 0 {
		return Config{}, fmt.Errorf("CME_READ_TIMEOUT must be > 0")
	}
	if cfg.HandlerTimeout <= 0 {
		return Config{}, fmt.Errorf("CME_TOTAL_REQUEST_TIMEOUT must be > 0")
	}
	if cfg.ShutdownGracePeriod <= 0 {
		return Config{}, fmt.Errorf("CME_SHUTDOWN_GRACE_PERIOD must be > 0")
	}
	if strings.TrimSpace(cfg.SettingsPath) == "" {
		return Config{}, fmt.Errorf("CME_SETTINGS_PATH must not be empty")
	}
	if (cfg.WorkOSAPIKey == "") != (cfg.WorkOSClientID == "") {
		return Config{}, fmt.Errorf("CME_WORKOS_API_KEY and CME_WORKOS_CLIENT_ID must be set together")
	}

	return cfg, nil
}

func envOr(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64Or(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envIntOr(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envFloat64Or(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return n
}

func envBoolOr(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envDurationOr(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
