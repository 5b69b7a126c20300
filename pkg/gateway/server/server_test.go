package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/borex256/century-music-empire/pkg/core/types"
	"github.com/borex256/century-music-empire/pkg/gateway/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Addr:                   ":0",
		SettingsPath:           filepath.Join(t.TempDir(), "settings.json"),
		MaxBodyBytes:           1 << 20,
		CORSAllowedOrigins:     map[string]struct{}{},
		LiveMaxAudioFrameBytes: 32 * 1024,
		LiveWSPingInterval:     time.Second,
		LiveWSWriteTimeout:     time.Second,
		LiveHandshakeTimeout:   time.Second,
		LiveMaxSessionDuration: time.Minute,
		PaymentLatency:         time.Millisecond,
		ReadHeaderTimeout:      time.Second,
		ReadTimeout:            time.Second,
		HandlerTimeout:         time.Minute,
		ShutdownGracePeriod:    time.Second,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return New(testConfig(t), logger, Dependencies{})
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%q", ct)
	}
	if !strings.Contains(rr.Body.String(), `"type":"not_found_error"`) {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

func TestSeedCatalogRoutes(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path string
		min  int
	}{
		{"/v1/artists", 3},
		{"/v1/team", 3},
		{"/v1/events", 1},
		{"/v1/playlist", 2},
		{"/v1/vault", 3},
		{"/v1/gallery", 5},
		{"/v1/distribution/features", 4},
		{"/v1/store/items", 2},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rr.Code != http.StatusOK {
				t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
			}
			var items []json.RawMessage
			if err := json.Unmarshal(rr.Body.Bytes(), &items); err != nil {
				t.Fatalf("body not a JSON array: %v", err)
			}
			if len(items) < tt.min {
				t.Fatalf("len=%d, want >= %d", len(items), tt.min)
			}
		})
	}
}

func TestArtistLookup(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/artists/kimcug", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/artists/nobody", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestCheckoutThroughTheFullStack(t *testing.T) {
	s := newTestServer(t)

	body := `{"items":[{"id":"shirt-1","quantity":2}],"currency":"UGX","phone":"0772123456","network":"MTN"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}

	var receipt struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("receipt not JSON: %v", err)
	}
	if receipt.Amount != 100000 {
		t.Fatalf("amount=%d, want 100000", receipt.Amount)
	}
	if receipt.Currency != "UGX" {
		t.Fatalf("currency=%q", receipt.Currency)
	}
}

func TestCheckoutRejectsBadPhone(t *testing.T) {
	s := newTestServer(t)

	body := `{"items":[{"id":"shirt-1","quantity":1}],"currency":"UGX","phone":"12345","network":"MTN"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/checkout", strings.NewReader(body))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusPaymentRequired {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestLoginWithStubBackend(t *testing.T) {
	s := newTestServer(t)

	body := `{"email":"boss@century.example","password":"dynasty","remember":false}`
	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}

	var user struct {
		Email      string `json:"email"`
		IsLoggedIn bool   `json:"is_logged_in"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &user); err != nil {
		t.Fatalf("user not JSON: %v", err)
	}
	if user.Email != "boss@century.example" || !user.IsLoggedIn {
		t.Fatalf("user=%+v", user)
	}
}

func TestDemoRouteReportsDisabledWithoutARClient(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/demo", strings.NewReader(`{"lyrics":"x"}`))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rr.Body.String(), "demo_disabled") {
		t.Fatalf("body=%q, want demo_disabled code", rr.Body.String())
	}
}

func TestDemoRouteAppliesHandlerTimeout(t *testing.T) {
	deadlines := make(chan bool, 1)
	cfg := testConfig(t)
	cfg.HandlerTimeout = 50 * time.Millisecond
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s := New(cfg, logger, Dependencies{AR: deadlineRecordingAR{deadlines: deadlines}})

	req := httptest.NewRequest(http.MethodPost, "/v1/demo", strings.NewReader(`{"lyrics":"x"}`))
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
	select {
	case had := <-deadlines:
		if !had {
			t.Fatal("provider context carries no deadline")
		}
	default:
		t.Fatal("provider was not called")
	}
}

type deadlineRecordingAR struct {
	deadlines chan bool
}

func (a deadlineRecordingAR) DemoFeedback(ctx context.Context, lyrics string) (*types.DemoFeedback, error) {
	_, ok := ctx.Deadline()
	a.deadlines <- ok
	return &types.DemoFeedback{Potential: 50, Feedback: "ok", Vibe: "calm"}, nil
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Body.String() != "ok\n" {
		t.Fatalf("body=%q", rr.Body.String())
	}
}

func TestReadyzReportsDrainingDuringShutdown(t *testing.T) {
	s := newTestServer(t)

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("before draining status=%d, want %d", rr.Code, http.StatusOK)
	}

	s.SetDraining()

	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("draining status=%d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rr.Body.String(), `"draining":true`) {
		t.Fatalf("body=%q, want draining flag", rr.Body.String())
	}
}
