package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/borex256/century-music-empire/pkg/gateway/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                    ":8080",
		SettingsPath:            "settings.json",
		MaxBodyBytes:            1 << 20,
		LiveMaxAudioFrameBytes:  32 * 1024,
		LiveMaxJSONMessageBytes: 64 * 1024,
		LiveWSPingInterval:      20 * time.Second,
		LiveWSWriteTimeout:      5 * time.Second,
		LiveHandshakeTimeout:    5 * time.Second,
		LiveMaxSessionDuration:  30 * time.Minute,
		ReadHeaderTimeout:       10 * time.Second,
		ReadTimeout:             30 * time.Second,
		HandlerTimeout:          2 * time.Minute,
		ShutdownGracePeriod:     30 * time.Second,
	}
}

func TestHealthHandlerSaysOK(t *testing.T) {
	rr := httptest.NewRecorder()
	HealthHandler{}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Body.String() != "ok\n" {
		t.Fatalf("body=%q", rr.Body.String())
	}
}

func TestReadyHandlerReportsModes(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = "postgres://cme@localhost/cme"
	cfg.GeminiAPIKey = "key"

	rr := httptest.NewRecorder()
	ReadyHandler{Config: cfg}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}

	var resp struct {
		OK          bool   `json:"ok"`
		Catalog     string `json:"catalog"`
		LiveEnabled bool   `json:"live_enabled"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if !resp.OK {
		t.Fatal("not ready")
	}
	if resp.Catalog != "postgres" {
		t.Fatalf("catalog=%q", resp.Catalog)
	}
	if !resp.LiveEnabled {
		t.Fatal("live should be enabled")
	}
}

func TestReadyHandlerFlagsBadConfig(t *testing.T) {
	cfg := validConfig()
	cfg.MaxBodyBytes = 0
	cfg.SettingsPath = ""

	rr := httptest.NewRecorder()
	ReadyHandler{Config: cfg}.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rr.Code)
	}

	var resp struct {
		OK     bool     `json:"ok"`
		Issues []string `json:"issues"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if resp.OK || len(resp.Issues) < 2 {
		t.Fatalf("resp=%+v", resp)
	}
}
