package handlers

import (
	"net/http"

	"github.com/borex256/century-music-empire/pkg/gateway/config"
	"github.com/borex256/century-music-empire/pkg/gateway/lifecycle"
)

type HealthHandler struct{}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

type ReadyHandler struct {
	Config    config.Config
	Lifecycle *lifecycle.Lifecycle
}

func (h ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	type readyResp struct {
		OK            bool     `json:"ok"`
		Draining      bool     `json:"draining,omitempty"`
		Catalog       string   `json:"catalog,omitempty"`
		LiveEnabled   bool     `json:"live_enabled"`
		StripeEnabled bool     `json:"stripe_enabled"`
		LimitsEnabled bool     `json:"limits_enabled"`
		Issues        []string `json:"issues,omitempty"`
	}

	if h.Lifecycle.IsDraining() {
		writeJSON(w, http.StatusServiceUnavailable, readyResp{Draining: true})
		return
	}

	issues := make([]string, 0, 4)

	if h.Config.MaxBodyBytes <= 0 {
		issues = append(issues, "max_body_bytes must be > 0")
	}
	if h.Config.LiveMaxAudioFrameBytes <= 0 {
		issues = append(issues, "live max audio frame bytes must be > 0")
	}
	if h.Config.LiveMaxJSONMessageBytes <= 0 {
		issues = append(issues, "live max json message bytes must be > 0")
	}
	if h.Config.LiveWSPingInterval <= 0 || h.Config.LiveWSWriteTimeout <= 0 {
		issues = append(issues, "live ws timeouts must be > 0")
	}
	if h.Config.LiveMaxSessionDuration <= 0 {
		issues = append(issues, "live max session duration must be > 0")
	}
	if h.Config.ReadHeaderTimeout <= 0 || h.Config.ReadTimeout <= 0 || h.Config.HandlerTimeout <= 0 {
		issues = append(issues, "timeouts must be > 0")
	}
	if h.Config.SettingsPath == "" {
		issues = append(issues, "settings path must not be empty")
	}
	if (h.Config.WorkOSAPIKey == "") != (h.Config.WorkOSClientID == "") {
		issues = append(issues, "workos api key and client id must be set together")
	}

	catalogMode := "memory"
	if h.Config.DatabaseURL != "" {
		catalogMode = "postgres"
	}
	limitsEnabled := (h.Config.LimitRPS > 0 && h.Config.LimitBurst > 0) ||
		h.Config.LimitMaxConcurrentRequests > 0 ||
		h.Config.LimitMaxConcurrentStreams > 0

	ok := len(issues) == 0
	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, readyResp{
		OK:            ok,
		Catalog:       catalogMode,
		LiveEnabled:   h.Config.GeminiAPIKey != "",
		StripeEnabled: h.Config.StripeAPIKey != "",
		LimitsEnabled: limitsEnabled,
		Issues:        issues,
	})
}
