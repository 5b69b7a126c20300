// Package server assembles the gateway: routes, middleware chain, and
// the default wiring of the label services behind them.
package server

import (
	"log/slog"
	"net/http"

	"github.com/borex256/century-music-empire/pkg/core/live"
	"github.com/borex256/century-music-empire/pkg/gateway/config"
	"github.com/borex256/century-music-empire/pkg/gateway/handlers"
	"github.com/borex256/century-music-empire/pkg/gateway/lifecycle"
	"github.com/borex256/century-music-empire/pkg/gateway/mw"
	"github.com/borex256/century-music-empire/pkg/gateway/ratelimit"
	"github.com/borex256/century-music-empire/pkg/label/auth"
	"github.com/borex256/century-music-empire/pkg/label/catalog"
	"github.com/borex256/century-music-empire/pkg/label/state"
	"github.com/borex256/century-music-empire/pkg/label/store"
	"github.com/borex256/century-music-empire/pkg/label/studio"
)

// Dependencies are the externally constructed collaborators. Zero
// values fall back to in-process defaults: the seed catalog, stub
// captcha and authenticator, and the stub booking backend. AR and
// Dialer have no defaults; the matching routes report unavailable
// until they are wired.
type Dependencies struct {
	Catalog  catalog.Store
	Auth     *auth.Service
	Bookings studio.BookingService
	AR       handlers.ARClient
	Dialer   live.Dialer
	Stripe   store.PaymentProvider
}

type Server struct {
	cfg    config.Config
	logger *slog.Logger
	mux    *http.ServeMux

	deps    Dependencies
	limiter *ratelimit.Limiter
	lc      lifecycle.Lifecycle
}

// SetDraining flips readiness so a load balancer stops routing new
// traffic ahead of shutdown.
func (s *Server) SetDraining() {
	s.lc.SetDraining(true)
}

func New(cfg config.Config, logger *slog.Logger, deps Dependencies) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	if deps.Catalog == nil {
		deps.Catalog = catalog.NewMemory(catalog.DefaultSeed())
	}
	if deps.Bookings == nil {
		bookings := studio.NewStubBooking()
		bookings.Delay = cfg.BookingDelay
		deps.Bookings = bookings
	}
	if deps.Auth == nil {
		deps.Auth = defaultAuthService(cfg, logger)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		mux:    http.NewServeMux(),
		deps:   deps,
		limiter: ratelimit.New(ratelimit.Config{
			RPS:                   cfg.LimitRPS,
			Burst:                 cfg.LimitBurst,
			MaxConcurrentRequests: cfg.LimitMaxConcurrentRequests,
			MaxConcurrentSessions: cfg.LimitMaxConcurrentStreams,
		}),
	}

	s.routes()
	return s
}

func defaultAuthService(cfg config.Config, logger *slog.Logger) *auth.Service {
	captcha := auth.NewStubCaptcha()
	captcha.Delay = cfg.CaptchaDelay

	var backend auth.Authenticator = auth.StubAuthenticator{}
	if cfg.WorkOSAPIKey != "" && cfg.WorkOSClientID != "" {
		workos, err := auth.NewWorkOS(cfg.WorkOSAPIKey, cfg.WorkOSClientID)
		if err != nil {
			logger.Warn("workos unavailable, using the stub authenticator", "error", err)
		} else {
			backend = workos
		}
	}

	var settings *state.Store
	if cfg.SettingsPath != "" {
		st, err := state.Open(cfg.SettingsPath)
		if err != nil {
			logger.Warn("settings store unavailable, remember-me disabled", "path", cfg.SettingsPath, "error", err)
		} else {
			settings = st
		}
	}

	svc, err := auth.NewService(captcha, backend, settings)
	if err != nil {
		// Unreachable with non-nil captcha and backend.
		panic(err)
	}
	return svc
}

func (s *Server) routes() {
	s.mux.Handle("/healthz", handlers.HealthHandler{})
	s.mux.Handle("/readyz", handlers.ReadyHandler{Config: s.cfg, Lifecycle: &s.lc})

	cat := handlers.CatalogHandler{Store: s.deps.Catalog}
	s.mux.HandleFunc("GET /v1/artists", cat.Artists)
	s.mux.HandleFunc("GET /v1/artists/{id}", cat.Artist)
	s.mux.HandleFunc("GET /v1/team", cat.Team)
	s.mux.HandleFunc("GET /v1/events", cat.Events)
	s.mux.HandleFunc("GET /v1/playlist", cat.Playlist)
	s.mux.HandleFunc("GET /v1/vault", cat.Vault)
	s.mux.HandleFunc("GET /v1/gallery", cat.Gallery)
	s.mux.HandleFunc("GET /v1/distribution/features", cat.DistributionFeatures)

	st := handlers.StoreHandler{
		Catalog: s.deps.Catalog,
		Providers: handlers.DefaultProviders{
			Stripe:             s.deps.Stripe,
			MobileMoneyLatency: s.cfg.PaymentLatency,
		},
		MaxBodyBytes: s.cfg.MaxBodyBytes,
		Timeout:      s.cfg.HandlerTimeout,
	}
	s.mux.HandleFunc("GET /v1/store/items", st.Items)
	s.mux.HandleFunc("GET /v1/store/items/{id}", st.Item)
	s.mux.HandleFunc("POST /v1/checkout", st.Checkout)
	s.mux.HandleFunc("POST /v1/distribution/checkout", st.DistributionCheckout)

	authH := handlers.AuthHandler{Auth: s.deps.Auth, MaxBodyBytes: s.cfg.MaxBodyBytes, Timeout: s.cfg.HandlerTimeout}
	s.mux.HandleFunc("POST /v1/login", authH.Login)
	s.mux.HandleFunc("POST /v1/logout", authH.Logout)
	s.mux.HandleFunc("GET /v1/session", authH.Session)

	// Registered even without an AR client so the route reports why it
	// is unavailable instead of a 404, same as /v1/live.
	demo := &handlers.DemoHandler{AR: s.deps.AR, MaxBodyBytes: s.cfg.MaxBodyBytes, Timeout: s.cfg.HandlerTimeout}
	s.mux.HandleFunc("POST /v1/demo", demo.Submit)

	studioH := handlers.StudioHandler{Bookings: s.deps.Bookings, MaxBodyBytes: s.cfg.MaxBodyBytes, Timeout: s.cfg.HandlerTimeout}
	s.mux.HandleFunc("POST /v1/bookings", studioH.Book)

	s.mux.Handle("/v1/live", handlers.LiveHandler{
		Config:  s.cfg,
		Dialer:  s.deps.Dialer,
		Logger:  s.logger,
		Limiter: s.limiter,
	})

	s.mux.Handle("/", handlers.NotFoundHandler{})
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = mw.RateLimit(s.cfg, s.limiter, h)
	h = mw.CORS(s.cfg, h)
	h = mw.Recover(s.logger, h)
	h = mw.AccessLog(s.logger, h)
	h = mw.RequestID(h)
	return h
}
