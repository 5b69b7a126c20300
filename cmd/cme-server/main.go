// Command cme-server runs the Century Music Empire API gateway. It
// serves the catalog, store checkout, auth, studio booking, demo
// evaluation and live A&R terminal endpoints over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/borex256/century-music-empire/internal/dotenv"
	"github.com/borex256/century-music-empire/pkg/core/providers/gemini"
	"github.com/borex256/century-music-empire/pkg/gateway/config"
	gatewayserver "github.com/borex256/century-music-empire/pkg/gateway/server"
	"github.com/borex256/century-music-empire/pkg/label/catalog"
	"github.com/borex256/century-music-empire/pkg/label/store"
)

type serverDeps struct {
	loadConfig   func() (config.Config, error)
	buildDeps    func(context.Context, config.Config, *slog.Logger) (gatewayserver.Dependencies, func(), error)
	newGateway   func(config.Config, *slog.Logger, gatewayserver.Dependencies) *gatewayserver.Server
	signalNotify func(chan<- os.Signal, ...os.Signal)
	signalStop   func(chan<- os.Signal)
}

func defaultServerDeps() serverDeps {
	return serverDeps{
		loadConfig: config.LoadFromEnv,
		buildDeps:  buildDependencies,
		newGateway: gatewayserver.New,
		signalNotify: func(c chan<- os.Signal, sig ...os.Signal) {
			signal.Notify(c, sig...)
		},
		signalStop: signal.Stop,
	}
}

// buildDependencies wires the external services named in the config.
// Anything left unset falls back to the gateway's in-process defaults.
// The returned cleanup closes the database pool, if one was opened.
func buildDependencies(ctx context.Context, cfg config.Config, logger *slog.Logger) (gatewayserver.Dependencies, func(), error) {
	var deps gatewayserver.Dependencies
	cleanup := func() {}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return deps, cleanup, fmt.Errorf("open database pool: %w", err)
		}
		if err := catalog.Migrate(ctx, pool); err != nil {
			pool.Close()
			return deps, cleanup, fmt.Errorf("run catalog migrations: %w", err)
		}
		deps.Catalog = catalog.NewPostgres(pool)
		cleanup = pool.Close
		logger.Info("catalog backed by postgres")
	}

	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.GeminiAPIKey,
			Logger: logger,
		})
		if err != nil {
			cleanup()
			return deps, func() {}, fmt.Errorf("create gemini client: %w", err)
		}
		deps.AR = client
		deps.Dialer = client
		logger.Info("live terminal and demo feedback enabled")
	}

	if cfg.StripeAPIKey != "" {
		provider, err := store.NewStripeProvider(cfg.StripeAPIKey)
		if err != nil {
			cleanup()
			return deps, func() {}, fmt.Errorf("create stripe provider: %w", err)
		}
		deps.Stripe = provider
		logger.Info("card payments enabled")
	}

	return deps, cleanup, nil
}

func buildHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
	}
}

func runServer(ctx context.Context, logger *slog.Logger, deps serverDeps) error {
	if deps.loadConfig == nil {
		return errors.New("missing loadConfig dependency")
	}
	if deps.buildDeps == nil {
		return errors.New("missing buildDeps dependency")
	}
	if deps.newGateway == nil {
		return errors.New("missing newGateway dependency")
	}
	if deps.signalNotify == nil || deps.signalStop == nil {
		return errors.New("missing signal dependency")
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	gwDeps, cleanup, err := deps.buildDeps(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build dependencies: %w", err)
	}
	defer cleanup()

	gw := deps.newGateway(cfg, logger, gwDeps)
	httpSrv := buildHTTPServer(cfg, gw.Handler())

	logger.Info("starting gateway", "addr", cfg.Addr)

	listenErrCh := make(chan error, 1)
	go func() {
		err := httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErrCh <- err
			return
		}
		listenErrCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	deps.signalNotify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer deps.signalStop(sigCh)

	select {
	case err := <-listenErrCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	gw.SetDraining()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGracePeriod)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	if err := <-listenErrCh; err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info("gateway stopped")
	return nil
}

func runMain(ctx context.Context, stderr io.Writer, deps serverDeps) int {
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if err := dotenv.LoadFile(".env"); err != nil {
		fmt.Fprintf(stderr, "cme-server: %v\n", err)
		return 1
	}

	if err := runServer(ctx, logger, deps); err != nil {
		fmt.Fprintf(stderr, "cme-server: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(runMain(context.Background(), os.Stderr, defaultServerDeps()))
}
