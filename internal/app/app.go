// Package app wires the canteen service together: configuration, in-memory
// state, dispatcher, HTTP transport, health probes, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/eadrium-canteen/internal/dispatch"
	"github.com/xenking/eadrium-canteen/internal/domain/menu"
	"github.com/xenking/eadrium-canteen/internal/domain/order"
	"github.com/xenking/eadrium-canteen/internal/domain/user"
	"github.com/xenking/eadrium-canteen/internal/handler"
	"github.com/xenking/eadrium-canteen/internal/seed"
	"github.com/xenking/eadrium-canteen/pkg/health"
	"github.com/xenking/eadrium-canteen/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// In-memory state: constructed once here, torn down with the process.
	catalog := menu.NewCatalog()
	users := user.NewStore()
	engine := order.NewEngine(catalog, users)

	dispatcher, err := dispatch.New(catalog, users, engine, dispatch.Options{
		Greeting:       cfg.Greeting,
		MeterProvider:  m.MeterProvider(),
		TracerProvider: m.TracerProvider(),
	})
	if err != nil {
		return errors.Wrap(err, "create dispatcher")
	}

	if len(cfg.SeedFiles) > 0 {
		data, err := seed.LoadFiles(ctx, cfg.SeedFiles)
		if err != nil {
			return errors.Wrap(err, "load seed files")
		}
		if err := data.Apply(catalog, users); err != nil {
			return errors.Wrap(err, "apply seed")
		}
		lg.Info("Seed loaded",
			zap.Int("items", len(data.Menu)),
			zap.Int("users", len(data.Users)),
		)
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("dispatcher", time.Second, func(ctx context.Context) error {
		if resp := dispatcher.Dispatch(ctx, dispatch.NewRequest(dispatch.CmdPing, nil)); !resp.OK() {
			return errors.Errorf("ping: %s", resp.Body)
		}
		return nil
	})
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Mux: health endpoints + command protocol on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/", handler.New(dispatcher))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("canteen-api", m.MeterProvider(), m.TracerProvider()),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
