package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taykof/vaultlog/internal/adapters/medium"
	"github.com/taykof/vaultlog/internal/adapters/notify"
	app "github.com/taykof/vaultlog/internal/app"
	"github.com/taykof/vaultlog/internal/config"
	"github.com/taykof/vaultlog/pkg/logger"
	"github.com/taykof/vaultlog/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	statsInterval     = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	med, err := medium.Open(ctx, medium.Driver(cfg.MediumDriver), cfg.MediumPath())
	if err != nil {
		log.Error(ctx, "failed to open storage medium", logger.Error(err))
		return
	}

	notifier := notify.New()
	svc := app.New(
		app.WithLogger(log),
		app.WithMedium(med),
		app.WithNotifier(notifier),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	log.Info(ctx, "store ready",
		logger.String("medium", cfg.MediumDriver),
		logger.String("path", cfg.MediumPath()),
	)

	// Relay degraded-storage events into the log; a UI would show these
	// to the user instead.
	go func() {
		for e := range svc.Degraded() {
			log.Warn(ctx, "storage degraded",
				logger.String("collection", e.Collection),
				logger.String("message", e.Message),
				logger.Error(e.Err),
			)
		}
	}()

	go refreshStats(ctx, svc)

	// Telemetry-only HTTP surface; the application UI lives elsewhere.
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting metrics server", logger.String("addr", cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("metrics server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "metrics server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "stopped")
}

// refreshStats keeps the collection-size gauges current.
func refreshStats(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Stats(ctx)
		}
	}
}
