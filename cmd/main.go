package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruanlop/placarlive/internal/adapters/http/api"
	"github.com/ruanlop/placarlive/internal/adapters/poller"
	app "github.com/ruanlop/placarlive/internal/app"
	"github.com/ruanlop/placarlive/internal/config"
	"github.com/ruanlop/placarlive/pkg/logger"
	"github.com/ruanlop/placarlive/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
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

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithFeedURL(cfg.FeedURL),
		app.WithStorePath(cfg.StorePath),
		app.WithFetchTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		app.WithIntervals(poller.Intervals{
			Idle:     time.Duration(cfg.IdleIntervalSec) * time.Second,
			PreMatch: time.Duration(cfg.PreMatchIntervalSec) * time.Second,
			Live:     time.Duration(cfg.LiveIntervalSec) * time.Second,
		}),
		app.WithPreMatchWindow(time.Duration(cfg.PreMatchWindowMin)*time.Minute),
		app.WithScoreCooldown(time.Duration(cfg.ScoreCooldownMS)*time.Millisecond),
		app.WithLedgerWindows(
			time.Duration(cfg.LedgerMaxAgeMin)*time.Minute,
			time.Duration(cfg.LedgerLoadMaxAgeHr)*time.Hour,
		),
		app.WithAnimationTiming(
			time.Duration(cfg.AnimationDurationMS)*time.Millisecond,
			time.Duration(cfg.SettleDelayMS)*time.Millisecond,
		),
		app.WithQueueCapacity(cfg.QueueCapacity),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater periodically mirrors service gauges into
// Prometheus, so queue depth and ledger size stay current between polls.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := svc.GetStats()
			if queueLen, ok := stats["queueLength"].(int); ok {
				metrics.UpdateQueueDepth(queueLen)
			}
			if size, ok := stats["ledgerSize"].(int); ok {
				metrics.UpdateLedgerSize(size)
			}
		}
	}
}
