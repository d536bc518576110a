package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/vinifbn/instagram-insights-api/internal/aggregator"
	"github.com/vinifbn/instagram-insights-api/internal/aggregator/aggregatorimpl"
	"github.com/vinifbn/instagram-insights-api/internal/insights"
	"github.com/vinifbn/instagram-insights-api/internal/insights/insightsimpl"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/internal/instagram/instagramimpl"
	"github.com/vinifbn/instagram-insights-api/internal/ratelimit"
	"github.com/vinifbn/instagram-insights-api/internal/server"
	"github.com/vinifbn/instagram-insights-api/internal/session"
	"github.com/vinifbn/instagram-insights-api/internal/session/sessionimpl"
	"github.com/vinifbn/instagram-insights-api/pkg/config"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		func() clockwork.Clock { return clockwork.NewRealClock() },
		newLimiter,
	),
	fx.Provide(
		fx.Annotate(
			sessionimpl.New,
			fx.As(new(session.Store)),
		), fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		), fx.Annotate(
			insightsimpl.New,
			fx.As(new(insights.Resolver)),
		), fx.Annotate(
			aggregatorimpl.New,
			fx.As(new(aggregator.Client)),
		),
		server.New,
	),
	fx.Invoke(run),
	fx.Invoke(scheduleLimiterCleanup),
)

func newLimiter(cfg *config.Config) ratelimit.Limiter {
	return ratelimit.NewInMemoryLimiter(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.PerSeconds)*time.Second,
		cfg.RateLimit.Burst,
	)
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, srv *server.Server) {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: srv.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", httpServer.Addr)
			if err != nil {
				return err
			}

			log.Info("Starting HTTP server", "addr", httpServer.Addr, "env", cfg.App.Env)

			go func() {
				if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return httpServer.Shutdown(ctx)
		},
	})
}

// scheduleLimiterCleanup sets up a daily job that drops rate-limiter entries
// for users who have not made a request in a day.
func scheduleLimiterCleanup(lc fx.Lifecycle, log logger.Logger, limiter ratelimit.Limiter) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)), // At 3:00 AM
		),
		gocron.NewTask(func() {
			pruned := limiter.PruneIdle(24 * time.Hour)
			log.Info("Pruned idle rate limiter entries", "entries", pruned)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule limiter cleanup: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return scheduler.Shutdown()
		},
	})
	return nil
}
