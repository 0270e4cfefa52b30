// Package janitor runs periodic storage cleanup alongside the HTTP server.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"voidbot/config"
	"voidbot/internal/delivery"
	"voidbot/internal/usecase"

	"go.uber.org/fx"
)

const defaultCleanupInterval = time.Hour

type sessionJanitor struct {
	authUC   usecase.AuthUsecase
	logger   *slog.Logger
	interval time.Duration
}

// Params holds dependencies for the session janitor.
type Params struct {
	fx.In

	Cfg    *config.Config
	Logger *slog.Logger
	AuthUC usecase.AuthUsecase
}

// New creates the session janitor delivery.
func New(params Params) delivery.Delivery {
	interval := defaultCleanupInterval
	if params.Cfg.Auth != nil && params.Cfg.Auth.CleanupInterval > 0 {
		interval = params.Cfg.Auth.CleanupInterval
	}

	return &sessionJanitor{
		authUC:   params.AuthUC,
		logger:   params.Logger,
		interval: interval,
	}
}

// Serve purges expired sessions on a fixed interval until ctx is cancelled.
// A failed sweep is logged and retried on the next tick.
func (j *sessionJanitor) Serve(ctx context.Context) error {
	j.logger.Info("Starting session janitor", slog.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := j.authUC.PurgeExpiredSessions(ctx); err != nil {
				j.logger.Warn("Session cleanup sweep failed", slog.Any("error", err))
			}
		}
	}
}
