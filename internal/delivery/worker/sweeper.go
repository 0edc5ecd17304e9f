// Package worker hosts background deliveries that run beside the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"hirepro/config"
	"hirepro/internal/delivery"
	"hirepro/internal/domain/repository"
)

const defaultSweepInterval = time.Hour

// tokenSweeper periodically purges expired refresh token rows. Verification
// never depends on the sweep; it only keeps the sessions table from growing
// without bound.
type tokenSweeper struct {
	repo     repository.IdentityRepository
	logger   *slog.Logger
	interval time.Duration
	stop     chan struct{}
}

// SweeperParams holds dependencies for the token sweeper
type SweeperParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Repo   repository.IdentityRepository
	Logger *slog.Logger
}

// NewTokenSweeper creates the background sweep delivery.
func NewTokenSweeper(params SweeperParams) delivery.Delivery {
	interval := defaultSweepInterval
	if params.Cfg.Auth != nil && params.Cfg.Auth.TokenSweepInterval > 0 {
		interval = params.Cfg.Auth.TokenSweepInterval
	}

	sweeper := &tokenSweeper{
		repo:     params.Repo,
		logger:   params.Logger,
		interval: interval,
		stop:     make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			close(sweeper.stop)

			return nil
		},
	})

	return sweeper
}

// Serve runs the sweep loop until shutdown.
func (s *tokenSweeper) Serve(ctx context.Context) error {
	s.logger.Info("Starting refresh token sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			s.logger.Info("Stopping refresh token sweeper")

			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *tokenSweeper) sweep(ctx context.Context) {
	if err := s.repo.DeleteExpiredRefreshTokens(ctx); err != nil {
		s.logger.Error("Failed to sweep expired refresh tokens", slog.Any("error", err))

		return
	}

	s.logger.Debug("Swept expired refresh tokens")
}
