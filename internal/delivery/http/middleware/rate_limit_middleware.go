package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"hirepro/config"
	domainerrors "hirepro/internal/domain/errors"
)

const (
	defaultLoginRateLimit       = 10
	defaultLoginRateLimitWindow = time.Minute
	loginRateLimitKeyPrefix     = "rl:login:"
)

// RateLimitMiddleware caps login attempts per client IP in a fixed window
// backed by Redis. The limiter fails open: if Redis is down or not
// configured, logins proceed unthrottled rather than locking everyone out.
type RateLimitMiddleware struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// NewRateLimitMiddleware is the constructor for RateLimitMiddleware.
func NewRateLimitMiddleware(client *redis.Client, cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	limit := defaultLoginRateLimit
	window := defaultLoginRateLimitWindow
	if cfg.Auth != nil {
		if cfg.Auth.LoginRateLimit != 0 {
			limit = cfg.Auth.LoginRateLimit
		}
		if cfg.Auth.LoginRateLimitWindow > 0 {
			window = cfg.Auth.LoginRateLimitWindow
		}
	}

	return &RateLimitMiddleware{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// LimitLogin throttles requests by client IP. Applied to the login and
// signup routes only.
func (m *RateLimitMiddleware) LimitLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.client == nil || m.limit <= 0 {
			return next(c)
		}

		ctx := c.Request().Context()
		key := loginRateLimitKeyPrefix + c.RealIP()

		count, err := m.client.Incr(ctx, key).Result()
		if err != nil {
			m.logger.Warn("Rate limiter unavailable, failing open", slog.Any("error", err))

			return next(c)
		}
		if count == 1 {
			m.client.Expire(ctx, key, m.window)
		}

		if count > int64(m.limit) {
			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}
