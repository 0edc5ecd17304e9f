package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirepro/config"
	domainerrors "hirepro/internal/domain/errors"
)

func newRateLimitFixture(t *testing.T, limit int) (*RateLimitMiddleware, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.Config{Auth: &config.AuthConfig{
		LoginRateLimit:       limit,
		LoginRateLimitWindow: time.Minute,
	}}

	return NewRateLimitMiddleware(client, cfg, slog.Default()), server
}

func invokeLimiter(t *testing.T, m *RateLimitMiddleware, ip string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/candidate/login", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	return m.LimitLogin(next)(c)
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	m, _ := newRateLimitFixture(t, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
	}
}

func TestRateLimitMiddleware_BlocksOverLimit(t *testing.T) {
	m, _ := newRateLimitFixture(t, 2)

	require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
	require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))

	err := invokeLimiter(t, m, "203.0.113.7")
	assert.ErrorIs(t, err, domainerrors.ErrTooManyRequests)
}

func TestRateLimitMiddleware_IsolatesClients(t *testing.T) {
	m, _ := newRateLimitFixture(t, 1)

	require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
	assert.ErrorIs(t, invokeLimiter(t, m, "203.0.113.7"), domainerrors.ErrTooManyRequests)

	// A different client is unaffected.
	require.NoError(t, invokeLimiter(t, m, "198.51.100.4"))
}

func TestRateLimitMiddleware_WindowResets(t *testing.T) {
	m, server := newRateLimitFixture(t, 1)

	require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
	assert.ErrorIs(t, invokeLimiter(t, m, "203.0.113.7"), domainerrors.ErrTooManyRequests)

	server.FastForward(time.Minute + time.Second)

	require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
}

func TestRateLimitMiddleware_FailsOpenWithoutRedis(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{LoginRateLimit: 1}}
	m := NewRateLimitMiddleware(nil, cfg, slog.Default())

	for i := 0; i < 5; i++ {
		require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
	}
}

func TestRateLimitMiddleware_FailsOpenOnRedisError(t *testing.T) {
	m, server := newRateLimitFixture(t, 1)
	server.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, invokeLimiter(t, m, "203.0.113.7"))
	}
}
