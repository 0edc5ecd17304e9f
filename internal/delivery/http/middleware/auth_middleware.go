package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"hirepro/internal/domain/entity"
	domainerrors "hirepro/internal/domain/errors"
	"hirepro/internal/domain/service"
	"hirepro/internal/usecase"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyClaims = "authClaims"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate is the core middleware function that validates the JWT access token.
// All failure modes surface the same error so callers cannot probe which
// check rejected them.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrInvalidOrExpiredToken
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrInvalidOrExpiredToken
		}

		claims, err := m.authUC.VerifyAccessToken(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		// Set claims on the context for handlers to use
		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's role rank
// against a required role. A higher role always satisfies a lower one.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("role information missing")
			}

			if !entity.HasRole(claims.Role, requiredRole) {
				return domainerrors.ErrForbidden.WrapMessage("requires " + requiredRole.String() + " role")
			}

			return next(c)
		}
	}
}

// RequirePermission is a middleware factory that checks the caller's role
// against the static capability table. Unknown roles and unknown resources
// are denied. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequirePermission(resource, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetClaims(c)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("role information missing")
			}

			if !entity.HasPermission(claims.Role, resource, action) {
				return domainerrors.ErrForbidden.WrapMessage("not permitted to " + action + " " + resource)
			}

			return next(c)
		}
	}
}

// GetClaims extracts the verified token claims set by Authenticate.
func GetClaims(c echo.Context) (*service.TokenClaims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*service.TokenClaims)

	return claims, ok
}
