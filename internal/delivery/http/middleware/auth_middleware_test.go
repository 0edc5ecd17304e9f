package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hirepro/internal/domain/entity"
	domainerrors "hirepro/internal/domain/errors"
	"hirepro/internal/domain/service"
	mockusecase "hirepro/internal/mocks/usecase"
)

func newAuthContext(authHeader string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	uc := new(mockusecase.MockAuthUsecase)
	claims := &service.TokenClaims{
		IdentityID: uuid.New(),
		Email:      "hr@acme.example",
		Role:       entity.RoleHRManager,
	}
	uc.On("VerifyAccessToken", mock.Anything, "valid-token").Return(claims, nil)

	m := NewAuthMiddleware(uc)
	c := newAuthContext("Bearer valid-token")

	var seen *service.TokenClaims
	err := m.Authenticate(func(c echo.Context) error {
		got, ok := GetClaims(c)
		require.True(t, ok)
		seen = got

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, claims, seen)
	uc.AssertExpectations(t)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	uc := new(mockusecase.MockAuthUsecase)
	m := NewAuthMiddleware(uc)

	err := m.Authenticate(okHandler)(newAuthContext(""))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrExpiredToken)
	uc.AssertNotCalled(t, "VerifyAccessToken")
}

func TestAuthMiddleware_Authenticate_MalformedHeader(t *testing.T) {
	uc := new(mockusecase.MockAuthUsecase)
	m := NewAuthMiddleware(uc)

	err := m.Authenticate(okHandler)(newAuthContext("Basic dXNlcjpwYXNz"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrExpiredToken)
	uc.AssertNotCalled(t, "VerifyAccessToken")
}

func TestAuthMiddleware_Authenticate_VerificationFails(t *testing.T) {
	uc := new(mockusecase.MockAuthUsecase)
	uc.On("VerifyAccessToken", mock.Anything, "bad-token").
		Return(nil, domainerrors.ErrInvalidOrExpiredToken)

	m := NewAuthMiddleware(uc)
	err := m.Authenticate(okHandler)(newAuthContext("Bearer bad-token"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidOrExpiredToken)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m := NewAuthMiddleware(new(mockusecase.MockAuthUsecase))

	tests := []struct {
		name     string
		role     entity.Role
		required entity.Role
		allowed  bool
	}{
		{name: "exact role passes", role: entity.RoleHRManager, required: entity.RoleHRManager, allowed: true},
		{name: "higher role passes", role: entity.RoleCompanyAdmin, required: entity.RoleHRRecruiter, allowed: true},
		{name: "lower role rejected", role: entity.RoleCandidate, required: entity.RoleHRRecruiter, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAuthContext("")
			c.Set(ContextKeyClaims, &service.TokenClaims{Role: tt.role})

			err := m.RequireRole(tt.required)(okHandler)(c)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrForbidden)
			}
		})
	}
}

func TestAuthMiddleware_RequireRole_MissingClaims(t *testing.T) {
	m := NewAuthMiddleware(new(mockusecase.MockAuthUsecase))

	err := m.RequireRole(entity.RoleCandidate)(okHandler)(newAuthContext(""))

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAuthMiddleware_RequirePermission(t *testing.T) {
	m := NewAuthMiddleware(new(mockusecase.MockAuthUsecase))

	tests := []struct {
		name     string
		role     entity.Role
		resource string
		action   string
		allowed  bool
	}{
		{name: "recruiter reads jobs", role: entity.RoleHRRecruiter, resource: "jobs", action: "read", allowed: true},
		{name: "candidate cannot create jobs", role: entity.RoleCandidate, resource: "jobs", action: "create", allowed: false},
		{name: "unknown resource denied", role: entity.RoleSuperAdmin, resource: "payroll", action: "read", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAuthContext("")
			c.Set(ContextKeyClaims, &service.TokenClaims{Role: tt.role})

			err := m.RequirePermission(tt.resource, tt.action)(okHandler)(c)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrForbidden)
			}
		})
	}
}
