// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"hirepro/internal/delivery/http/middleware"
	"hirepro/internal/delivery/http/response"
	"hirepro/internal/domain/entity"
	domainerrors "hirepro/internal/domain/errors"
	"hirepro/internal/usecase"
)

// --- Request DTOs ---

// CandidateSignupRequest is the wire shape of a candidate signup.
type CandidateSignupRequest struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// HRSignupRequest is the wire shape of an HR signup.
type HRSignupRequest struct {
	FullName  string `json:"fullName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"required"`
	CompanyID string `json:"companyId" validate:"required,uuid"`
}

// LoginRequest is the wire shape of a login for either variant.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token for refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ChangePasswordRequest carries both passwords for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// --- Response DTOs ---

// IdentityResponse is the sanitized identity shape returned to clients.
type IdentityResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	Phone     string     `json:"phone,omitempty"`
	Location  string     `json:"location,omitempty"`
	Role      string     `json:"role"`
	CompanyID *uuid.UUID `json:"companyId,omitempty"`
	IsActive  bool       `json:"isActive"`
}

// SessionResponse bundles the token pair with the identity.
type SessionResponse struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	User         *IdentityResponse `json:"user"`
}

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// CandidateSignup handles the candidate registration request.
func (h *AuthHandler) CandidateSignup(c echo.Context) error {
	var req CandidateSignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.CandidateSignup(c.Request().Context(), &usecase.CandidateSignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionResponse(output), "Signup successful")
}

// HRSignup handles the HR account registration request.
func (h *AuthHandler) HRSignup(c echo.Context) error {
	var req HRSignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid company id")
	}

	input := &usecase.HRSignupInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.Role(req.Role),
		CompanyID: &companyID,
	}

	output, err := h.uc.HRSignup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionResponse(output), "Signup successful")
}

// CandidateLogin handles a candidate login request.
func (h *AuthHandler) CandidateLogin(c echo.Context) error {
	return h.login(c, entity.VariantCandidate)
}

// HRLogin handles an HR login request.
func (h *AuthHandler) HRLogin(c echo.Context) error {
	return h.login(c, entity.VariantHR)
}

func (h *AuthHandler) login(c echo.Context, variant entity.Variant) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Variant:  variant,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(output), "Login successful")
}

// Refresh handles the access token refresh request.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"accessToken": output.AccessToken}, "Token refreshed")
}

// Logout handles the logout request. Always succeeds for well-formed input.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{RefreshToken: req.RefreshToken}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// ChangePassword handles the authenticated password change request.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return domainerrors.ErrInvalidOrExpiredToken
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		Variant:         variantForRole(claims.Role),
		IdentityID:      claims.IdentityID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}

// Me returns the authenticated caller's sanitized identity.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return domainerrors.ErrInvalidOrExpiredToken
	}

	identity, err := h.uc.GetIdentity(c.Request().Context(), variantForRole(claims.Role), claims.IdentityID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toIdentityResponse(identity), "")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// variantForRole maps the role in verified claims back to the identity
// collection it lives in.
func variantForRole(role entity.Role) entity.Variant {
	if role == entity.RoleCandidate {
		return entity.VariantCandidate
	}

	return entity.VariantHR
}

func toIdentityResponse(identity *entity.Identity) *IdentityResponse {
	if identity == nil {
		return nil
	}

	return &IdentityResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		FullName:  identity.FullName,
		Phone:     identity.Phone,
		Location:  identity.Location,
		Role:      identity.Role.String(),
		CompanyID: identity.CompanyID,
		IsActive:  identity.IsActive,
	}
}

func toSessionResponse(output *usecase.SessionOutput) *SessionResponse {
	return &SessionResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toIdentityResponse(output.Identity),
	}
}
