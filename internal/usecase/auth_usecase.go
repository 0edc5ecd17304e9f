// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"hirepro/internal/domain/entity"
	"hirepro/internal/domain/service"
)

// --- Input DTOs ---

// CandidateSignupInput defines the data required to register a new candidate.
type CandidateSignupInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Location string
}

// HRSignupInput defines the data required to register a new HR account.
type HRSignupInput struct {
	FullName  string
	Email     string
	Password  string
	Role      entity.Role
	CompanyID *uuid.UUID
}

// LoginInput defines the data required to log in against one identity variant.
type LoginInput struct {
	Variant  entity.Variant
	Email    string
	Password string
}

// RefreshInput carries the raw refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// LogoutInput carries the raw refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// ChangePasswordInput identifies the caller and carries both passwords.
type ChangePasswordInput struct {
	Variant         entity.Variant
	IdentityID      uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// SessionOutput returns the tokens and sanitized identity after signup or login.
type SessionOutput struct {
	AccessToken  string
	RefreshToken string
	Identity     *entity.Identity
}

// RefreshOutput returns the new access token. The refresh token is not
// rotated; the presented one stays valid until logout or expiry.
type RefreshOutput struct {
	AccessToken string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// CandidateSignup registers a candidate and opens their first session.
	CandidateSignup(ctx context.Context, input *CandidateSignupInput) (*SessionOutput, error)

	// HRSignup registers a company-bound HR account and opens their first session.
	HRSignup(ctx context.Context, input *HRSignupInput) (*SessionOutput, error)

	// Login authenticates against one variant's collection.
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)

	// Refresh exchanges a live refresh token for a new access token.
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// Logout ends the session bound to the refresh token. Idempotent.
	Logout(ctx context.Context, input *LogoutInput) error

	// ChangePassword replaces the caller's password and ends every session.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// VerifyAccessToken validates an access token for request authentication.
	VerifyAccessToken(ctx context.Context, tokenString string) (*service.TokenClaims, error)

	// GetIdentity loads the sanitized identity behind verified claims.
	GetIdentity(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error)
}
