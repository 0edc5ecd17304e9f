package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"hirepro/internal/domain/entity"
)

// Token kinds embedded as a claim in every issued token. Each kind is
// signed with its own secret; the claim guards against replaying one kind
// as the other even if the secrets were ever unified.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// Terminal verification outcomes. A token that is not valid is exactly one
// of these from the caller's point of view.
var (
	// ErrInvalidSignature is returned when the signature or signing secret does not match.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrWrongKind is returned when the embedded kind marker does not match the expected kind.
	ErrWrongKind = errors.New("token kind does not match expected kind")
)

// TokenClaims is the verified payload of a token. Refresh tokens carry only
// the identity id; access tokens carry the full authorization context.
type TokenClaims struct {
	IdentityID uuid.UUID
	Email      string
	Role       entity.Role
	CompanyID  *uuid.UUID
	Kind       string
}

// TokenService defines the interface for issuing and verifying JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token embedding the
	// identity id, email, role and, for HR identities, the company id.
	IssueAccessToken(identity *entity.Identity) (string, error)

	// IssueRefreshToken creates a long-lived refresh token embedding only
	// the identity id. Every call yields a distinct token string. The
	// returned time is the token's own expiry, for storage alongside it.
	IssueRefreshToken(identityID uuid.UUID) (string, time.Time, error)

	// Verify checks a token against the secret for the expected kind and
	// returns its claims. It fails with ErrInvalidSignature, ErrTokenExpired
	// or ErrWrongKind; all three are terminal.
	Verify(tokenString, expectedKind string) (*TokenClaims, error)
}
