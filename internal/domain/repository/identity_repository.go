// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hirepro/internal/domain/entity"
)

// Domain-specific errors for identity persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrIdentityNotFound is returned when no identity matches the lookup.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrDuplicateEmail is returned when a create violates the per-variant email uniqueness constraint.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrRefreshTokenNotFound is returned when a refresh token entry is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// IdentityRepository defines the standard operations over the two identity
// collections. Every mutation is a single statement at the storage layer so
// that concurrent operations on the same identity never lose updates.
type IdentityRepository interface {
	// FindByEmail retrieves an identity by lower-cased email within one
	// variant's collection. The password hash is excluded from the result.
	FindByEmail(ctx context.Context, variant entity.Variant, email string) (*entity.Identity, error)

	// FindByEmailWithPassword is the explicit opt-in projection that
	// includes the password hash, used only by login and change-password.
	FindByEmailWithPassword(ctx context.Context, variant entity.Variant, email string) (*entity.Identity, error)

	// FindByID retrieves an identity by id within one variant's collection,
	// excluding the password hash.
	FindByID(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error)

	// FindByIDWithPassword retrieves an identity by id including the
	// password hash.
	FindByIDWithPassword(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error)

	// FindByIDAndRefreshToken retrieves an identity only when the given raw
	// refresh token is currently bound to it. A token valid for a different
	// identity id must not match even if its signature verifies.
	FindByIDAndRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string) (*entity.Identity, error)

	// Create persists a new identity. It fails with ErrDuplicateEmail when
	// the variant's unique email constraint is violated.
	Create(ctx context.Context, identity *entity.Identity) error

	// AppendRefreshToken adds one session entry for the identity.
	AppendRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string, expiresAt time.Time) error

	// RemoveRefreshToken deletes exactly the one matching session entry.
	// It returns ErrRefreshTokenNotFound when no entry matched.
	RemoveRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string) error

	// ClearRefreshTokens deletes every session entry for the identity.
	ClearRefreshTokens(ctx context.Context, variant entity.Variant, id uuid.UUID) error

	// SetPasswordHash replaces the identity's password hash.
	SetPasswordHash(ctx context.Context, variant entity.Variant, id uuid.UUID, hash string) error

	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, variant entity.Variant, id uuid.UUID) error

	// DeleteExpiredRefreshTokens sweeps session entries past their storage
	// expiry. Verification never relies on this having run.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
