// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Variant identifies which of the two disjoint identity collections an
// identity belongs to. Candidates and HR users share the same token
// machinery but live in separate storage with separate email uniqueness.
type Variant string

const (
	// VariantCandidate is a job seeker account.
	VariantCandidate Variant = "candidate"
	// VariantHR is a company-bound HR account.
	VariantHR Variant = "hr"
)

// String returns the string representation of the Variant.
func (v Variant) String() string {
	return string(v)
}

// IsValid checks if the Variant is a valid value.
func (v Variant) IsValid() bool {
	switch v {
	case VariantCandidate, VariantHR:
		return true
	default:
		return false
	}
}

// Variants returns both identity variants in refresh-resolution order.
// A refresh token does not encode which collection its owner lives in,
// so lookups try candidates first, then HR users.
func Variants() []Variant {
	return []Variant{VariantCandidate, VariantHR}
}

// Identity represents a single account in one of the two collections.
// The same shape serves both variants for authentication purposes;
// CompanyID is set only on the HR variant.
type Identity struct {
	ID           uuid.UUID  // Unique identifier within the variant's collection.
	Variant      Variant    // Which collection this identity lives in.
	Email        string     // Lower-cased login identifier, unique within the variant.
	PasswordHash string     // bcrypt digest; empty unless loaded with an explicit password projection.
	FullName     string     // Display name.
	Phone        string     // Candidate contact phone (optional).
	Location     string     // Candidate location (optional).
	Role         Role       // Hierarchy role; always RoleCandidate for the candidate variant.
	CompanyID    *uuid.UUID // Tenant binding; required for the HR variant, nil for candidates.
	IsActive     bool       // Deactivated identities must fail login.
	LastLogin    *time.Time // Last successful login; not set by signup.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy safe to cross the service boundary: the
// password hash never leaves the auth core.
func (i *Identity) Sanitized() *Identity {
	if i == nil {
		return nil
	}
	clone := *i
	clone.PasswordHash = ""

	return &clone
}

// RefreshToken represents one live session of an identity. The raw token
// string is stored as issued; a unique constraint on it guarantees a token
// is bound to exactly one identity and one variant.
type RefreshToken struct {
	ID         uuid.UUID
	IdentityID uuid.UUID // Owning identity within its variant's collection.
	Variant    Variant   // Which collection the owner lives in.
	Token      string    // The raw signed refresh token.
	ExpiresAt  time.Time // Storage-layer expiry; verification never trusts it alone.
	CreatedAt  time.Time
}

// NormalizeEmail lower-cases and trims an email address. Every comparison
// and every stored value goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
