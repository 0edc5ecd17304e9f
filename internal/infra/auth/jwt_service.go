// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"hirepro/config"
	"hirepro/internal/domain/entity"
	"hirepro/internal/domain/service"
)

const (
	defaultAccessTTL  = time.Minute * 15
	defaultRefreshTTL = time.Hour * 24 * 7
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens are signed with separate secrets; a leaked
// access secret must not allow forging refresh tokens.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// identityClaims is the wire shape of both token kinds. Refresh tokens
// leave everything but the subject and kind empty.
type identityClaims struct {
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
	Kind      string `json:"kind"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	svc := &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     defaultAccessTTL,
		refreshTTL:    defaultRefreshTTL,
	}
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return svc, nil
}

// IssueAccessToken creates a short-lived token carrying the identity's
// authorization context.
func (s *jwtService) IssueAccessToken(identity *entity.Identity) (string, error) {
	claims := &identityClaims{
		Email: identity.Email,
		Role:  identity.Role.String(),
		Kind:  service.TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
	}
	if identity.CompanyID != nil {
		claims.CompanyID = identity.CompanyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.accessSecret))
}

// IssueRefreshToken creates a long-lived token carrying only the identity id.
// The jti claim makes every issued token unique, so two sessions opened for
// the same identity in the same second still get distinct token strings and
// distinct session rows. The returned expiry matches the token's exp claim
// exactly and is what callers should store alongside the token.
func (s *jwtService) IssueRefreshToken(identityID uuid.UUID) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.refreshTTL)
	claims := &identityClaims{
		Kind: service.TokenKindRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   identityID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.refreshSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify parses the token with the secret belonging to the expected kind
// and checks the embedded kind marker.
func (s *jwtService) Verify(tokenString, expectedKind string) (*service.TokenClaims, error) {
	secret := s.accessSecret
	if expectedKind == service.TokenKindRefresh {
		secret = s.refreshSecret
	}

	claims := &identityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrInvalidSignature
	}
	if !token.Valid {
		return nil, service.ErrInvalidSignature
	}

	if claims.Kind != expectedKind {
		return nil, service.ErrWrongKind
	}

	identityID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrInvalidSignature
	}

	out := &service.TokenClaims{
		IdentityID: identityID,
		Email:      claims.Email,
		Role:       entity.Role(claims.Role),
		Kind:       claims.Kind,
	}
	if claims.CompanyID != "" {
		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			return nil, service.ErrInvalidSignature
		}
		out.CompanyID = &companyID
	}

	return out, nil
}
