package auth

import (
	"unicode"

	"github.com/pkg/errors"

	"hirepro/config"
	"hirepro/internal/domain/service"
)

const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
)

// passwordPolicy enforces the configured length bounds plus fixed character
// class rules: a password needs at least one uppercase letter, one lowercase
// letter, one digit and one special character.
type passwordPolicy struct {
	minLength int
	maxLength int
}

// NewPasswordPolicy is the constructor for passwordPolicy. Length bounds come
// from configuration; unset values fall back to the defaults.
func NewPasswordPolicy(cfg *config.Config) service.PasswordPolicy {
	policy := &passwordPolicy{
		minLength: defaultMinPasswordLength,
		maxLength: defaultMaxPasswordLength,
	}
	if cfg.PasswordStrength != nil {
		if cfg.PasswordStrength.MinLength > 0 {
			policy.minLength = cfg.PasswordStrength.MinLength
		}
		if cfg.PasswordStrength.MaxLength > 0 {
			policy.maxLength = cfg.PasswordStrength.MaxLength
		}
	}

	return policy
}

// Validate checks one password against the policy. The first violated rule
// is reported; messages are phrased for end users.
func (p *passwordPolicy) Validate(password string) error {
	length := len([]rune(password))
	if length < p.minLength {
		return errors.Errorf("password must be at least %d characters long", p.minLength)
	}
	if length > p.maxLength {
		return errors.Errorf("password must be at most %d characters long", p.maxLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return errors.New("password must contain an uppercase letter")
	case !hasLower:
		return errors.New("password must contain a lowercase letter")
	case !hasDigit:
		return errors.New("password must contain a digit")
	case !hasSpecial:
		return errors.New("password must contain a special character")
	}

	return nil
}
