package service

// PasswordPolicy checks candidate passwords against the configured strength
// rules before they are ever hashed. Hashing accepts anything; the policy is
// the only gate on password quality.
type PasswordPolicy interface {
	// Validate returns a descriptive error when the password does not meet
	// the policy, nil otherwise. The error message is safe to show to the
	// caller.
	Validate(password string) error
}
