// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "hirepro/internal/domain/errors"
)

// echoValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata internally.
type echoValidator struct {
	validate *playground.Validate
}

// New creates the Echo request validator.
func New() *echoValidator {
	return &echoValidator{validate: playground.New()}
}

// Validate implements echo.Validator. Validation failures map to the
// application's uniform validation error with field detail attached.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
