// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hirepro/internal/domain/entity"
	"hirepro/internal/domain/service"
)

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(identity *entity.Identity) (string, error) {
	args := m.Called(identity)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssueRefreshToken(identityID uuid.UUID) (string, time.Time, error) {
	args := m.Called(identityID)
	expiresAt, _ := args.Get(1).(time.Time)

	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockTokenService) Verify(tokenString, expectedKind string) (*service.TokenClaims, error) {
	args := m.Called(tokenString, expectedKind)
	if claims, ok := args.Get(0).(*service.TokenClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockPasswordPolicy is a mock implementation of service.PasswordPolicy.
type MockPasswordPolicy struct {
	mock.Mock
}

func (m *MockPasswordPolicy) Validate(password string) error {
	args := m.Called(password)

	return args.Error(0)
}
