// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hirepro/internal/domain/entity"
	"hirepro/internal/domain/repository"
)

// MockIdentityRepository is a mock implementation of repository.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) FindByEmail(ctx context.Context, variant entity.Variant, email string) (*entity.Identity, error) {
	args := m.Called(ctx, variant, email)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityRepository) FindByEmailWithPassword(ctx context.Context, variant entity.Variant, email string) (*entity.Identity, error) {
	args := m.Called(ctx, variant, email)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityRepository) FindByID(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, variant, id)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityRepository) FindByIDWithPassword(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, variant, id)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityRepository) FindByIDAndRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string) (*entity.Identity, error) {
	args := m.Called(ctx, variant, id, token)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockIdentityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	args := m.Called(ctx, identity)

	return args.Error(0)
}

func (m *MockIdentityRepository) AppendRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, variant, id, token, expiresAt)

	return args.Error(0)
}

func (m *MockIdentityRepository) RemoveRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string) error {
	args := m.Called(ctx, variant, id, token)

	return args.Error(0)
}

func (m *MockIdentityRepository) ClearRefreshTokens(ctx context.Context, variant entity.Variant, id uuid.UUID) error {
	args := m.Called(ctx, variant, id)

	return args.Error(0)
}

func (m *MockIdentityRepository) SetPasswordHash(ctx context.Context, variant entity.Variant, id uuid.UUID, hash string) error {
	args := m.Called(ctx, variant, id, hash)

	return args.Error(0)
}

func (m *MockIdentityRepository) TouchLastLogin(ctx context.Context, variant entity.Variant, id uuid.UUID) error {
	args := m.Called(ctx, variant, id)

	return args.Error(0)
}

func (m *MockIdentityRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockTransactionManager is a mock implementation of repository.TransactionManager.
// Execute runs the callback against the provided factory without a real transaction.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(m.Factory)
}

// MockRepositoryFactory is a mock implementation of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	IdentityRepository repository.IdentityRepository
}

func (f *MockRepositoryFactory) IdentityRepo() repository.IdentityRepository {
	return f.IdentityRepository
}
