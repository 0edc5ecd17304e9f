// Package usecase provides testify mocks for the application interfaces.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hirepro/internal/domain/entity"
	"hirepro/internal/domain/service"
	"hirepro/internal/usecase"
)

// MockAuthUsecase is a mock implementation of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) CandidateSignup(ctx context.Context, input *usecase.CandidateSignupInput) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.SessionOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) HRSignup(ctx context.Context, input *usecase.HRSignupInput) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.SessionOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.SessionOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*usecase.RefreshOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) VerifyAccessToken(ctx context.Context, tokenString string) (*service.TokenClaims, error) {
	args := m.Called(ctx, tokenString)
	if claims, ok := args.Get(0).(*service.TokenClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAuthUsecase) GetIdentity(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error) {
	args := m.Called(ctx, variant, id)
	if identity, ok := args.Get(0).(*entity.Identity); ok {
		return identity, args.Error(1)
	}

	return nil, args.Error(1)
}
