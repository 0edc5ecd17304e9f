package impl

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hirepro/internal/domain/entity"
	domainerrors "hirepro/internal/domain/errors"
	"hirepro/internal/domain/repository"
	"hirepro/internal/domain/service"
	mockrepo "hirepro/internal/mocks/repository"
	mockservice "hirepro/internal/mocks/service"
	"hirepro/internal/usecase"
)

const testRefreshTTL = time.Hour * 24 * 7

type authServiceFixture struct {
	identityRepo *mockrepo.MockIdentityRepository
	txManager    *mockrepo.MockTransactionManager
	hasher       *mockservice.MockPasswordHasher
	policy       *mockservice.MockPasswordPolicy
	tokenService *mockservice.MockTokenService
	svc          usecase.AuthUsecase
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()

	identityRepo := &mockrepo.MockIdentityRepository{}
	txManager := &mockrepo.MockTransactionManager{
		Factory: &mockrepo.MockRepositoryFactory{IdentityRepository: identityRepo},
	}
	hasher := &mockservice.MockPasswordHasher{}
	policy := &mockservice.MockPasswordPolicy{}
	tokenService := &mockservice.MockTokenService{}

	svc := NewAuthService(AuthServiceParams{
		TxManager:      txManager,
		IdentityRepo:   identityRepo,
		Hasher:         hasher,
		PasswordPolicy: policy,
		TokenService:   tokenService,
		Logger:         slog.Default(),
	})

	return &authServiceFixture{
		identityRepo: identityRepo,
		txManager:    txManager,
		hasher:       hasher,
		policy:       policy,
		tokenService: tokenService,
		svc:          svc,
	}
}

func activeCandidate(password string) *entity.Identity {
	return &entity.Identity{
		ID:           uuid.New(),
		Variant:      entity.VariantCandidate,
		Email:        "jane@example.com",
		PasswordHash: "hashed:" + password,
		FullName:     "Jane Doe",
		Role:         entity.RoleCandidate,
		IsActive:     true,
	}
}

func TestCandidateSignup_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.policy.On("Validate", "Sup3rSecret!").Return(nil)
	f.hasher.On("Hash", "Sup3rSecret!").Return("hashed-password", nil)
	f.txManager.On("Execute", ctx).Return(nil)
	f.identityRepo.On("Create", ctx, mock.AnythingOfType("*entity.Identity")).
		Run(func(args mock.Arguments) {
			identity := args.Get(1).(*entity.Identity)
			identity.ID = uuid.New()
		}).
		Return(nil)
	f.tokenService.On("IssueAccessToken", mock.AnythingOfType("*entity.Identity")).Return("access-token", nil)
	f.tokenService.On("IssueRefreshToken", mock.AnythingOfType("uuid.UUID")).Return("refresh-token", time.Now().Add(testRefreshTTL), nil)
	f.identityRepo.On("AppendRefreshToken", ctx, entity.VariantCandidate, mock.AnythingOfType("uuid.UUID"), "refresh-token", mock.AnythingOfType("time.Time")).Return(nil)

	out, err := f.svc.CandidateSignup(ctx, &usecase.CandidateSignupInput{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "Sup3rSecret!",
		Phone:    "+15550100",
		Location: "Berlin",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, "jane@example.com", out.Identity.Email)
	assert.Equal(t, entity.RoleCandidate, out.Identity.Role)
	assert.True(t, out.Identity.IsActive)
	assert.Empty(t, out.Identity.PasswordHash)
	f.identityRepo.AssertExpectations(t)
	f.tokenService.AssertExpectations(t)
}

func TestCandidateSignup_DuplicateEmail(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.policy.On("Validate", "Sup3rSecret!").Return(nil)
	f.hasher.On("Hash", "Sup3rSecret!").Return("hashed-password", nil)
	f.txManager.On("Execute", ctx).Return(nil)
	f.identityRepo.On("Create", ctx, mock.AnythingOfType("*entity.Identity")).Return(repository.ErrDuplicateEmail)

	_, err := f.svc.CandidateSignup(ctx, &usecase.CandidateSignupInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	f.identityRepo.AssertNotCalled(t, "AppendRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHRSignup_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	companyID := uuid.New()

	f.policy.On("Validate", "Sup3rSecret!").Return(nil)
	f.hasher.On("Hash", "Sup3rSecret!").Return("hashed-password", nil)
	f.txManager.On("Execute", ctx).Return(nil)
	f.identityRepo.On("Create", ctx, mock.AnythingOfType("*entity.Identity")).
		Run(func(args mock.Arguments) {
			identity := args.Get(1).(*entity.Identity)
			identity.ID = uuid.New()
		}).
		Return(nil)
	f.tokenService.On("IssueAccessToken", mock.AnythingOfType("*entity.Identity")).Return("access-token", nil)
	f.tokenService.On("IssueRefreshToken", mock.AnythingOfType("uuid.UUID")).Return("refresh-token", time.Now().Add(testRefreshTTL), nil)
	f.identityRepo.On("AppendRefreshToken", ctx, entity.VariantHR, mock.AnythingOfType("uuid.UUID"), "refresh-token", mock.AnythingOfType("time.Time")).Return(nil)

	out, err := f.svc.HRSignup(ctx, &usecase.HRSignupInput{
		FullName:  "Sam Recruiter",
		Email:     "sam@acme.example",
		Password:  "Sup3rSecret!",
		Role:      entity.RoleHRRecruiter,
		CompanyID: &companyID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleHRRecruiter, out.Identity.Role)
	require.NotNil(t, out.Identity.CompanyID)
	assert.Equal(t, companyID, *out.Identity.CompanyID)
}

func TestHRSignup_RejectsNonAssignableRoles(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		role entity.Role
	}{
		{"Super admin", entity.RoleSuperAdmin},
		{"Candidate role", entity.RoleCandidate},
		{"Unknown role", entity.Role("INTERN")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.HRSignup(ctx, &usecase.HRSignupInput{
				FullName: "Sam",
				Email:    "sam@acme.example",
				Password: "Sup3rSecret!",
				Role:     tt.role,
			})
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	f.identityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCandidateSignup_WeakPasswordRejected(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.policy.On("Validate", "weak").Return(errors.New("password must be at least 8 characters long"))

	_, err := f.svc.CandidateSignup(ctx, &usecase.CandidateSignupInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "weak",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	f.identityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHRSignup_RequiresCompanyID(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.HRSignup(ctx, &usecase.HRSignupInput{
		FullName: "Sam",
		Email:    "sam@acme.example",
		Password: "Sup3rSecret!",
		Role:     entity.RoleHRRecruiter,
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.identityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("Sup3rSecret!")

	f.identityRepo.On("FindByEmailWithPassword", ctx, entity.VariantCandidate, "jane@example.com").Return(identity, nil)
	f.hasher.On("Check", "Sup3rSecret!", identity.PasswordHash).Return(true)
	f.tokenService.On("IssueAccessToken", mock.AnythingOfType("*entity.Identity")).Return("access-token", nil)
	f.tokenService.On("IssueRefreshToken", identity.ID).Return("refresh-token", time.Now().Add(testRefreshTTL), nil)
	f.identityRepo.On("AppendRefreshToken", ctx, entity.VariantCandidate, identity.ID, "refresh-token", mock.AnythingOfType("time.Time")).Return(nil)
	f.identityRepo.On("TouchLastLogin", ctx, entity.VariantCandidate, identity.ID).Return(nil)

	out, err := f.svc.Login(ctx, &usecase.LoginInput{
		Variant:  entity.VariantCandidate,
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Empty(t, out.Identity.PasswordHash)
	f.identityRepo.AssertExpectations(t)
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("Sup3rSecret!")

	f.identityRepo.On("FindByEmailWithPassword", ctx, entity.VariantCandidate, "nobody@example.com").Return(nil, repository.ErrIdentityNotFound)
	f.identityRepo.On("FindByEmailWithPassword", ctx, entity.VariantCandidate, "jane@example.com").Return(identity, nil)
	f.hasher.On("Check", "wrong", identity.PasswordHash).Return(false)

	_, errUnknown := f.svc.Login(ctx, &usecase.LoginInput{
		Variant:  entity.VariantCandidate,
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	_, errWrongPassword := f.svc.Login(ctx, &usecase.LoginInput{
		Variant:  entity.VariantCandidate,
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, errUnknown, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPassword, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPassword.Error())
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("Sup3rSecret!")
	identity.IsActive = false

	f.identityRepo.On("FindByEmailWithPassword", ctx, entity.VariantCandidate, "jane@example.com").Return(identity, nil)
	f.hasher.On("Check", "Sup3rSecret!", identity.PasswordHash).Return(true)

	_, err := f.svc.Login(ctx, &usecase.LoginInput{
		Variant:  entity.VariantCandidate,
		Email:    "jane@example.com",
		Password: "Sup3rSecret!",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountDeactivated)
	f.identityRepo.AssertNotCalled(t, "AppendRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_DeactivatedAccountWithWrongPassword(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("Sup3rSecret!")
	identity.IsActive = false

	f.identityRepo.On("FindByEmailWithPassword", ctx, entity.VariantCandidate, "jane@example.com").Return(identity, nil)
	f.hasher.On("Check", "wrong", identity.PasswordHash).Return(false)

	// The password check runs first so a deactivated account cannot be
	// detected without knowing the password.
	_, err := f.svc.Login(ctx, &usecase.LoginInput{
		Variant:  entity.VariantCandidate,
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestRefresh_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("Sup3rSecret!")

	f.tokenService.On("Verify", "refresh-token", service.TokenKindRefresh).
		Return(&service.TokenClaims{IdentityID: identity.ID, Kind: service.TokenKindRefresh}, nil)
	f.identityRepo.On("FindByIDAndRefreshToken", ctx, entity.VariantCandidate, identity.ID, "refresh-token").Return(identity, nil)
	f.tokenService.On("IssueAccessToken", identity).Return("new-access-token", nil)

	out, err := f.svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", out.AccessToken)

	// No rotation: no new refresh token is stored and none is removed.
	f.identityRepo.AssertNotCalled(t, "AppendRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.identityRepo.AssertNotCalled(t, "RemoveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefresh_FallsBackToHRVariant(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	companyID := uuid.New()
	identity := &entity.Identity{
		ID:        uuid.New(),
		Variant:   entity.VariantHR,
		Email:     "sam@acme.example",
		Role:      entity.RoleHRManager,
		CompanyID: &companyID,
		IsActive:  true,
	}

	f.tokenService.On("Verify", "refresh-token", service.TokenKindRefresh).
		Return(&service.TokenClaims{IdentityID: identity.ID, Kind: service.TokenKindRefresh}, nil)
	f.identityRepo.On("FindByIDAndRefreshToken", ctx, entity.VariantCandidate, identity.ID, "refresh-token").Return(nil, repository.ErrIdentityNotFound)
	f.identityRepo.On("FindByIDAndRefreshToken", ctx, entity.VariantHR, identity.ID, "refresh-token").Return(identity, nil)
	f.tokenService.On("IssueAccessToken", identity).Return("new-access-token", nil)

	out, err := f.svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)
	assert.Equal(t, "new-access-token", out.AccessToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.tokenService.On("Verify", "bad-token", service.TokenKindRefresh).Return(nil, service.ErrInvalidSignature)

	_, err := f.svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "bad-token"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)
}

func TestRefresh_TokenNotBoundToSession(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identityID := uuid.New()

	// Signature verifies but the token was already removed from storage,
	// e.g. by logout or a password change.
	f.tokenService.On("Verify", "stale-token", service.TokenKindRefresh).
		Return(&service.TokenClaims{IdentityID: identityID, Kind: service.TokenKindRefresh}, nil)
	f.identityRepo.On("FindByIDAndRefreshToken", ctx, entity.VariantCandidate, identityID, "stale-token").Return(nil, repository.ErrIdentityNotFound)
	f.identityRepo.On("FindByIDAndRefreshToken", ctx, entity.VariantHR, identityID, "stale-token").Return(nil, repository.ErrIdentityNotFound)

	_, err := f.svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "stale-token"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRefreshToken)
}

func TestLogout_RemovesSession(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identityID := uuid.New()

	f.tokenService.On("Verify", "refresh-token", service.TokenKindRefresh).
		Return(&service.TokenClaims{IdentityID: identityID, Kind: service.TokenKindRefresh}, nil)
	f.identityRepo.On("RemoveRefreshToken", ctx, entity.VariantCandidate, identityID, "refresh-token").Return(nil)

	err := f.svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)
	f.identityRepo.AssertNotCalled(t, "RemoveRefreshToken", ctx, entity.VariantHR, identityID, "refresh-token")
}

func TestLogout_Idempotent(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identityID := uuid.New()

	f.tokenService.On("Verify", "refresh-token", service.TokenKindRefresh).
		Return(&service.TokenClaims{IdentityID: identityID, Kind: service.TokenKindRefresh}, nil)
	f.identityRepo.On("RemoveRefreshToken", ctx, mock.AnythingOfType("entity.Variant"), identityID, "refresh-token").Return(repository.ErrRefreshTokenNotFound)

	assert.NoError(t, f.svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: "refresh-token"}))
}

func TestLogout_InvalidTokenSucceeds(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.tokenService.On("Verify", "garbage", service.TokenKindRefresh).Return(nil, service.ErrInvalidSignature)

	assert.NoError(t, f.svc.Logout(ctx, &usecase.LogoutInput{RefreshToken: "garbage"}))
	f.identityRepo.AssertNotCalled(t, "RemoveRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("old-password")

	f.policy.On("Validate", "new-password").Return(nil)
	f.identityRepo.On("FindByIDWithPassword", ctx, entity.VariantCandidate, identity.ID).Return(identity, nil)
	f.hasher.On("Check", "old-password", identity.PasswordHash).Return(true)
	f.hasher.On("Hash", "new-password").Return("new-hash", nil)
	f.txManager.On("Execute", ctx).Return(nil)
	f.identityRepo.On("SetPasswordHash", ctx, entity.VariantCandidate, identity.ID, "new-hash").Return(nil)
	f.identityRepo.On("ClearRefreshTokens", ctx, entity.VariantCandidate, identity.ID).Return(nil)

	err := f.svc.ChangePassword(ctx, &usecase.ChangePasswordInput{
		Variant:         entity.VariantCandidate,
		IdentityID:      identity.ID,
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	require.NoError(t, err)
	f.identityRepo.AssertExpectations(t)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identity := activeCandidate("old-password")

	f.policy.On("Validate", "new-password").Return(nil)
	f.identityRepo.On("FindByIDWithPassword", ctx, entity.VariantCandidate, identity.ID).Return(identity, nil)
	f.hasher.On("Check", "wrong", identity.PasswordHash).Return(false)

	err := f.svc.ChangePassword(ctx, &usecase.ChangePasswordInput{
		Variant:         entity.VariantCandidate,
		IdentityID:      identity.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	f.identityRepo.AssertNotCalled(t, "SetPasswordHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.identityRepo.AssertNotCalled(t, "ClearRefreshTokens", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword_WeakNewPasswordRejected(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.policy.On("Validate", "weak").Return(errors.New("password must contain a digit"))

	err := f.svc.ChangePassword(ctx, &usecase.ChangePasswordInput{
		Variant:         entity.VariantCandidate,
		IdentityID:      uuid.New(),
		CurrentPassword: "old-password",
		NewPassword:     "weak",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.identityRepo.AssertNotCalled(t, "FindByIDWithPassword", mock.Anything, mock.Anything, mock.Anything)
	f.identityRepo.AssertNotCalled(t, "SetPasswordHash", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyAccessToken_UniformError(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()

	f.tokenService.On("Verify", "expired", service.TokenKindAccess).Return(nil, service.ErrTokenExpired)
	f.tokenService.On("Verify", "forged", service.TokenKindAccess).Return(nil, service.ErrInvalidSignature)
	f.tokenService.On("Verify", "refresh-as-access", service.TokenKindAccess).Return(nil, service.ErrWrongKind)

	for _, token := range []string{"expired", "forged", "refresh-as-access"} {
		_, err := f.svc.VerifyAccessToken(ctx, token)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidOrExpiredToken)
	}
}

func TestVerifyAccessToken_Success(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	identityID := uuid.New()

	f.tokenService.On("Verify", "good", service.TokenKindAccess).
		Return(&service.TokenClaims{
			IdentityID: identityID,
			Email:      "jane@example.com",
			Role:       entity.RoleCandidate,
			Kind:       service.TokenKindAccess,
		}, nil)

	claims, err := f.svc.VerifyAccessToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, identityID, claims.IdentityID)
	assert.Equal(t, entity.RoleCandidate, claims.Role)
}

func TestGetIdentity_NotFound(t *testing.T) {
	f := newAuthServiceFixture(t)
	ctx := context.Background()
	id := uuid.New()

	f.identityRepo.On("FindByID", ctx, entity.VariantHR, id).Return(nil, repository.ErrIdentityNotFound)

	_, err := f.svc.GetIdentity(ctx, entity.VariantHR, id)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
