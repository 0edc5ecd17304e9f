// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "hirepro/internal/delivery/context"
	"hirepro/internal/domain/entity"
	domainerrors "hirepro/internal/domain/errors"
	"hirepro/internal/domain/repository"
	"hirepro/internal/domain/service"
	"hirepro/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	identityRepo   repository.IdentityRepository
	hasher         service.PasswordHasher
	passwordPolicy service.PasswordPolicy
	tokenService   service.TokenService
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	IdentityRepo   repository.IdentityRepository
	Hasher         service.PasswordHasher
	PasswordPolicy service.PasswordPolicy
	TokenService   service.TokenService
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:      params.TxManager,
		identityRepo:   params.IdentityRepo,
		hasher:         params.Hasher,
		passwordPolicy: params.PasswordPolicy,
		tokenService:   params.TokenService,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CandidateSignup registers a candidate account and opens its first session.
func (srv *authService) CandidateSignup(ctx context.Context, input *usecase.CandidateSignupInput) (*usecase.SessionOutput, error) {
	identity := &entity.Identity{
		Variant:  entity.VariantCandidate,
		Email:    entity.NormalizeEmail(input.Email),
		FullName: input.FullName,
		Phone:    input.Phone,
		Location: input.Location,
		Role:     entity.RoleCandidate,
		IsActive: true,
	}

	return srv.executeSignup(ctx, identity, input.Password)
}

// HRSignup registers a company-bound HR account and opens its first session.
func (srv *authService) HRSignup(ctx context.Context, input *usecase.HRSignupInput) (*usecase.SessionOutput, error) {
	if !entity.IsHRSignupRole(input.Role) {
		srv.log(ctx).Warn("Rejected HR signup with non-assignable role", slog.String("role", input.Role.String()))

		return nil, domainerrors.ErrValidationFailed.WrapMessage("role is not assignable at signup")
	}

	// Every HR account belongs to a tenant; a company binding is mandatory.
	if input.CompanyID == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("companyId is required for hr accounts")
	}

	identity := &entity.Identity{
		Variant:   entity.VariantHR,
		Email:     entity.NormalizeEmail(input.Email),
		FullName:  input.FullName,
		Role:      input.Role,
		CompanyID: input.CompanyID,
		IsActive:  true,
	}

	return srv.executeSignup(ctx, identity, input.Password)
}

// executeSignup is the shared signup flow. The identity insert and the first
// session row commit together, so a signup either yields a fully usable
// session or nothing.
func (srv *authService) executeSignup(ctx context.Context, identity *entity.Identity, password string) (*usecase.SessionOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("variant", identity.Variant.String()), slog.String("email", identity.Email))

	if err := srv.passwordPolicy.Validate(password); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}
	identity.PasswordHash = hashedPassword

	var accessToken, refreshToken string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		if err := identityRepo.Create(ctx, identity); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrAlreadyExists.WrapMessage("email is already registered")
			}

			return errors.Wrap(err, "failed to create identity during signup")
		}

		var expiresAt time.Time
		accessToken, refreshToken, expiresAt, err = srv.issueTokenPair(identity)
		if err != nil {
			return errors.Wrap(err, "failed to issue tokens during signup")
		}

		return identityRepo.AppendRefreshToken(ctx, identity.Variant, identity.ID, refreshToken, expiresAt)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("variant", identity.Variant.String()), slog.String("email", identity.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.String("variant", identity.Variant.String()), slog.Any("identityID", identity.ID))

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Identity:     identity.Sanitized(),
	}, nil
}

// Login authenticates against one variant's collection. An unknown email and
// a wrong password produce the same error; only a deactivated account is
// reported distinctly, and only after the password check has passed.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("variant", input.Variant.String()), slog.String("email", input.Email))

	identity, err := srv.identityRepo.FindByEmailWithPassword(ctx, input.Variant, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load identity for login")
	}

	// bcrypt is CPU-bound; run it outside any transaction.
	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !identity.IsActive {
		srv.log(ctx).Warn("Login on deactivated account", slog.Any("identityID", identity.ID))

		return nil, domainerrors.ErrAccountDeactivated
	}

	accessToken, refreshToken, expiresAt, err := srv.issueTokenPair(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens during login")
	}

	if err := srv.identityRepo.AppendRefreshToken(ctx, identity.Variant, identity.ID, refreshToken, expiresAt); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	if err := srv.identityRepo.TouchLastLogin(ctx, identity.Variant, identity.ID); err != nil {
		// Session is already live; a missing last-login timestamp is not
		// worth failing the request over.
		srv.log(ctx).Warn("Failed to record last login", slog.Any("identityID", identity.ID), slog.Any("error", err))
	}

	srv.log(ctx).Debug("Login completed", slog.Any("identityID", identity.ID))

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Identity:     identity.Sanitized(),
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated and remains valid.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	claims, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Warn("Refresh with invalid token", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidRefreshToken
	}

	// The token only encodes the identity id, not which collection it lives
	// in, so resolution tries candidates first, then HR users.
	identity, err := srv.resolveSession(ctx, claims.IdentityID, input.RefreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := srv.tokenService.IssueAccessToken(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token during refresh")
	}

	srv.log(ctx).Debug("Access token refreshed", slog.Any("identityID", identity.ID))

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout ends the session bound to the refresh token. An invalid token and
// an already-removed session both succeed; logging out twice is not an error.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Debug("Attempting to log out")

	claims, err := srv.tokenService.Verify(input.RefreshToken, service.TokenKindRefresh)
	if err != nil {
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))

		return nil
	}

	for _, variant := range entity.Variants() {
		err := srv.identityRepo.RemoveRefreshToken(ctx, variant, claims.IdentityID, input.RefreshToken)
		if err == nil {
			srv.log(ctx).Debug("Logged out", slog.Any("identityID", claims.IdentityID), slog.String("variant", variant.String()))

			return nil
		}
		if !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(err, "failed to remove refresh token during logout")
		}
	}

	// No session matched; the token was already removed or never stored.
	return nil
}

// ChangePassword replaces the caller's password. Every session ends in the
// same transaction, so no refresh token issued before the change survives it.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Attempting password change", slog.Any("identityID", input.IdentityID))

	if err := srv.passwordPolicy.Validate(input.NewPassword); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	identity, err := srv.identityRepo.FindByIDWithPassword(ctx, input.Variant, input.IdentityID)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("account not found")
		}

		return errors.Wrap(err, "failed to load identity for password change")
	}

	if !srv.hasher.Check(input.CurrentPassword, identity.PasswordHash) {
		srv.log(ctx).Warn("Password change with wrong current password", slog.Any("identityID", input.IdentityID))

		return domainerrors.ErrInvalidCredentials.WrapMessage("current password is incorrect")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		if err := identityRepo.SetPasswordHash(ctx, input.Variant, input.IdentityID, newHash); err != nil {
			return errors.Wrap(err, "failed to update password hash")
		}

		return identityRepo.ClearRefreshTokens(ctx, input.Variant, input.IdentityID)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password change transaction", slog.Any("identityID", input.IdentityID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Info("Password changed, all sessions ended", slog.Any("identityID", input.IdentityID))

	return nil
}

// VerifyAccessToken validates an access token for request authentication.
// Every failure collapses into the same uniform error so callers cannot
// distinguish a bad signature from an expired token.
func (srv *authService) VerifyAccessToken(_ context.Context, tokenString string) (*service.TokenClaims, error) {
	claims, err := srv.tokenService.Verify(tokenString, service.TokenKindAccess)
	if err != nil {
		return nil, domainerrors.ErrInvalidOrExpiredToken
	}

	return claims, nil
}

// GetIdentity loads the sanitized identity behind verified claims.
func (srv *authService) GetIdentity(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error) {
	identity, err := srv.identityRepo.FindByID(ctx, variant, id)
	if err != nil {
		if errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("account not found")
		}

		return nil, errors.Wrap(err, "failed to load identity")
	}

	return identity.Sanitized(), nil
}

// issueTokenPair creates matching access and refresh tokens for an identity.
// The returned time is the refresh token's expiry, used as the session row's
// storage expiry so the two never drift apart.
func (srv *authService) issueTokenPair(identity *entity.Identity) (string, string, time.Time, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(identity)
	if err != nil {
		return "", "", time.Time{}, err
	}

	refreshToken, expiresAt, err := srv.tokenService.IssueRefreshToken(identity.ID)
	if err != nil {
		return "", "", time.Time{}, err
	}

	return accessToken, refreshToken, expiresAt, nil
}

// resolveSession finds the identity a stored refresh token belongs to,
// trying both variants in order.
func (srv *authService) resolveSession(ctx context.Context, identityID uuid.UUID, token string) (*entity.Identity, error) {
	for _, variant := range entity.Variants() {
		identity, err := srv.identityRepo.FindByIDAndRefreshToken(ctx, variant, identityID, token)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, repository.ErrIdentityNotFound) {
			return nil, errors.Wrap(err, "failed to resolve refresh session")
		}
	}

	srv.log(ctx).Warn("Refresh token not bound to any session", slog.Any("identityID", identityID))

	return nil, domainerrors.ErrInvalidRefreshToken
}
