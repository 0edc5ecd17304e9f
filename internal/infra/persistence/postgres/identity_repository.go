// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"hirepro/internal/domain/entity"
	domainerrors "hirepro/internal/domain/errors"
	"hirepro/internal/domain/repository"
	"hirepro/internal/infra/persistence/model"
)

// passwordHashColumn is omitted from every read unless the caller opts in.
const passwordHashColumn = "password_hash"

// identityRepository implements the domain.IdentityRepository interface over
// the two identity tables. Each mutation is one SQL statement, so concurrent
// operations on the same identity interleave without lost updates.
type identityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB) repository.IdentityRepository {
	return &identityRepository{db: db}
}

// FindByEmail retrieves an identity by email within one variant's table,
// excluding the password hash.
func (repo *identityRepository) FindByEmail(ctx context.Context, variant entity.Variant, email string) (*entity.Identity, error) {
	return repo.findOne(ctx, variant, false, "email = ?", entity.NormalizeEmail(email))
}

// FindByEmailWithPassword is the explicit opt-in projection for login and
// change-password flows.
func (repo *identityRepository) FindByEmailWithPassword(ctx context.Context, variant entity.Variant, email string) (*entity.Identity, error) {
	return repo.findOne(ctx, variant, true, "email = ?", entity.NormalizeEmail(email))
}

// FindByID retrieves an identity by id within one variant's table, excluding
// the password hash.
func (repo *identityRepository) FindByID(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error) {
	return repo.findOne(ctx, variant, false, "id = ?", id)
}

// FindByIDWithPassword retrieves an identity by id including the password hash.
func (repo *identityRepository) FindByIDWithPassword(ctx context.Context, variant entity.Variant, id uuid.UUID) (*entity.Identity, error) {
	return repo.findOne(ctx, variant, true, "id = ?", id)
}

// FindByIDAndRefreshToken retrieves an identity only when the raw refresh
// token is currently bound to exactly this identity in this variant. A token
// held by a different identity must not match even if its signature verifies.
func (repo *identityRepository) FindByIDAndRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string) (*entity.Identity, error) {
	var tokenM model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Where("identity_id = ? AND variant = ? AND token = ?", id, variant.String(), token).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrIdentityNotFound
		}

		return nil, errors.WithStack(err)
	}

	return repo.findOne(ctx, variant, false, "id = ?", id)
}

// Create persists a new identity into its variant's table.
func (repo *identityRepository) Create(ctx context.Context, identity *entity.Identity) error {
	identity.Email = entity.NormalizeEmail(identity.Email)

	var err error
	switch identity.Variant {
	case entity.VariantCandidate:
		m := fromCandidateDomain(identity)
		err = repo.db.WithContext(ctx).Create(m).Error
		if err == nil {
			identity.ID = m.ID
			identity.CreatedAt = m.CreatedAt
			identity.UpdatedAt = m.UpdatedAt
		}
	case entity.VariantHR:
		m := fromHRUserDomain(identity)
		err = repo.db.WithContext(ctx).Create(m).Error
		if err == nil {
			identity.ID = m.ID
			identity.CreatedAt = m.CreatedAt
			identity.UpdatedAt = m.UpdatedAt
		}
	default:
		return errors.Errorf("unknown identity variant: %s", identity.Variant)
	}

	if err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required identity information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create identity")
	}

	return nil
}

// AppendRefreshToken adds one session row for the identity. A single INSERT,
// so concurrent logins on the same identity never clobber each other.
func (repo *identityRepository) AppendRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string, expiresAt time.Time) error {
	tokenM := &model.RefreshTokenModel{
		IdentityID: id,
		Variant:    variant.String(),
		Token:      token,
		ExpiresAt:  expiresAt,
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "refresh token already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append refresh token")
	}

	return nil
}

// RemoveRefreshToken deletes exactly the matching session row.
func (repo *identityRepository) RemoveRefreshToken(ctx context.Context, variant entity.Variant, id uuid.UUID, token string) error {
	result := repo.db.WithContext(ctx).
		Where("identity_id = ? AND variant = ? AND token = ?", id, variant.String(), token).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	// If no rows were affected, it means the token was not found.
	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// ClearRefreshTokens deletes every session row for the identity.
func (repo *identityRepository) ClearRefreshTokens(ctx context.Context, variant entity.Variant, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("identity_id = ? AND variant = ?", id, variant.String()).
		Delete(&model.RefreshTokenModel{}).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// SetPasswordHash replaces the identity's password hash.
func (repo *identityRepository) SetPasswordHash(ctx context.Context, variant entity.Variant, id uuid.UUID, hash string) error {
	result := repo.tableFor(ctx, variant).
		Where("id = ?", id).
		Update(passwordHashColumn, hash)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// TouchLastLogin records a successful login timestamp.
func (repo *identityRepository) TouchLastLogin(ctx context.Context, variant entity.Variant, id uuid.UUID) error {
	result := repo.tableFor(ctx, variant).
		Where("id = ?", id).
		Update("last_login", time.Now())
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrIdentityNotFound
	}

	return nil
}

// DeleteExpiredRefreshTokens sweeps session rows past their storage expiry.
func (repo *identityRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.RefreshTokenModel{}).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// findOne runs a single-row lookup against the variant's table, optionally
// including the password hash column.
func (repo *identityRepository) findOne(ctx context.Context, variant entity.Variant, withPassword bool, cond string, arg any) (*entity.Identity, error) {
	db := repo.db.WithContext(ctx)
	if !withPassword {
		db = db.Omit(passwordHashColumn)
	}

	switch variant {
	case entity.VariantCandidate:
		var m model.CandidateModel
		if err := db.Where(cond, arg).First(&m).Error; err != nil {
			return nil, translateLookupErr(err)
		}

		return m.ToEntity(), nil
	case entity.VariantHR:
		var m model.HRUserModel
		if err := db.Where(cond, arg).First(&m).Error; err != nil {
			return nil, translateLookupErr(err)
		}

		return m.ToEntity(), nil
	default:
		return nil, errors.Errorf("unknown identity variant: %s", variant)
	}
}

// tableFor scopes an update statement to the variant's model.
func (repo *identityRepository) tableFor(ctx context.Context, variant entity.Variant) *gorm.DB {
	db := repo.db.WithContext(ctx)
	if variant == entity.VariantHR {
		return db.Model(&model.HRUserModel{})
	}

	return db.Model(&model.CandidateModel{})
}

func translateLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrIdentityNotFound
	}

	return errors.WithStack(err)
}

// --- Mapper Functions ---

// fromCandidateDomain converts a domain Identity to a GORM CandidateModel.
func fromCandidateDomain(data *entity.Identity) *model.CandidateModel {
	if data == nil {
		return nil
	}

	return &model.CandidateModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		Phone:        data.Phone,
		Location:     data.Location,
		IsActive:     data.IsActive,
		LastLogin:    data.LastLogin,
	}
}

// fromHRUserDomain converts a domain Identity to a GORM HRUserModel.
func fromHRUserDomain(data *entity.Identity) *model.HRUserModel {
	if data == nil {
		return nil
	}

	return &model.HRUserModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		FullName:     data.FullName,
		Role:         data.Role.String(),
		CompanyID:    data.CompanyID,
		IsActive:     data.IsActive,
		LastLogin:    data.LastLogin,
	}
}
