// Package model holds the GORM table mappings for the auth schema.
package model

import (
	"time"

	"github.com/google/uuid"

	"hirepro/internal/domain/entity"
)

// CandidateModel mirrors the 'candidates' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Email uniqueness is scoped to this table; the same address may also exist
// in 'hr_users'.
type CandidateModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Phone        string    `gorm:"type:varchar(50)"`
	Location     string    `gorm:"type:varchar(255)"`
	IsActive     bool      `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CandidateModel) TableName() string {
	return "candidates"
}

// ToEntity converts the model to the domain identity shape.
func (m *CandidateModel) ToEntity() *entity.Identity {
	return &entity.Identity{
		ID:           m.ID,
		Variant:      entity.VariantCandidate,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Phone:        m.Phone,
		Location:     m.Location,
		Role:         entity.RoleCandidate,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// HRUserModel mirrors the 'hr_users' table. Every row is bound to a company
// and carries one of the HR hierarchy roles.
type HRUserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string     `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	FullName     string     `gorm:"type:varchar(100);not null"`
	Role         string     `gorm:"type:varchar(50);not null"`
	CompanyID    *uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (HRUserModel) TableName() string {
	return "hr_users"
}

// ToEntity converts the model to the domain identity shape.
func (m *HRUserModel) ToEntity() *entity.Identity {
	return &entity.Identity{
		ID:           m.ID,
		Variant:      entity.VariantHR,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         entity.Role(m.Role),
		CompanyID:    m.CompanyID,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// RefreshTokenModel mirrors the 'refresh_tokens' table. One row per live
// session. The token column is unique across both identity variants, which
// makes the (identity, token) binding unambiguous at the schema level.
type RefreshTokenModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	IdentityID uuid.UUID `gorm:"type:uuid;not null;index:idx_refresh_tokens_identity"`
	Variant    string    `gorm:"type:varchar(20);not null;index:idx_refresh_tokens_identity"`
	Token      string    `gorm:"type:text;unique;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToEntity converts the model to the domain session shape.
func (m *RefreshTokenModel) ToEntity() *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:         m.ID,
		IdentityID: m.IdentityID,
		Variant:    entity.Variant(m.Variant),
		Token:      m.Token,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
	}
}
