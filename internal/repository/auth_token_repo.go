package repository

import (
	"context"
	"errors"

	"authcore/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthTokenRepository interface {
	// Replace deletes any existing token for the same (email, kind) and
	// creates the new one atomically.
	Replace(ctx context.Context, token *entity.AuthToken) error
	FindByToken(ctx context.Context, value string, kind entity.TokenKind) (*entity.AuthToken, error)
	FindByEmail(ctx context.Context, email string, kind entity.TokenKind) (*entity.AuthToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type authTokenRepository struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &authTokenRepository{db: db}
}

func (r *authTokenRepository) Replace(ctx context.Context, token *entity.AuthToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("email = ? AND kind = ?", token.Email, token.Kind).
			Delete(&entity.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *authTokenRepository) FindByToken(ctx context.Context, value string, kind entity.TokenKind) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND kind = ?", value, kind).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) FindByEmail(ctx context.Context, email string, kind entity.TokenKind) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := r.db.WithContext(ctx).
		Where("email = ? AND kind = ?", email, kind).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.AuthToken{}).
		Error
}
