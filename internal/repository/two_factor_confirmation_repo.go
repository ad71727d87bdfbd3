package repository

import (
	"context"
	"errors"

	"authcore/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TwoFactorConfirmationRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TwoFactorConfirmation, error)
	// Replace upserts the single confirmation row for the user and, when
	// consumedToken is set, deletes the spent challenge token in the same
	// transaction. Upsert rather than delete-then-create so there is no
	// window with no confirmation row.
	Replace(ctx context.Context, userID uuid.UUID, consumedToken *uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type twoFactorConfirmationRepository struct {
	db *gorm.DB
}

func NewTwoFactorConfirmationRepository(db *gorm.DB) TwoFactorConfirmationRepository {
	return &twoFactorConfirmationRepository{db: db}
}

func (r *twoFactorConfirmationRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TwoFactorConfirmation, error) {
	var confirmation entity.TwoFactorConfirmation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&confirmation).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &confirmation, nil
}

func (r *twoFactorConfirmationRepository) Replace(ctx context.Context, userID uuid.UUID, consumedToken *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if consumedToken != nil {
			if err := tx.
				Where("id = ?", *consumedToken).
				Delete(&entity.AuthToken{}).Error; err != nil {
				return err
			}
		}
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"created_at"}),
			}).
			Create(&entity.TwoFactorConfirmation{UserID: userID}).Error
	})
}

func (r *twoFactorConfirmationRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.TwoFactorConfirmation{}).
		Error
}
