package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/models"
)

// SaveRefreshToken inserts a new ledger row. It never overwrites: concurrent
// logins for the same user both keep their row, the at-most-one invariant is
// maintained by the orchestrator deleting prior tokens, not by the schema.
func (r *GormRepo) SaveRefreshToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	row := models.RefreshToken{
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var row models.RefreshToken
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("User.Roles").
		Where("token_hash = ?", hashToken(token)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrInvalidToken
		}
		return nil, err
	}
	return &row, nil
}

func (r *GormRepo) DeleteRefreshToken(ctx context.Context, row *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Delete(&models.RefreshToken{}, row.ID).Error
}

func (r *GormRepo) DeleteAllForUser(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RefreshToken{}).Error
}

// ReplaceRefreshToken consumes one ledger row and inserts its replacement in
// a single transaction. The delete's rows-affected count is the rotation
// guard: of two concurrent redemptions of the same token, exactly one sees
// the row and wins, the other gets ErrInvalidToken.
func (r *GormRepo) ReplaceRefreshToken(ctx context.Context, oldID, userID uint, newToken string, newExpiry time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.RefreshToken{}, oldID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrInvalidToken
		}

		row := models.RefreshToken{
			TokenHash: hashToken(newToken),
			UserID:    userID,
			ExpiresAt: newExpiry,
		}
		return tx.Create(&row).Error
	})
}

func (r *GormRepo) CountRefreshTokensForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
