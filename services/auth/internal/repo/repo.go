package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// Migrate creates the schema and seeds the fixed role set. Roles are
// immutable after creation and shared by every user.
func (r *GormRepo) Migrate(ctx context.Context) error {
	db := r.DB.WithContext(ctx)
	if err := db.AutoMigrate(&models.Role{}, &models.User{}, &models.RefreshToken{}); err != nil {
		return err
	}

	seed := []models.Role{
		{Name: models.RoleAdmin, Description: "Platform administrator"},
		{Name: models.RoleDoctor, Description: "Medical professional"},
		{Name: models.RolePatient, Description: "Patient"},
	}
	for _, role := range seed {
		role := role
		if err := db.Where("name = ?", role.Name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
