package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.ServiceOffering{})
}

func (r *GormRepo) Get(ctx context.Context, id uint) (*models.ServiceOffering, error) {
	var svc models.ServiceOffering
	if err := r.DB.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (r *GormRepo) List(ctx context.Context, offset, limit int) (int64, []models.ServiceOffering, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.ServiceOffering{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.ServiceOffering
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ListActive(ctx context.Context) ([]models.ServiceOffering, error) {
	var items []models.ServiceOffering
	err := r.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("category ASC, name ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) Create(ctx context.Context, svc *models.ServiceOffering) error {
	return r.DB.WithContext(ctx).Create(svc).Error
}

func (r *GormRepo) Save(ctx context.Context, svc *models.ServiceOffering) error {
	return r.DB.WithContext(ctx).Save(svc).Error
}

func (r *GormRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.ServiceOffering{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// SearchLike is the database fallback used when no search index is
// configured. Case-insensitive substring match on name, description
// and category, active offerings only.
func (r *GormRepo) SearchLike(ctx context.Context, q string, offset, limit int) (int64, []models.ServiceOffering, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	match := func() *gorm.DB {
		return r.DB.WithContext(ctx).Model(&models.ServiceOffering{}).
			Where("active = ?", true).
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
				pattern, pattern, pattern)
	}

	var total int64
	if err := match().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.ServiceOffering
	if err := match().Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
