package repo

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/models"
)

const pqUniqueViolation = "23505"

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.Profile{}, &models.DoctorProfile{})
}

func (r *GormRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	err := r.DB.WithContext(ctx).Create(p).Error
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return httperr.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrAlreadyExists
	}
	return err
}

func (r *GormRepo) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var p models.Profile
	err := r.DB.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	err := r.DB.WithContext(ctx).
		Where("email = ? AND deleted = ?", email, false).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) SaveProfile(ctx context.Context, p *models.Profile) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) ListProfiles(ctx context.Context, offset, limit int) (int64, []models.Profile, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Profile{}).
		Where("deleted = ?", false).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Profile
	if err := r.DB.WithContext(ctx).
		Where("deleted = ?", false).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// SoftDeleteProfile flips the lifecycle flag; the row stays.
func (r *GormRepo) SoftDeleteProfile(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *GormRepo) CreateDoctorProfile(ctx context.Context, dp *models.DoctorProfile) error {
	err := r.DB.WithContext(ctx).Create(dp).Error
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return httperr.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrAlreadyExists
	}
	return err
}

func (r *GormRepo) GetDoctorProfile(ctx context.Context, id uint) (*models.DoctorProfile, error) {
	var dp models.DoctorProfile
	err := r.DB.WithContext(ctx).
		Preload("Profile").
		Where("id = ? AND deleted = ?", id, false).
		First(&dp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &dp, nil
}

func (r *GormRepo) ListDoctorProfiles(ctx context.Context, offset, limit int) (int64, []models.DoctorProfile, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.DoctorProfile{}).
		Where("deleted = ?", false).
		Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.DoctorProfile
	if err := r.DB.WithContext(ctx).
		Preload("Profile").
		Where("deleted = ?", false).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
