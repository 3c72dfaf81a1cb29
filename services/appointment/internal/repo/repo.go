package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.Appointment{})
}

func (r *GormRepo) Create(ctx context.Context, a *models.Appointment) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	var a models.Appointment
	err := r.DB.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) Save(ctx context.Context, a *models.Appointment) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) ListByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	var items []models.Appointment
	err := r.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("scheduled_at DESC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var items []models.Appointment
	err := r.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("scheduled_at DESC").
		Find(&items).Error
	return items, err
}

// ListLiveByDoctor returns the doctor's SCHEDULED and CONFIRMED
// appointments. Cancelled and completed slots are free again.
func (r *GormRepo) ListLiveByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	var items []models.Appointment
	err := r.DB.WithContext(ctx).
		Where("doctor_id = ? AND status IN ?", doctorID,
			[]models.Status{models.StatusScheduled, models.StatusConfirmed}).
		Find(&items).Error
	return items, err
}
