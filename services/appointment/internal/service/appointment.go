package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/transport"
)

const defaultDurationMinutes = 30

type AppointmentService struct {
	Repo repo.GormRepo
	now  func() time.Time
}

func New(r repo.GormRepo) *AppointmentService {
	return &AppointmentService{Repo: r, now: time.Now}
}

// WithClock fixes the service clock. Tests only.
func (s *AppointmentService) WithClock(now func() time.Time) *AppointmentService {
	s.now = now
	return s
}

func (s *AppointmentService) Create(ctx context.Context, req transport.CreateAppointmentRequest) (*models.Appointment, error) {
	fields := map[string]string{}
	if req.PatientID == 0 {
		fields["patientId"] = "patient id is required"
	}
	if req.DoctorID == 0 {
		fields["doctorId"] = "doctor id is required"
	}
	if req.ScheduledAt.IsZero() {
		fields["scheduledAt"] = "scheduled time is required"
	} else if !req.ScheduledAt.After(s.now()) {
		fields["scheduledAt"] = "scheduled time must be in the future"
	}
	if req.DurationMinutes < 0 || req.DurationMinutes > 8*60 {
		fields["durationMinutes"] = "duration must be between 0 and 480 minutes"
	}
	if len(fields) > 0 {
		return nil, &httperr.ValidationError{Fields: fields}
	}

	a := &models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		ServiceID:       req.ServiceID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Status:          models.StatusScheduled,
	}
	if a.DurationMinutes == 0 {
		a.DurationMinutes = defaultDurationMinutes
	}

	conflict, err := s.doctorHasConflict(ctx, a)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("doctor is booked for that slot: %w", httperr.ErrAlreadyExists)
	}

	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	logging.FromContext(ctx).Info("appointment booked",
		"appointment_id", a.ID, "doctor_id", a.DoctorID, "patient_id", a.PatientID)
	return a, nil
}

func (s *AppointmentService) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.Repo.Get(ctx, id)
}

func (s *AppointmentService) Update(ctx context.Context, id uint, req transport.UpdateAppointmentRequest) (*models.Appointment, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		to := models.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
		if !to.Valid() {
			return nil, httperr.Validation(map[string]string{
				"status": "must be one of SCHEDULED, CONFIRMED, COMPLETED, CANCELLED",
			})
		}
		if to == models.StatusCancelled {
			return nil, httperr.Validation(map[string]string{
				"status": "use the cancel endpoint to cancel",
			})
		}
		if !a.Status.CanTransition(to) {
			return nil, fmt.Errorf("cannot move appointment from %s to %s: %w",
				a.Status, to, httperr.ErrValidation)
		}
		a.Status = to
	}

	if req.ScheduledAt != nil {
		if a.Status != models.StatusScheduled {
			return nil, httperr.Validation(map[string]string{
				"scheduledAt": "only scheduled appointments can be rescheduled",
			})
		}
		if !req.ScheduledAt.After(s.now()) {
			return nil, httperr.Validation(map[string]string{
				"scheduledAt": "scheduled time must be in the future",
			})
		}
		a.ScheduledAt = *req.ScheduledAt

		conflict, err := s.doctorHasConflict(ctx, a)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, fmt.Errorf("doctor is booked for that slot: %w", httperr.ErrAlreadyExists)
		}
	}

	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, id uint, reason string) (*models.Appointment, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransition(models.StatusCancelled) {
		return nil, fmt.Errorf("cannot cancel a %s appointment: %w", a.Status, httperr.ErrValidation)
	}

	now := s.now()
	a.Status = models.StatusCancelled
	a.CancellationReason = reason
	a.CancelledAt = &now

	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	logging.FromContext(ctx).Info("appointment cancelled", "appointment_id", a.ID)
	return a, nil
}

func (s *AppointmentService) ListByPatient(ctx context.Context, patientID uint) ([]models.Appointment, error) {
	return s.Repo.ListByPatient(ctx, patientID)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID uint) ([]models.Appointment, error) {
	return s.Repo.ListByDoctor(ctx, doctorID)
}

func (s *AppointmentService) doctorHasConflict(ctx context.Context, a *models.Appointment) (bool, error) {
	live, err := s.Repo.ListLiveByDoctor(ctx, a.DoctorID)
	if err != nil {
		return false, err
	}

	start := a.ScheduledAt
	end := start.Add(time.Duration(a.DurationMinutes) * time.Minute)
	for _, other := range live {
		if other.ID == a.ID {
			continue
		}
		otherEnd := other.ScheduledAt.Add(time.Duration(other.DurationMinutes) * time.Minute)
		if start.Before(otherEnd) && other.ScheduledAt.Before(end) {
			return true, nil
		}
	}
	return false, nil
}
