package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/transport"
)

var availabilityStatuses = map[string]bool{
	"AVAILABLE":   true,
	"BUSY":        true,
	"UNAVAILABLE": true,
}

type UserService struct {
	Repo repo.GormRepo
}

func New(r repo.GormRepo) *UserService {
	return &UserService{Repo: r}
}

func (s *UserService) CreateProfile(ctx context.Context, req transport.CreateProfileRequest) (*models.Profile, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "email is required"
	}
	if strings.TrimSpace(req.FirstName) == "" {
		fields["firstName"] = "first name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["lastName"] = "last name is required"
	}
	if len(fields) > 0 {
		return nil, &httperr.ValidationError{Fields: fields}
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = "PATIENT"
	}

	p := &models.Profile{
		AuthUserID:  req.AuthUserID,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        role,
	}
	if err := s.Repo.CreateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.Profile, error) {
	return s.Repo.GetProfile(ctx, id)
}

func (s *UserService) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.Repo.GetProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, req transport.UpdateProfileRequest) (*models.Profile, error) {
	p, err := s.Repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		p.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if err := s.Repo.SaveProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, id uint) error {
	return s.Repo.SoftDeleteProfile(ctx, id)
}

func (s *UserService) ListProfiles(ctx context.Context, page, size int) (*transport.Page[models.Profile], error) {
	page, size = clampPage(page, size)
	total, items, err := s.Repo.ListProfiles(ctx, page*size, size)
	if err != nil {
		return nil, err
	}
	return transport.NewPage(items, page, size, total), nil
}

func (s *UserService) CreateDoctorProfile(ctx context.Context, req transport.CreateDoctorProfileRequest) (*models.DoctorProfile, error) {
	fields := map[string]string{}
	if req.ProfileID == 0 {
		fields["profileId"] = "profile id is required"
	}
	if strings.TrimSpace(req.Specialization) == "" {
		fields["specialization"] = "specialization is required"
	}
	if req.ConsultationFee < 0 {
		fields["consultationFee"] = "consultation fee must not be negative"
	}
	status := strings.ToUpper(strings.TrimSpace(req.AvailabilityStatus))
	if status == "" {
		status = "AVAILABLE"
	}
	if !availabilityStatuses[status] {
		fields["availabilityStatus"] = "must be one of AVAILABLE, BUSY, UNAVAILABLE"
	}
	if len(fields) > 0 {
		return nil, &httperr.ValidationError{Fields: fields}
	}

	p, err := s.Repo.GetProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}
	if p.Role != "DOCTOR" {
		return nil, &httperr.ValidationError{Fields: map[string]string{
			"profileId": "profile does not belong to a doctor",
		}}
	}

	dp := &models.DoctorProfile{
		ProfileID:          p.ID,
		Specialization:     req.Specialization,
		LicenseNumber:      req.LicenseNumber,
		ExperienceYears:    req.ExperienceYears,
		Qualification:      req.Qualification,
		Bio:                req.Bio,
		ConsultationFee:    req.ConsultationFee,
		AvailabilityStatus: status,
	}
	if err := s.Repo.CreateDoctorProfile(ctx, dp); err != nil {
		return nil, fmt.Errorf("create doctor profile: %w", err)
	}
	dp.Profile = *p
	return dp, nil
}

func (s *UserService) GetDoctorProfile(ctx context.Context, id uint) (*models.DoctorProfile, error) {
	return s.Repo.GetDoctorProfile(ctx, id)
}

func (s *UserService) ListDoctorProfiles(ctx context.Context, page, size int) (*transport.Page[models.DoctorProfile], error) {
	page, size = clampPage(page, size)
	total, items, err := s.Repo.ListDoctorProfiles(ctx, page*size, size)
	if err != nil {
		return nil, err
	}
	return transport.NewPage(items, page, size, total), nil
}

func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
