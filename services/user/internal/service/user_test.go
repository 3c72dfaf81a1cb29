package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/user/internal/transport"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	rp := repo.GormRepo{DB: db}
	require.NoError(t, rp.Migrate(context.Background()))

	return New(rp)
}

func createBob(t *testing.T, svc *UserService, role string) *models.Profile {
	t.Helper()

	p, err := svc.CreateProfile(context.Background(), transport.CreateProfileRequest{
		AuthUserID:  7,
		Email:       "bob@example.com",
		FirstName:   "Bob",
		LastName:    "Jones",
		PhoneNumber: "+1555000222",
		Role:        role,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProfile_DefaultsToPatient(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	p := createBob(t, svc, "")

	assert.Equal(t, "PATIENT", p.Role)
	assert.Equal(t, "bob@example.com", p.Email)
	assert.NotZero(t, p.ID)
}

func TestCreateProfile_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	createBob(t, svc, "PATIENT")

	_, err := svc.CreateProfile(context.Background(), transport.CreateProfileRequest{
		Email:     "BOB@example.com",
		FirstName: "Robert",
		LastName:  "Jones",
	})
	assert.ErrorIs(t, err, httperr.ErrAlreadyExists)
}

func TestCreateProfile_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.CreateProfile(context.Background(), transport.CreateProfileRequest{})

	var verr *httperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "firstName")
	assert.Contains(t, verr.Fields, "lastName")
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	p := createBob(t, svc, "PATIENT")

	phone := "+1555999888"
	updated, err := svc.UpdateProfile(context.Background(), p.ID, transport.UpdateProfileRequest{
		PhoneNumber: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, phone, updated.PhoneNumber)
	assert.Equal(t, "Bob", updated.FirstName)
	assert.Equal(t, "Jones", updated.LastName)
}

func TestDeleteProfile_SoftDelete(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	p := createBob(t, svc, "PATIENT")

	require.NoError(t, svc.DeleteProfile(context.Background(), p.ID))

	_, err := svc.GetProfile(context.Background(), p.ID)
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	err = svc.DeleteProfile(context.Background(), p.ID)
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	// The row survives the delete; only the flag flips.
	var raw models.Profile
	require.NoError(t, svc.Repo.DB.First(&raw, p.ID).Error)
	assert.True(t, raw.Deleted)
}

func TestGetProfileByEmail_NormalizesCase(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	createBob(t, svc, "PATIENT")

	p, err := svc.GetProfileByEmail(context.Background(), "  BOB@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", p.Email)
}

func TestCreateDoctorProfile(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	p := createBob(t, svc, "DOCTOR")

	dp, err := svc.CreateDoctorProfile(context.Background(), transport.CreateDoctorProfileRequest{
		ProfileID:       p.ID,
		Specialization:  "Cardiology",
		LicenseNumber:   "LIC-1234",
		ExperienceYears: 10,
		ConsultationFee: 120,
	})
	require.NoError(t, err)

	assert.Equal(t, "AVAILABLE", dp.AvailabilityStatus)
	assert.False(t, dp.Verified)
	assert.Equal(t, p.ID, dp.ProfileID)

	got, err := svc.GetDoctorProfile(context.Background(), dp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Specialization)
	assert.Equal(t, "bob@example.com", got.Profile.Email)
}

func TestCreateDoctorProfile_RejectsNonDoctor(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	p := createBob(t, svc, "PATIENT")

	_, err := svc.CreateDoctorProfile(context.Background(), transport.CreateDoctorProfileRequest{
		ProfileID:      p.ID,
		Specialization: "Cardiology",
	})
	var verr *httperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "profileId")
}

func TestListProfiles_Pagination(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.CreateProfile(context.Background(), transport.CreateProfileRequest{
			Email:     email,
			FirstName: "First",
			LastName:  "Last",
		})
		require.NoError(t, err)
	}

	page, err := svc.ListProfiles(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.ListProfiles(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
