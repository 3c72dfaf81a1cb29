package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/catalog/internal/transport"
)

func newTestService(t *testing.T) *CatalogService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	rp := repo.GormRepo{DB: db}
	require.NoError(t, rp.Migrate(context.Background()))

	// No ES in tests; search exercises the database fallback.
	return New(rp, nil, "")
}

func seed(t *testing.T, svc *CatalogService) {
	t.Helper()

	ctx := context.Background()
	for _, req := range []transport.CreateServiceRequest{
		{Name: "General Consultation", Category: "GENERAL", DurationMinutes: 30, BasePrice: 50},
		{Name: "Cardiology Consultation", Category: "CARDIOLOGY", DurationMinutes: 45, BasePrice: 120},
		{Name: "Dental Cleaning", Description: "routine cleaning", Category: "DENTAL", DurationMinutes: 60, BasePrice: 80},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
}

func TestCreate_DefaultsActive(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	created, err := svc.Create(context.Background(), transport.CreateServiceRequest{
		Name:      "X-Ray",
		BasePrice: 40,
	})
	require.NoError(t, err)

	assert.True(t, created.Active)
	assert.Equal(t, 30, created.DurationMinutes)
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Create(context.Background(), transport.CreateServiceRequest{BasePrice: -1})

	var verr *httperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "basePrice")
}

func TestListActive_ExcludesDeactivated(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	seed(t, svc)
	ctx := context.Background()

	off := false
	_, err := svc.Patch(ctx, 1, transport.PatchServiceRequest{Active: &off})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	for _, s := range active {
		assert.True(t, s.Active)
		assert.NotEqual(t, uint(1), s.ID)
	}
}

func TestSearch_DatabaseFallback(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	seed(t, svc)
	ctx := context.Background()

	res, err := svc.Search(ctx, "consultation", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = svc.Search(ctx, "CLEANING", 0, 20)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Dental Cleaning", res.Items[0].Name)

	// Deactivated offerings drop out of search results.
	off := false
	_, err = svc.Patch(ctx, res.Items[0].ID, transport.PatchServiceRequest{Active: &off})
	require.NoError(t, err)

	res, err = svc.Search(ctx, "cleaning", 0, 20)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestSearch_RequiresQuery(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Search(context.Background(), "  ", 0, 20)
	assert.ErrorIs(t, err, httperr.ErrValidation)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	seed(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 2))

	_, err := svc.Get(ctx, 2)
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	err = svc.Delete(ctx, 2)
	assert.ErrorIs(t, err, httperr.ErrNotFound)
}
