package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/transport"
)

type failingSender struct{}

func (failingSender) Send(context.Context, *models.Notification) error {
	return errors.New("smtp unreachable")
}

func newTestService(t *testing.T, sender Sender) *NotificationService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	rp := repo.GormRepo{DB: db}
	require.NoError(t, rp.Migrate(context.Background()))

	return New(rp, sender)
}

func TestSendEmail_Sent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	n, err := svc.SendEmail(context.Background(), transport.SendEmailRequest{
		UserID:         1,
		RecipientEmail: "alice@example.com",
		Subject:        "Appointment confirmed",
		Message:        "See you Tuesday at 10:00.",
		Type:           "APPOINTMENT_CONFIRMED",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ChannelEmail, n.Channel)
	assert.Equal(t, models.StatusSent, n.Status)
	assert.NotNil(t, n.SentAt)
	assert.False(t, n.Read)
}

func TestSendEmail_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	_, err := svc.SendEmail(context.Background(), transport.SendEmailRequest{})

	var verr *httperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "recipientEmail")
	assert.Contains(t, verr.Fields, "message")
}

func TestSend_DeliveryFailureIsRecorded(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, failingSender{})
	n, err := svc.SendSMS(context.Background(), transport.SendSMSRequest{
		UserID:         1,
		RecipientPhone: "+1555000111",
		Message:        "Reminder: appointment tomorrow.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, n.Status)
	assert.Nil(t, n.SentAt)

	// The failed attempt is still on the user's list.
	items, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSendWelcome(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	n, err := svc.SendWelcome(context.Background(), 7, "bob@example.com", "Bob")
	require.NoError(t, err)

	assert.Equal(t, "WELCOME", n.Type)
	assert.Contains(t, n.Message, "Bob")
	assert.Equal(t, uint(7), n.UserID)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.SendWelcome(ctx, 1, "a@example.com", "A")
	require.NoError(t, err)
	_, err = svc.SendPasswordResetNotice(ctx, 1, "a@example.com")
	require.NoError(t, err)

	unread, err := svc.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, svc.MarkRead(ctx, first.ID))

	unread, err = svc.CountUnread(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	assert.ErrorIs(t, svc.MarkRead(ctx, 999), httperr.ErrNotFound)
}
