package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/httperr"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/models"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/transport"
)

// Sender performs the actual delivery over one channel. The record is
// stored either way; delivery failure marks it FAILED instead of SENT.
type Sender interface {
	Send(ctx context.Context, n *models.Notification) error
}

// LogSender is the default delivery backend: it writes the notification
// to the log. Used until a real mail or SMS provider is plugged in.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, n *models.Notification) error {
	logging.FromContext(ctx).Info("notification delivered",
		"channel", n.Channel, "recipient", recipientOf(n), "subject", n.Subject)
	return nil
}

func recipientOf(n *models.Notification) string {
	if n.Channel == models.ChannelSMS {
		return n.RecipientPhone
	}
	return n.RecipientEmail
}

type NotificationService struct {
	Repo   repo.GormRepo
	Sender Sender
	now    func() time.Time
}

func New(r repo.GormRepo, sender Sender) *NotificationService {
	if sender == nil {
		sender = LogSender{}
	}
	return &NotificationService{Repo: r, Sender: sender, now: time.Now}
}

func (s *NotificationService) SendEmail(ctx context.Context, req transport.SendEmailRequest) (*models.Notification, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.RecipientEmail) == "" {
		fields["recipientEmail"] = "recipient email is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return nil, &httperr.ValidationError{Fields: fields}
	}

	n := &models.Notification{
		UserID:         req.UserID,
		RecipientEmail: req.RecipientEmail,
		Subject:        req.Subject,
		Message:        req.Message,
		Type:           req.Type,
		Channel:        models.ChannelEmail,
		Status:         models.StatusPending,
	}
	return s.deliver(ctx, n)
}

func (s *NotificationService) SendSMS(ctx context.Context, req transport.SendSMSRequest) (*models.Notification, error) {
	fields := map[string]string{}
	if strings.TrimSpace(req.RecipientPhone) == "" {
		fields["recipientPhone"] = "recipient phone is required"
	}
	if strings.TrimSpace(req.Message) == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return nil, &httperr.ValidationError{Fields: fields}
	}

	n := &models.Notification{
		UserID:         req.UserID,
		RecipientPhone: req.RecipientPhone,
		Message:        req.Message,
		Type:           req.Type,
		Channel:        models.ChannelSMS,
		Status:         models.StatusPending,
	}
	return s.deliver(ctx, n)
}

// SendWelcome records the welcome message produced from a registration
// event.
func (s *NotificationService) SendWelcome(ctx context.Context, userID uint, email, firstName string) (*models.Notification, error) {
	name := firstName
	if name == "" {
		name = "there"
	}
	return s.SendEmail(ctx, transport.SendEmailRequest{
		UserID:         userID,
		RecipientEmail: email,
		Subject:        "Welcome to Smart Appointment Booking",
		Message:        fmt.Sprintf("Hi %s, your account is ready. You can now book appointments.", name),
		Type:           "WELCOME",
	})
}

// SendPasswordResetNotice tells the user a reset was requested. The
// reset link itself travels through the auth service's own channel.
func (s *NotificationService) SendPasswordResetNotice(ctx context.Context, userID uint, email string) (*models.Notification, error) {
	return s.SendEmail(ctx, transport.SendEmailRequest{
		UserID:         userID,
		RecipientEmail: email,
		Subject:        "Password reset requested",
		Message:        "A password reset was requested for your account. If this wasn't you, you can ignore this message.",
		Type:           "PASSWORD_RESET",
	})
}

func (s *NotificationService) deliver(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}

	if err := s.Sender.Send(ctx, n); err != nil {
		n.Status = models.StatusFailed
		logging.FromContext(ctx).Error("delivery failed", "notification_id", n.ID, "error", err)
	} else {
		now := s.now()
		n.Status = models.StatusSent
		n.SentAt = &now
	}

	if err := s.Repo.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("update notification: %w", err)
	}
	return n, nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.Repo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	return s.Repo.MarkRead(ctx, id)
}
