// Package consumer reads user lifecycle events from Kafka and turns them
// into notification records.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/services/notification/internal/service"
)

const (
	typeUserRegistered         = "user.registered"
	typePasswordResetRequested = "user.password_reset_requested"
)

// userEvent mirrors the payload the auth service publishes.
type userEvent struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	Timestamp time.Time `json:"timestamp"`
}

type Consumer struct {
	reader *kafka.Reader
	svc    *service.NotificationService
}

// New returns nil when no brokers are configured.
func New(brokers []string, topic, groupID string, svc *service.NotificationService) *Consumer {
	if len(brokers) == 0 {
		return nil
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 10e6,
			MaxWait:  time.Second,
		}),
		svc: svc,
	}
}

// Run consumes until the context is cancelled. Malformed or unknown
// messages are logged and skipped; the offset always advances.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}
	log := logging.FromContext(ctx).With("component", "kafka_consumer")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		var event userEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skipping malformed event", "offset", msg.Offset, "error", err)
			continue
		}

		if err := c.handle(ctx, event); err != nil {
			log.Error("event handling failed", "type", event.Type, "email", event.Email, "error", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, event userEvent) error {
	switch event.Type {
	case typeUserRegistered:
		_, err := c.svc.SendWelcome(ctx, event.UserID, event.Email, event.FirstName)
		return err
	case typePasswordResetRequested:
		_, err := c.svc.SendPasswordResetNotice(ctx, event.UserID, event.Email)
		return err
	default:
		logging.FromContext(ctx).Debug("ignoring event", "type", event.Type)
		return nil
	}
}

func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.reader.Close()
}
