package models

import "time"

type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
)

type DeliveryStatus string

const (
	StatusPending DeliveryStatus = "PENDING"
	StatusSent    DeliveryStatus = "SENT"
	StatusFailed  DeliveryStatus = "FAILED"
)

type Notification struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"index" json:"userId"`
	RecipientEmail string         `json:"recipientEmail,omitempty"`
	RecipientPhone string         `json:"recipientPhone,omitempty"`
	Subject        string         `json:"subject"`
	Message        string         `gorm:"not null" json:"message"`
	Type           string         `json:"type"`
	Channel        Channel        `gorm:"not null" json:"channel"`
	Read           bool           `gorm:"not null;default:false" json:"read"`
	Status         DeliveryStatus `gorm:"not null;default:PENDING" json:"status"`
	SentAt         *time.Time     `json:"sentAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
