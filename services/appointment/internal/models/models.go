package models

import "time"

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// transitions is the full status machine. COMPLETED and CANCELLED are
// terminal.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an appointment may move from one status
// to another.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PatientID       uint      `gorm:"index;not null" json:"patientId"`
	DoctorID        uint      `gorm:"index;not null" json:"doctorId"`
	ServiceID       uint      `json:"serviceId"`
	ScheduledAt     time.Time `gorm:"not null" json:"scheduledAt"`
	DurationMinutes int       `gorm:"not null;default:30" json:"durationMinutes"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	Status          Status    `gorm:"not null;default:SCHEDULED" json:"status"`

	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
