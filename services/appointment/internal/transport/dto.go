package transport

import "time"

type CreateAppointmentRequest struct {
	PatientID       uint      `json:"patientId"`
	DoctorID        uint      `json:"doctorId"`
	ServiceID       uint      `json:"serviceId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Reason          string    `json:"reason"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduledAt"`
	Notes       *string    `json:"notes"`
	Status      *string    `json:"status"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}
