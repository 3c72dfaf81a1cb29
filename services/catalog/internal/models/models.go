package models

import "time"

// ServiceOffering is a bookable medical service in the catalog.
type ServiceOffering struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"not null" json:"name"`
	Description     string  `json:"description"`
	Category        string  `gorm:"index" json:"category"`
	DurationMinutes int     `gorm:"not null;default:30" json:"durationMinutes"`
	BasePrice       float64 `gorm:"not null" json:"basePrice"`
	Active          bool    `gorm:"not null;default:true" json:"active"`
	IconURL         string  `json:"iconUrl"`
	Notes           string  `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
