package models

import "time"

// Profile is the user service's copy of an identity, created by the auth
// service's registration propagation or directly by an admin. Soft-deleted,
// never physically removed.
type Profile struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AuthUserID  uint   `gorm:"index" json:"authUserId"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName   string `gorm:"not null" json:"firstName"`
	LastName    string `gorm:"not null" json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `gorm:"not null" json:"role"`
	Deleted     bool   `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DoctorProfile struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	ProfileID          uint    `gorm:"uniqueIndex;not null" json:"profileId"`
	Profile            Profile `json:"-"`
	Specialization     string  `gorm:"not null" json:"specialization"`
	LicenseNumber      string  `json:"licenseNumber"`
	ExperienceYears    int     `json:"experienceYears"`
	Qualification      string  `json:"qualification"`
	Bio                string  `json:"bio"`
	ConsultationFee    float64 `json:"consultationFee"`
	AvailabilityStatus string  `gorm:"default:AVAILABLE" json:"availabilityStatus"`
	Verified           bool    `gorm:"not null;default:false" json:"verified"`
	Deleted            bool    `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
