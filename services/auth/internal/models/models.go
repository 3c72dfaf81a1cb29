package models

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleDoctor  = "DOCTOR"
	RolePatient = "PATIENT"
)

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

// User is the identity record. Rows are never physically deleted; the
// Deleted flag gates login and every query must filter it explicitly.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	PhoneNumber  string `json:"phoneNumber"`

	EmailVerified   bool       `gorm:"not null;default:false" json:"emailVerified"`
	EmailVerifiedAt *time.Time `json:"-"`

	VerificationToken       string     `json:"-"`
	VerificationTokenExpiry *time.Time `json:"-"`

	PasswordResetToken       string     `json:"-"`
	PasswordResetTokenExpiry *time.Time `json:"-"`

	Deleted bool `gorm:"not null;default:false" json:"-"`

	// Normally exactly one role per user; the schema permits more.
	Roles []Role `gorm:"many2many:user_roles" json:"roles"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// RefreshToken is one row of the refresh token ledger. TokenHash holds the
// sha256 hex of the opaque token string, so a leaked ledger cannot be
// replayed.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
