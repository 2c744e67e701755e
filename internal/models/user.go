package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. EmailVerified and Approved both gate login:
// a fresh registration has neither flag set, and the board is only created
// once an admin approves the account.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash  string    `gorm:"not null" json:"-"`
	Name          string    `gorm:"not null;size:100" json:"name"`
	EmailVerified bool      `gorm:"not null;default:false" json:"email_verified"`
	Approved      bool      `gorm:"not null;default:false" json:"approved"`
	MFAEnabled    bool      `gorm:"not null;default:false" json:"-"`
	MFASecret     *string   `gorm:"size:255" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
