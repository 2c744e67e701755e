package models

import (
	"time"

	"gorm.io/datatypes"
)

// Template is a reusable card preset; not linked to any board.
type Template struct {
	ID        string         `gorm:"size:64;primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	Title     string         `gorm:"not null;size:200" json:"title"`
	Notes     string         `gorm:"not null;default:''" json:"notes"`
	TagIDs    datatypes.JSON `gorm:"not null;default:'[]'" json:"tags"`
	Priority  Priority       `gorm:"not null;size:10;default:'medium'" json:"priority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
