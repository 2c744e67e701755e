package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Board is a user's single kanban workspace.
type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100;default:'My Board'" json:"name"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// Column is an ordered bucket of cards. Card membership lives in CardIDs,
// a serialized JSON array of card IDs; cards themselves only reference the
// board. Position is dense and zero-based within a board.
type Column struct {
	ID        string         `gorm:"size:64;primaryKey" json:"id"`
	Title     string         `gorm:"not null;size:100" json:"title"`
	Position  int            `gorm:"not null" json:"position"`
	BoardID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"board_id"`
	CardIDs   datatypes.JSON `gorm:"not null;default:'[]'" json:"card_ids"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Board     Board          `gorm:"foreignKey:BoardID" json:"-"`
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the three known levels.
func ValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Card belongs to a board, not a column; which column shows it is derived
// from the column CardIDs lists.
type Card struct {
	ID              string     `gorm:"size:64;primaryKey" json:"id"`
	Title           string     `gorm:"not null;size:200" json:"title"`
	Notes           string     `gorm:"not null;default:''" json:"notes"`
	GeneratedPrompt *string    `json:"generated_prompt,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Priority        Priority   `gorm:"not null;size:10;default:'medium'" json:"priority"`
	BoardID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"board_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Board           Board      `gorm:"foreignKey:BoardID" json:"-"`
}

// Comment on a card, ordered by creation time.
type Comment struct {
	ID        string    `gorm:"size:64;primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	CardID    string    `gorm:"size:64;not null;index" json:"card_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Card      Card      `gorm:"foreignKey:CardID" json:"-"`
}
