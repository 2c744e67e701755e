package dto

import (
	"time"

	"github.com/vanskyhawk/kanban/internal/models"
)

// ColumnPayload is one column's ordering as submitted by the client on a
// board overwrite; position is implied by payload index.
type ColumnPayload struct {
	ID      string   `json:"id" validate:"required,max=64"`
	Title   string   `json:"title"`
	CardIDs []string `json:"cardIds"`
}

type UpdateBoardRequest struct {
	Columns []ColumnPayload `json:"columns" validate:"required,dive"`
}

type ColumnView struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	CardIDs []string `json:"cardIds"`
}

type CommentView struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CardID    string    `json:"cardId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TagView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CardView struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Notes           string          `json:"notes"`
	GeneratedPrompt *string         `json:"generatedPrompt,omitempty"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Priority        models.Priority `json:"priority"`
	Comments        []CommentView   `json:"comments"`
	Tags            []TagView       `json:"tags"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// BoardResponse is the full board snapshot: ordered columns plus all cards
// keyed by ID with comments and tags embedded.
type BoardResponse struct {
	Columns []ColumnView        `json:"columns"`
	Cards   map[string]CardView `json:"cards"`
}

type CreateCardRequest struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Notes    string     `json:"notes" validate:"max=10000"`
	ColumnID string     `json:"columnId" validate:"required,max=64"`
	DueDate  *time.Time `json:"dueDate"`
	Priority string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	TagIDs   []string   `json:"tagIds"`
}

// UpdateCardRequest carries partial-patch fields; see Optional.
type UpdateCardRequest struct {
	Title           Optional[string]    `json:"title"`
	Notes           Optional[string]    `json:"notes"`
	GeneratedPrompt Optional[string]    `json:"generatedPrompt"`
	DueDate         Optional[time.Time] `json:"dueDate"`
	Priority        Optional[string]    `json:"priority"`
	TagIDs          Optional[[]string]  `json:"tagIds"`
}

type CreateColumnRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type CreateTemplateRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Title    string   `json:"title" validate:"required,max=200"`
	Notes    string   `json:"notes" validate:"max=10000"`
	Tags     []string `json:"tags"`
	Priority string   `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type TemplateView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Notes     string          `json:"notes"`
	Tags      []string        `json:"tags"`
	Priority  models.Priority `json:"priority"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type GeneratePromptRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Notes string `json:"notes" validate:"max=10000"`
}

type GeneratePromptResponse struct {
	Prompt string `json:"prompt"`
}
