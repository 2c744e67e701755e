package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/gorm"
)

var ErrCardNotFound = errors.New("card not found")

type CardService struct {
	db *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{db: db}
}

// CreateCard inserts a card on the caller's board and appends its ID to the
// target column's ordering. Tag links are deduplicated.
func (s *CardService) CreateCard(boardID uuid.UUID, req *dto.CreateCardRequest) (*models.Card, error) {
	var col models.Column
	if err := s.db.Scopes(forBoard(boardID)).Where("id = ?", req.ColumnID).First(&col).Error; err != nil {
		return nil, ErrColumnNotFound
	}

	priority := models.Priority(req.Priority)
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	card := models.Card{
		ID:       uuid.NewString(),
		Title:    req.Title,
		Notes:    req.Notes,
		DueDate:  req.DueDate,
		Priority: priority,
		BoardID:  boardID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&card).Error; err != nil {
			return err
		}

		ids := append(decodeCardIDs(col.CardIDs), card.ID)
		if err := tx.Model(&models.Column{}).Where("id = ?", col.ID).
			Update("card_ids", encodeCardIDs(ids)).Error; err != nil {
			return err
		}

		return replaceTags(tx, card.ID, req.TagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &card, nil
}

// UpdateCard applies a partial patch. Absent fields are untouched; explicit
// nulls clear the nullable ones. A tagIds field replaces the card's tag set
// wholesale.
func (s *CardService) UpdateCard(boardID uuid.UUID, cardID string, req *dto.UpdateCardRequest) (*models.Card, error) {
	var card models.Card
	if err := s.db.Scopes(forBoard(boardID)).Where("id = ?", cardID).First(&card).Error; err != nil {
		return nil, ErrCardNotFound
	}

	updates := map[string]interface{}{}

	if req.Title.Present && !req.Title.Null {
		updates["title"] = req.Title.Value
	}
	if req.Notes.Present {
		if req.Notes.Null {
			updates["notes"] = ""
		} else {
			updates["notes"] = req.Notes.Value
		}
	}
	if req.GeneratedPrompt.Present {
		if req.GeneratedPrompt.Null {
			updates["generated_prompt"] = nil
		} else {
			updates["generated_prompt"] = req.GeneratedPrompt.Value
		}
	}
	if req.DueDate.Present {
		if req.DueDate.Null {
			updates["due_date"] = nil
		} else {
			updates["due_date"] = req.DueDate.Value
		}
	}
	if req.Priority.Present && !req.Priority.Null {
		if !models.ValidPriority(models.Priority(req.Priority.Value)) {
			return nil, fmt.Errorf("invalid priority: %s", req.Priority.Value)
		}
		updates["priority"] = req.Priority.Value
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&card).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.TagIDs.Present {
			tagIDs := req.TagIDs.Value
			if req.TagIDs.Null {
				tagIDs = nil
			}
			if err := replaceTags(tx, card.ID, tagIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	if err := s.db.First(&card, "id = ?", cardID).Error; err != nil {
		return nil, ErrCardNotFound
	}
	return &card, nil
}

// DeleteCard removes a card, its comments and tag links, and drops its ID
// from any column ordering that holds it.
func (s *CardService) DeleteCard(boardID uuid.UUID, cardID string) error {
	var card models.Card
	if err := s.db.Scopes(forBoard(boardID)).Where("id = ?", cardID).First(&card).Error; err != nil {
		return ErrCardNotFound
	}

	var columns []models.Column
	if err := s.db.Scopes(forBoard(boardID)).Find(&columns).Error; err != nil {
		return fmt.Errorf("failed to fetch columns: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, col := range columns {
			ids := decodeCardIDs(col.CardIDs)
			filtered := make([]string, 0, len(ids))
			removed := false
			for _, id := range ids {
				if id == cardID {
					removed = true
					continue
				}
				filtered = append(filtered, id)
			}
			if !removed {
				continue
			}
			if err := tx.Model(&models.Column{}).Where("id = ?", col.ID).
				Update("card_ids", encodeCardIDs(filtered)).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("card_id = ?", cardID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", cardID).Delete(&models.CardTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&card).Error
	})
}

// replaceTags rewrites the card's tag links to exactly the given set,
// dropping duplicates in the input.
func replaceTags(tx *gorm.DB, cardID string, tagIDs []string) error {
	if err := tx.Where("card_id = ?", cardID).Delete(&models.CardTag{}).Error; err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if tagID == "" {
			continue
		}
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		if err := tx.Create(&models.CardTag{CardID: cardID, TagID: tagID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetCard loads a card scoped to the board.
func (s *CardService) GetCard(boardID uuid.UUID, cardID string) (*models.Card, error) {
	var card models.Card
	if err := s.db.Scopes(forBoard(boardID)).Where("id = ?", cardID).First(&card).Error; err != nil {
		return nil, ErrCardNotFound
	}
	return &card, nil
}

// ListComments returns a card's comments oldest first.
func (s *CardService) ListComments(boardID uuid.UUID, cardID string) ([]models.Comment, error) {
	if _, err := s.GetCard(boardID, cardID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Where("card_id = ?", cardID).Order("created_at asc").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// CreateComment adds a comment to a card on the caller's board.
func (s *CardService) CreateComment(boardID uuid.UUID, cardID, content string) (*models.Comment, error) {
	if _, err := s.GetCard(boardID, cardID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:      uuid.NewString(),
		Content: content,
		CardID:  cardID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &comment, nil
}
