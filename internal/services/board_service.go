package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrColumnNotFound = errors.New("column not found")
)

type BoardService struct {
	db *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

func decodeCardIDs(raw datatypes.JSON) []string {
	var ids []string
	if len(raw) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return []string{}
	}
	return ids
}

func encodeCardIDs(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return b
}

// forBoard scopes a query to one board. Every card, column and comment
// lookup goes through it so cross-user IDs surface as not-found.
func forBoard(boardID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("board_id = ?", boardID)
	}
}

// GetBoardByUser loads the caller's single board.
func (s *BoardService) GetBoardByUser(userID uuid.UUID) (*models.Board, error) {
	var board models.Board
	if err := s.db.Where("user_id = ?", userID).First(&board).Error; err != nil {
		return nil, ErrBoardNotFound
	}
	return &board, nil
}

// Snapshot assembles the full board view: columns ordered by position with
// decoded card-ID lists, and every card on the board keyed by ID with its
// comments (oldest first) and tags embedded.
func (s *BoardService) Snapshot(boardID uuid.UUID) (*dto.BoardResponse, error) {
	var columns []models.Column
	if err := s.db.Scopes(forBoard(boardID)).Order("position asc").Find(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch columns: %w", err)
	}

	var cards []models.Card
	if err := s.db.Scopes(forBoard(boardID)).Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cards: %w", err)
	}

	cardIDs := make([]string, 0, len(cards))
	for _, card := range cards {
		cardIDs = append(cardIDs, card.ID)
	}

	commentsByCard := make(map[string][]dto.CommentView)
	tagsByCard := make(map[string][]dto.TagView)

	if len(cardIDs) > 0 {
		var comments []models.Comment
		if err := s.db.Where("card_id IN ?", cardIDs).Order("created_at asc").Find(&comments).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch comments: %w", err)
		}
		for _, cm := range comments {
			commentsByCard[cm.CardID] = append(commentsByCard[cm.CardID], dto.CommentView{
				ID:        cm.ID,
				Content:   cm.Content,
				CardID:    cm.CardID,
				CreatedAt: cm.CreatedAt,
				UpdatedAt: cm.UpdatedAt,
			})
		}

		var links []models.CardTag
		if err := s.db.Where("card_id IN ?", cardIDs).Find(&links).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch card tags: %w", err)
		}
		if len(links) > 0 {
			tagIDSet := make(map[string]struct{})
			for _, l := range links {
				tagIDSet[l.TagID] = struct{}{}
			}
			ids := make([]string, 0, len(tagIDSet))
			for id := range tagIDSet {
				ids = append(ids, id)
			}
			var tags []models.Tag
			if err := s.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
				return nil, fmt.Errorf("failed to fetch tags: %w", err)
			}
			tagByID := make(map[string]models.Tag, len(tags))
			for _, t := range tags {
				tagByID[t.ID] = t
			}
			for _, l := range links {
				if t, ok := tagByID[l.TagID]; ok {
					tagsByCard[l.CardID] = append(tagsByCard[l.CardID], dto.TagView{
						ID: t.ID, Name: t.Name, Color: t.Color,
					})
				}
			}
		}
	}

	resp := &dto.BoardResponse{
		Columns: make([]dto.ColumnView, 0, len(columns)),
		Cards:   make(map[string]dto.CardView, len(cards)),
	}

	for _, col := range columns {
		resp.Columns = append(resp.Columns, dto.ColumnView{
			ID:      col.ID,
			Title:   col.Title,
			CardIDs: decodeCardIDs(col.CardIDs),
		})
	}

	for _, card := range cards {
		comments := commentsByCard[card.ID]
		if comments == nil {
			comments = []dto.CommentView{}
		}
		tags := tagsByCard[card.ID]
		if tags == nil {
			tags = []dto.TagView{}
		}
		resp.Cards[card.ID] = dto.CardView{
			ID:              card.ID,
			Title:           card.Title,
			Notes:           card.Notes,
			GeneratedPrompt: card.GeneratedPrompt,
			DueDate:         card.DueDate,
			Priority:        card.Priority,
			Comments:        comments,
			Tags:            tags,
			CreatedAt:       card.CreatedAt,
			UpdatedAt:       card.UpdatedAt,
		}
	}

	return resp, nil
}

// UpdateColumns overwrites the card orderings of the caller's board in one
// batch: every submitted column gets its new card-ID list and a dense
// position equal to its payload index. Columns not belonging to the board
// are rejected before anything is written; last write wins otherwise.
func (s *BoardService) UpdateColumns(boardID uuid.UUID, payload []dto.ColumnPayload) error {
	var owned []models.Column
	if err := s.db.Scopes(forBoard(boardID)).Find(&owned).Error; err != nil {
		return fmt.Errorf("failed to fetch columns: %w", err)
	}

	ownedIDs := make(map[string]struct{}, len(owned))
	for _, col := range owned {
		ownedIDs[col.ID] = struct{}{}
	}
	for _, col := range payload {
		if _, ok := ownedIDs[col.ID]; !ok {
			return ErrColumnNotFound
		}
	}

	for i, col := range payload {
		err := s.db.Model(&models.Column{}).Where("id = ?", col.ID).
			Updates(map[string]interface{}{
				"card_ids": encodeCardIDs(col.CardIDs),
				"position": i,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update column %s: %w", col.ID, err)
		}
	}
	return nil
}

// CreateColumn appends an empty column at the next position.
func (s *BoardService) CreateColumn(boardID uuid.UUID, title string) (*models.Column, error) {
	var count int64
	if err := s.db.Model(&models.Column{}).Scopes(forBoard(boardID)).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count columns: %w", err)
	}

	col := models.Column{
		ID:       uuid.NewString(),
		Title:    title,
		Position: int(count),
		BoardID:  boardID,
		CardIDs:  []byte("[]"),
	}
	if err := s.db.Create(&col).Error; err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return &col, nil
}

// DeleteColumn removes a column and cascades to its member cards, their
// comments and their tag links.
func (s *BoardService) DeleteColumn(boardID uuid.UUID, columnID string) error {
	var col models.Column
	if err := s.db.Scopes(forBoard(boardID)).Where("id = ?", columnID).First(&col).Error; err != nil {
		return ErrColumnNotFound
	}

	cardIDs := decodeCardIDs(col.CardIDs)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if len(cardIDs) > 0 {
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.CardTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ? AND board_id = ?", cardIDs, boardID).Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&col).Error
	})
}
