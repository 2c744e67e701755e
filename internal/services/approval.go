package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/gorm"
)

var ErrAlreadyApproved = errors.New("user already approved")

// GenerateApprovalToken signs (userID, action) so approve/reject links in
// the admin email cannot be forged or repurposed for the other action.
func GenerateApprovalToken(cfg *config.Config, userID, action string) string {
	mac := hmac.New(sha256.New, []byte(cfg.ApprovalSecret()))
	mac.Write([]byte(userID + ":" + action))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyApprovalToken checks an approval link token with a timing-safe compare.
func VerifyApprovalToken(cfg *config.Config, userID, action, token string) bool {
	expected := GenerateApprovalToken(cfg, userID, action)
	return hmac.Equal([]byte(token), []byte(expected))
}

// Approve flips the approved flag, lazily creates the user's board with
// the three default columns, and notifies the user.
func (s *AuthService) Approve(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if user.Approved {
		return &user, ErrAlreadyApproved
	}

	if err := s.db.Model(&user).Update("approved", true).Error; err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}
	user.Approved = true

	if _, err := s.CreateUserBoard(userID); err != nil {
		return nil, err
	}

	_ = s.email.SendApprovalNotificationEmail(user.Email, user.Name, true)
	return &user, nil
}

// Reject notifies the user and deletes the account with all dependent rows.
func (s *AuthService) Reject(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	_ = s.email.SendApprovalNotificationEmail(user.Email, user.Name, false)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.Where("user_id = ?", userID).First(&board).Error; err == nil {
			var cards []models.Card
			tx.Where("board_id = ?", board.ID).Find(&cards)
			for _, card := range cards {
				tx.Where("card_id = ?", card.ID).Delete(&models.Comment{})
				tx.Where("card_id = ?", card.ID).Delete(&models.CardTag{})
			}
			tx.Where("board_id = ?", board.ID).Delete(&models.Card{})
			tx.Where("board_id = ?", board.ID).Delete(&models.Column{})
			tx.Delete(&board)
		}
		tx.Where("user_id = ?", userID).Delete(&models.EmailVerificationToken{})
		tx.Where("user_id = ?", userID).Delete(&models.PasswordResetToken{})
		tx.Where("email = ?", user.Email).Delete(&models.MagicLinkToken{})
		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &user, nil
}

// CreateUserBoard creates the user's single board with the default
// To Do / In Progress / Completed columns. Idempotent: an existing board
// is returned untouched.
func (s *AuthService) CreateUserBoard(userID uuid.UUID) (*models.Board, error) {
	var existing models.Board
	if err := s.db.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	board := models.Board{
		ID:     uuid.New(),
		Name:   "My Board",
		UserID: userID,
	}

	defaults := []string{"To Do", "In Progress", "Completed"}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		for i, title := range defaults {
			col := models.Column{
				ID:       uuid.NewString(),
				Title:    title,
				Position: i,
				BoardID:  board.ID,
				CardIDs:  []byte("[]"),
			}
			if err := tx.Create(&col).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return &board, nil
}
