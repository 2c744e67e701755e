package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanskyhawk/kanban/internal/models"
)

func TestApprovalTokens(t *testing.T) {
	cfg := newTestConfig()

	token := GenerateApprovalToken(cfg, "user-1", "approve")
	assert.True(t, VerifyApprovalToken(cfg, "user-1", "approve", token))

	// A token for one action must not authorize the other.
	assert.False(t, VerifyApprovalToken(cfg, "user-1", "reject", token))
	assert.False(t, VerifyApprovalToken(cfg, "user-2", "approve", token))
	assert.False(t, VerifyApprovalToken(cfg, "user-1", "approve", token+"00"))
	assert.False(t, VerifyApprovalToken(cfg, "user-1", "approve", ""))
}

func TestApproveCreatesBoardWithDefaultColumns(t *testing.T) {
	auth, db := newAuthService(t)

	user, err := auth.Register("a@example.com", "Password1", "A")
	require.NoError(t, err)
	require.NoError(t, db.Model(user).Update("email_verified", true).Error)

	approved, err := auth.Approve(user.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	var board models.Board
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&board).Error)
	assert.Equal(t, "My Board", board.Name)

	var columns []models.Column
	require.NoError(t, db.Where("board_id = ?", board.ID).Order("position asc").Find(&columns).Error)
	require.Len(t, columns, 3)
	assert.Equal(t, "To Do", columns[0].Title)
	assert.Equal(t, "In Progress", columns[1].Title)
	assert.Equal(t, "Completed", columns[2].Title)
	for i, col := range columns {
		assert.Equal(t, i, col.Position)
		assert.JSONEq(t, "[]", string(col.CardIDs))
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	again, err := auth.Approve(user.ID)
	assert.ErrorIs(t, err, ErrAlreadyApproved)
	assert.Equal(t, user.ID, again.ID)

	// Still exactly one board.
	var boards int64
	db.Model(&models.Board{}).Where("user_id = ?", user.ID).Count(&boards)
	assert.EqualValues(t, 1, boards)
}

func TestRejectDeletesUserAndData(t *testing.T) {
	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	_, err := auth.Reject(user.ID)
	require.NoError(t, err)

	var users, boards, columns int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Board{}).Count(&boards)
	db.Model(&models.Column{}).Count(&columns)
	assert.Zero(t, users)
	assert.Zero(t, boards)
	assert.Zero(t, columns)
}
