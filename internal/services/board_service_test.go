package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/gorm"
)

// newBoardFixture registers an approved user and returns the services plus
// the user's board with its three default columns.
func newBoardFixture(t *testing.T) (*BoardService, *CardService, *gorm.DB, *models.Board, []models.Column) {
	t.Helper()

	auth, db := newAuthService(t)
	user := registerApproved(t, auth, db, "a@example.com")

	boards := NewBoardService(db)
	board, err := boards.GetBoardByUser(user.ID)
	require.NoError(t, err)

	var columns []models.Column
	require.NoError(t, db.Where("board_id = ?", board.ID).Order("position asc").Find(&columns).Error)
	require.Len(t, columns, 3)

	return boards, NewCardService(db), db, board, columns
}

func addCard(t *testing.T, cards *CardService, boardID uuid.UUID, columnID, title string) *models.Card {
	t.Helper()
	card, err := cards.CreateCard(boardID, &dto.CreateCardRequest{
		Title:    title,
		ColumnID: columnID,
	})
	require.NoError(t, err)
	return card
}

func TestSnapshotEmptyBoard(t *testing.T) {
	boards, _, _, board, _ := newBoardFixture(t)

	snap, err := boards.Snapshot(board.ID)
	require.NoError(t, err)

	require.Len(t, snap.Columns, 3)
	assert.Equal(t, "To Do", snap.Columns[0].Title)
	assert.Equal(t, []string{}, snap.Columns[0].CardIDs)
	assert.Empty(t, snap.Cards)
}

func TestCreateCardAppendsToColumn(t *testing.T) {
	boards, cards, _, board, columns := newBoardFixture(t)

	first := addCard(t, cards, board.ID, columns[0].ID, "First")
	second := addCard(t, cards, board.ID, columns[0].ID, "Second")

	snap, err := boards.Snapshot(board.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, snap.Columns[0].CardIDs)

	view, ok := snap.Cards[first.ID]
	require.True(t, ok)
	assert.Equal(t, "First", view.Title)
	assert.Equal(t, models.PriorityMedium, view.Priority)
	assert.Equal(t, []dto.CommentView{}, view.Comments)
	assert.Equal(t, []dto.TagView{}, view.Tags)
}

func TestUpdateColumnsReorderRoundTrip(t *testing.T) {
	boards, cards, _, board, columns := newBoardFixture(t)

	a := addCard(t, cards, board.ID, columns[0].ID, "A")
	b := addCard(t, cards, board.ID, columns[0].ID, "B")
	c := addCard(t, cards, board.ID, columns[0].ID, "C")

	// Reorder within the column and move B to the second column.
	payload := []dto.ColumnPayload{
		{ID: columns[0].ID, Title: columns[0].Title, CardIDs: []string{c.ID, a.ID}},
		{ID: columns[1].ID, Title: columns[1].Title, CardIDs: []string{b.ID}},
		{ID: columns[2].ID, Title: columns[2].Title, CardIDs: []string{}},
	}
	require.NoError(t, boards.UpdateColumns(board.ID, payload))

	snap, err := boards.Snapshot(board.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID}, snap.Columns[0].CardIDs)
	assert.Equal(t, []string{b.ID}, snap.Columns[1].CardIDs)
	assert.Equal(t, []string{}, snap.Columns[2].CardIDs)

	// Every card still appears exactly once across the board.
	seen := map[string]int{}
	for _, col := range snap.Columns {
		for _, id := range col.CardIDs {
			seen[id]++
		}
	}
	assert.Equal(t, map[string]int{a.ID: 1, b.ID: 1, c.ID: 1}, seen)
}

func TestUpdateColumnsReordersColumnPositions(t *testing.T) {
	boards, _, db, board, columns := newBoardFixture(t)

	// Submit the columns in reverse; positions follow payload order.
	payload := []dto.ColumnPayload{
		{ID: columns[2].ID, CardIDs: []string{}},
		{ID: columns[1].ID, CardIDs: []string{}},
		{ID: columns[0].ID, CardIDs: []string{}},
	}
	require.NoError(t, boards.UpdateColumns(board.ID, payload))

	var got []models.Column
	require.NoError(t, db.Where("board_id = ?", board.ID).Order("position asc").Find(&got).Error)
	assert.Equal(t, columns[2].ID, got[0].ID)
	assert.Equal(t, columns[1].ID, got[1].ID)
	assert.Equal(t, columns[0].ID, got[2].ID)
}

func TestUpdateColumnsRejectsForeignColumn(t *testing.T) {
	boards, _, db, board, columns := newBoardFixture(t)

	// A column on somebody else's board.
	otherBoard := models.Board{ID: uuid.New(), Name: "Other", UserID: uuid.New()}
	require.NoError(t, db.Create(&otherBoard).Error)
	foreign := models.Column{
		ID: uuid.NewString(), Title: "Foreign", BoardID: otherBoard.ID, CardIDs: []byte("[]"),
	}
	require.NoError(t, db.Create(&foreign).Error)

	payload := []dto.ColumnPayload{
		{ID: columns[0].ID, CardIDs: []string{}},
		{ID: foreign.ID, CardIDs: []string{"stolen"}},
	}
	err := boards.UpdateColumns(board.ID, payload)
	assert.ErrorIs(t, err, ErrColumnNotFound)

	// Nothing was written.
	var got models.Column
	require.NoError(t, db.First(&got, "id = ?", foreign.ID).Error)
	assert.JSONEq(t, "[]", string(got.CardIDs))
}

func TestCreateColumnAppendsAtEnd(t *testing.T) {
	boards, _, _, board, _ := newBoardFixture(t)

	col, err := boards.CreateColumn(board.ID, "Review")
	require.NoError(t, err)
	assert.Equal(t, 3, col.Position)
	assert.Equal(t, "Review", col.Title)

	snap, err := boards.Snapshot(board.ID)
	require.NoError(t, err)
	require.Len(t, snap.Columns, 4)
	assert.Equal(t, "Review", snap.Columns[3].Title)
}

func TestDeleteColumnCascades(t *testing.T) {
	boards, cards, db, board, columns := newBoardFixture(t)

	card := addCard(t, cards, board.ID, columns[0].ID, "Doomed")
	_, err := cards.CreateComment(board.ID, card.ID, "a comment")
	require.NoError(t, err)

	keep := addCard(t, cards, board.ID, columns[1].ID, "Keeper")

	require.NoError(t, boards.DeleteColumn(board.ID, columns[0].ID))

	var cardCount, commentCount int64
	db.Model(&models.Card{}).Count(&cardCount)
	db.Model(&models.Comment{}).Count(&commentCount)
	assert.EqualValues(t, 1, cardCount)
	assert.Zero(t, commentCount)

	snap, err := boards.Snapshot(board.ID)
	require.NoError(t, err)
	require.Len(t, snap.Columns, 2)
	_, ok := snap.Cards[keep.ID]
	assert.True(t, ok)
}

func TestDeleteColumnNotFound(t *testing.T) {
	boards, _, _, board, _ := newBoardFixture(t)

	err := boards.DeleteColumn(board.ID, "no-such-column")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestGetBoardByUserMissing(t *testing.T) {
	db := newTestDB(t)
	boards := NewBoardService(db)

	_, err := boards.GetBoardByUser(uuid.New())
	assert.ErrorIs(t, err, ErrBoardNotFound)
}
