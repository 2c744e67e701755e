package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/models"
	"github.com/vanskyhawk/kanban/internal/services"
	"github.com/vanskyhawk/kanban/internal/session"
)

type BoardHandler struct {
	boards *services.BoardService
}

func NewBoardHandler(boards *services.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// callerBoard resolves the authenticated user's board. Ownership is
// re-checked on every request; the session carries identity only.
func callerBoard(c *fiber.Ctx, boards *services.BoardService) (*models.Board, bool) {
	userID, err := session.UserID(c)
	if err != nil {
		_ = errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	board, err := boards.GetBoardByUser(userID)
	if err != nil {
		_ = notFound(c)
		return nil, false
	}
	return board, true
}

func (h *BoardHandler) Get(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	snapshot, err := h.boards.Snapshot(board.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(snapshot)
}

func (h *BoardHandler) Update(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	var req dto.UpdateBoardRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.boards.UpdateColumns(board.ID, req.Columns); err != nil {
		if errors.Is(err, services.ErrColumnNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	snapshot, err := h.boards.Snapshot(board.ID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(snapshot)
}
