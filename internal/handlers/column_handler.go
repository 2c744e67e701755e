package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/services"
)

type ColumnHandler struct {
	boards *services.BoardService
}

func NewColumnHandler(boards *services.BoardService) *ColumnHandler {
	return &ColumnHandler{boards: boards}
}

func (h *ColumnHandler) Create(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	var req dto.CreateColumnRequest
	if !parseBody(c, &req) {
		return nil
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Title is required")
	}

	col, err := h.boards.CreateColumn(board.ID, title)
	if err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ColumnView{
		ID:      col.ID,
		Title:   col.Title,
		CardIDs: []string{},
	})
}

func (h *ColumnHandler) Delete(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	if err := h.boards.DeleteColumn(board.ID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrColumnNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Column deleted"})
}
