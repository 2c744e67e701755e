package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/models"
	"github.com/vanskyhawk/kanban/internal/services"
)

type CardHandler struct {
	boards *services.BoardService
	cards  *services.CardService
}

func NewCardHandler(boards *services.BoardService, cards *services.CardService) *CardHandler {
	return &CardHandler{boards: boards, cards: cards}
}

func cardView(card *models.Card) fiber.Map {
	return fiber.Map{
		"id":              card.ID,
		"title":           card.Title,
		"notes":           card.Notes,
		"generatedPrompt": card.GeneratedPrompt,
		"dueDate":         card.DueDate,
		"priority":        card.Priority,
		"createdAt":       card.CreatedAt,
		"updatedAt":       card.UpdatedAt,
	}
}

func (h *CardHandler) Create(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	var req dto.CreateCardRequest
	if !parseBody(c, &req) {
		return nil
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Title is required")
	}

	card, err := h.cards.CreateCard(board.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrColumnNotFound) {
			return notFound(c)
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(cardView(card))
}

func (h *CardHandler) Update(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	var req dto.UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title.Present && !req.Title.Null {
		req.Title.Value = strings.TrimSpace(req.Title.Value)
		if req.Title.Value == "" || len(req.Title.Value) > 200 {
			return errorJSON(c, fiber.StatusBadRequest, "Title must be between 1 and 200 characters")
		}
	}
	if req.Notes.Present && !req.Notes.Null && len(req.Notes.Value) > 10000 {
		return errorJSON(c, fiber.StatusBadRequest, "Notes must be 10000 characters or less")
	}

	card, err := h.cards.UpdateCard(board.ID, c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return notFound(c)
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(cardView(card))
}

func (h *CardHandler) Delete(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	if err := h.cards.DeleteCard(board.ID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Card deleted"})
}

func (h *CardHandler) ListComments(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	comments, err := h.cards.ListComments(board.ID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	views := make([]dto.CommentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, dto.CommentView{
			ID:        cm.ID,
			Content:   cm.Content,
			CardID:    cm.CardID,
			CreatedAt: cm.CreatedAt,
			UpdatedAt: cm.UpdatedAt,
		})
	}
	return c.JSON(views)
}

func (h *CardHandler) CreateComment(c *fiber.Ctx) error {
	board, ok := callerBoard(c, h.boards)
	if !ok {
		return nil
	}

	var req dto.CreateCommentRequest
	if !parseBody(c, &req) {
		return nil
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Content is required")
	}

	comment, err := h.cards.CreateComment(board.ID, c.Params("id"), content)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return notFound(c)
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CommentView{
		ID:        comment.ID,
		Content:   comment.Content,
		CardID:    comment.CardID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	})
}
