package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/services"
)

type TagHandler struct {
	tags *services.TagService
}

func NewTagHandler(tags *services.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.tags.List()
	if err != nil {
		return internalError(c)
	}

	views := make([]dto.TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, dto.TagView{ID: t.ID, Name: t.Name, Color: t.Color})
	}
	return c.JSON(views)
}

func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if !parseBody(c, &req) {
		return nil
	}

	tag, err := h.tags.Create(req.Name, req.Color)
	if err != nil {
		if errors.Is(err, services.ErrTagExists) {
			return errorJSON(c, fiber.StatusBadRequest, "A tag with that name already exists")
		}
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TagView{
		ID: tag.ID, Name: tag.Name, Color: tag.Color,
	})
}
