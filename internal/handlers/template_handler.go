package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/services"
)

type TemplateHandler struct {
	templates *services.TemplateService
}

func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

func (h *TemplateHandler) List(c *fiber.Ctx) error {
	views, err := h.templates.List()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(views)
}

func (h *TemplateHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTemplateRequest
	if !parseBody(c, &req) {
		return nil
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Title = strings.TrimSpace(req.Title)
	if req.Name == "" || req.Title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Name and title are required")
	}

	view, err := h.templates.Create(&req)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}
