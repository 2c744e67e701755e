package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/services"
)

type PromptHandler struct {
	prompts *services.PromptService
}

func NewPromptHandler(prompts *services.PromptService) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

func (h *PromptHandler) Generate(c *fiber.Ctx) error {
	var req dto.GeneratePromptRequest
	if !parseBody(c, &req) {
		return nil
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Title is required")
	}

	prompt, err := h.prompts.Generate(c.UserContext(), title, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrAINotConfigured) {
			return errorJSON(c, fiber.StatusInternalServerError,
				"OpenAI API key not configured. Please set OPENAI_API_KEY environment variable.")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to generate prompt")
	}

	return c.JSON(dto.GeneratePromptResponse{Prompt: prompt})
}
