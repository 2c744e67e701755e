package handlers

import (
	"errors"
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/services"
)

// ApprovalHandler serves the admin approve/reject links from the
// notification email. Responses are small HTML pages since the admin opens
// them straight from a mail client.
type ApprovalHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewApprovalHandler(auth *services.AuthService, cfg *config.Config) *ApprovalHandler {
	return &ApprovalHandler{auth: auth, cfg: cfg}
}

func approvalPage(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto; text-align: center;">
  <h2>%s</h2>
  <p>%s</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), html.EscapeString(body))
}

func (h *ApprovalHandler) htmlResponse(c *fiber.Ctx, status int, title, body string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).SendString(approvalPage(title, body))
}

func (h *ApprovalHandler) Approve(c *fiber.Ctx) error {
	userIDParam := c.Query("userId")
	action := c.Query("action")
	token := c.Query("token")

	if userIDParam == "" || token == "" || (action != "approve" && action != "reject") {
		return h.htmlResponse(c, fiber.StatusBadRequest, "Invalid request", "This link is not valid.")
	}

	if !services.VerifyApprovalToken(h.cfg, userIDParam, action, token) {
		return h.htmlResponse(c, fiber.StatusForbidden, "Invalid link", "This link is invalid or has been tampered with.")
	}

	userID, err := uuid.Parse(userIDParam)
	if err != nil {
		return h.htmlResponse(c, fiber.StatusBadRequest, "Invalid request", "This link is not valid.")
	}

	if action == "approve" {
		user, err := h.auth.Approve(userID)
		if err != nil {
			if errors.Is(err, services.ErrAlreadyApproved) {
				return h.htmlResponse(c, fiber.StatusOK, "Already approved",
					fmt.Sprintf("%s has already been approved.", user.Email))
			}
			if errors.Is(err, services.ErrUserNotFound) {
				return h.htmlResponse(c, fiber.StatusNotFound, "User not found", "This account no longer exists.")
			}
			return h.htmlResponse(c, fiber.StatusInternalServerError, "Error", "Something went wrong. Please try again.")
		}
		return h.htmlResponse(c, fiber.StatusOK, "User approved",
			fmt.Sprintf("%s can now log in.", user.Email))
	}

	user, err := h.auth.Reject(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return h.htmlResponse(c, fiber.StatusNotFound, "User not found", "This account no longer exists.")
		}
		return h.htmlResponse(c, fiber.StatusInternalServerError, "Error", "Something went wrong. Please try again.")
	}
	return h.htmlResponse(c, fiber.StatusOK, "User rejected",
		fmt.Sprintf("%s has been rejected and removed.", user.Email))
}
