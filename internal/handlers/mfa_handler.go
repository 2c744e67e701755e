package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/services"
	"github.com/vanskyhawk/kanban/internal/session"
)

type MFAHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewMFAHandler(auth *services.AuthService, cfg *config.Config) *MFAHandler {
	return &MFAHandler{auth: auth, cfg: cfg}
}

// Setup issues a fresh secret for the authenticated user. Nothing is
// persisted until Enable confirms a valid code.
func (h *MFAHandler) Setup(c *fiber.Ctx) error {
	_, email, _, ok := session.Identity(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	secret, otpauthURL, qrDataURL, err := h.auth.GenerateMFASecret(email)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(dto.MFASetupResponse{
		Secret:        secret,
		OTPAuthURL:    otpauthURL,
		QRCodeDataURL: qrDataURL,
	})
}

func (h *MFAHandler) Enable(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.MFAEnableRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.auth.EnableMFA(userID, req.Secret, req.Code); err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid verification code")
		}
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Two-factor authentication enabled"})
}

func (h *MFAHandler) Disable(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.MFADisableRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.auth.DisableMFA(userID, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrMFANotEnabled):
			return errorJSON(c, fiber.StatusBadRequest, "Two-factor authentication is not enabled")
		case errors.Is(err, services.ErrInvalidCode):
			return errorJSON(c, fiber.StatusBadRequest, "Invalid verification code")
		default:
			return internalError(c)
		}
	}

	return c.JSON(dto.MessageResponse{Message: "Two-factor authentication disabled"})
}

func (h *MFAHandler) Status(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	enabled, err := h.auth.MFAStatus(userID)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(dto.MFAStatusResponse{Enabled: enabled})
}

// Verify completes a login challenge with a TOTP code and issues the
// session cookie.
func (h *MFAHandler) Verify(c *fiber.Ctx) error {
	var req dto.MFAVerifyRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, err := h.auth.VerifyMFALogin(req.Email, req.Code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid verification code")
		}
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := session.Issue(c, h.cfg, user); err != nil {
		return internalError(c)
	}

	return c.JSON(dto.SessionResponse{User: dto.UserResponse{
		ID: user.ID, Email: user.Email, Name: user.Name,
	}})
}
