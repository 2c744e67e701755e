package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/services"
	"github.com/vanskyhawk/kanban/internal/session"
)

type AuthHandler struct {
	auth *services.AuthService
	cfg  *config.Config
}

func NewAuthHandler(auth *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg}
}

const registerMessage = "Registration received. Please check your email to verify your address. An administrator will review your account."

// Register answers duplicates with the same 201 as fresh registrations so
// the endpoint cannot be used to probe for accounts.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if !parseBody(c, &req) {
		return nil
	}

	_, err := h.auth.Register(req.Email, req.Password, req.Name)
	if err != nil && !errors.Is(err, services.ErrEmailTaken) {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: registerMessage,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, mfaRequired, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, services.ErrEmailNotVerified):
			return errorJSON(c, fiber.StatusForbidden, "Please verify your email before logging in")
		case errors.Is(err, services.ErrNotApproved):
			return errorJSON(c, fiber.StatusForbidden, "Your account is pending admin approval")
		default:
			return internalError(c)
		}
	}

	if mfaRequired {
		return c.JSON(dto.MFAChallengeResponse{
			RequiresMFA: true,
			Message:     "Enter your authenticator code to complete login",
		})
	}

	if err := session.Issue(c, h.cfg, user); err != nil {
		return internalError(c)
	}

	return c.JSON(dto.SessionResponse{User: dto.UserResponse{
		ID: user.ID, Email: user.Email, Name: user.Name,
	}})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session.Clear(c, h.cfg)
	return c.JSON(dto.MessageResponse{Message: "Logged out"})
}

// Me reports the current identity from the cookie without requiring one;
// an anonymous caller gets {user: null} rather than 401.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	raw := c.Cookies(h.cfg.SessionCookie)
	if raw == "" {
		return c.JSON(fiber.Map{"user": nil})
	}

	claims, err := session.Parse(h.cfg, raw)
	if err != nil {
		return c.JSON(fiber.Map{"user": nil})
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return c.JSON(fiber.Map{"user": fiber.Map{
		"id": sub, "email": email, "name": name,
	}})
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if !parseBody(c, &req) {
		return nil
	}

	if _, err := h.auth.VerifyEmailToken(req.Token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid or expired verification link")
		}
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "Email verified. You can log in once an administrator approves your account."})
}

// ForgotPassword always answers success so the endpoint reveals nothing
// about which emails are registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.auth.RequestPasswordReset(req.Email); err != nil {
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "If that email is registered, a reset link has been sent."})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.auth.ResetPassword(req.Token, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return errorJSON(c, fiber.StatusBadRequest, "Invalid or expired reset link")
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(dto.MessageResponse{Message: "Password updated. You can now log in."})
}

func (h *AuthHandler) RequestMagicLink(c *fiber.Ctx) error {
	var req dto.MagicLinkRequest
	if !parseBody(c, &req) {
		return nil
	}

	if err := h.auth.RequestMagicLink(req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrEmailNotVerified):
			return errorJSON(c, fiber.StatusForbidden, "Please verify your email first")
		case errors.Is(err, services.ErrNotApproved):
			return errorJSON(c, fiber.StatusForbidden, "Your account is pending admin approval")
		default:
			return internalError(c)
		}
	}

	return c.JSON(dto.MessageResponse{Message: "If that email is registered, a login link has been sent."})
}

func (h *AuthHandler) VerifyMagicLink(c *fiber.Ctx) error {
	var req dto.VerifyMagicLinkRequest
	if !parseBody(c, &req) {
		return nil
	}

	user, err := h.auth.VerifyMagicLink(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			return errorJSON(c, fiber.StatusBadRequest, "Invalid or expired login link")
		case errors.Is(err, services.ErrEmailNotVerified):
			return errorJSON(c, fiber.StatusForbidden, "Please verify your email first")
		case errors.Is(err, services.ErrNotApproved):
			return errorJSON(c, fiber.StatusForbidden, "Your account is pending admin approval")
		default:
			return internalError(c)
		}
	}

	if err := session.Issue(c, h.cfg, user); err != nil {
		return internalError(c)
	}

	return c.JSON(dto.SessionResponse{User: dto.UserResponse{
		ID: user.ID, Email: user.Email, Name: user.Name,
	}})
}
