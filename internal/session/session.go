// Package session implements cookie-carried sessions: the server stays
// stateless and the client holds a signed token with the identity inside.
// The external contract is cookie in, identity out.
package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/models"
)

var ErrNoSession = errors.New("no valid session")

// Issue signs a session token for the user and sets it as an HttpOnly cookie.
func Issue(c *fiber.Ctx, cfg *config.Config, user *models.User) error {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.Name,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(cfg.SessionExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     cfg.SessionCookie,
		Value:    signed,
		Expires:  time.Now().Add(cfg.SessionExpiry),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return nil
}

// Clear expires the session cookie.
func Clear(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}
	return claims, nil
}

// UserID extracts the authenticated user's ID from the verified session
// token placed in context by the session middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrNoSession
	}
	return uuid.Parse(sub)
}

// Identity returns the full identity carried by the session, or ok=false
// when the request has no valid session.
func Identity(c *fiber.Ctx) (id uuid.UUID, email, name string, ok bool) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return uuid.Nil, "", "", false
	}
	sub, _ := claims["sub"].(string)
	email, _ = claims["email"].(string)
	name, _ = claims["name"].(string)
	id, err = uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", "", false
	}
	return id, email, name, true
}

// Parse verifies a raw session token outside the middleware path. Used by
// endpoints that accept a session but must not fail hard without one.
func Parse(cfg *config.Config, raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}
	return claims, nil
}
