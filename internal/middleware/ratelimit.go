package middleware

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
	"github.com/vanskyhawk/kanban/internal/ratelimit"
	"github.com/vanskyhawk/kanban/internal/session"
)

// ClientIP resolves the caller's address, preferring proxy headers so
// limits apply per client rather than per load balancer.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if rip := c.Get("X-Real-IP"); rip != "" {
		return rip
	}
	return c.IP()
}

func tooManyRequests(c *fiber.Ctx, retryAfter time.Duration) error {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Set("Retry-After", strconv.Itoa(seconds))
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Too many requests. Please try again later.",
	})
}

// RateLimitByIP applies the named limit keyed on the client address.
func RateLimitByIP(limiter *ratelimit.Limiter, limitType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, retryAfter := limiter.Allow(limitType, ClientIP(c))
		if !allowed {
			return tooManyRequests(c, retryAfter)
		}
		return c.Next()
	}
}

// RateLimitByUser applies the named limit keyed on the authenticated user.
// Must run after SessionProtected.
func RateLimitByUser(limiter *ratelimit.Limiter, limitType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := session.UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized",
			})
		}
		allowed, retryAfter := limiter.Allow(limitType, userID.String())
		if !allowed {
			return tooManyRequests(c, retryAfter)
		}
		return c.Next()
	}
}
