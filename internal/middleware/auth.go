package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/tapiocaria/internal/config"
	"github.com/example/tapiocaria/internal/models"
	"github.com/example/tapiocaria/internal/utils"
)

const (
	userContextKey = "currentUserID"
	roleContextKey = "currentUserRole"
)

// AuthMiddleware validates JWT tokens and loads the authenticated user ID
// into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := bearerUserID(c, cfg.JWTSecret)
		if err != nil {
			return err
		}

		c.Locals(userContextKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the session identity when a bearer token is present
// but lets anonymous requests through. Used on the public order submission
// endpoint so authenticated customers get their orders attached to their
// account.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") != "" {
			if userID, err := bearerUserID(c, cfg.JWTSecret); err == nil {
				c.Locals(userContextKey, userID)
			}
		}
		return c.Next()
	}
}

// RequireRole gates a route to users holding one of the given roles. The
// role is read from the user row, never from the token or the request, so a
// forged client-declared role has no effect.
func RequireRole(db *gorm.DB, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetCurrentUserID(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
			}
			return err
		}

		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "conta desativada")
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals(roleContextKey, user.Role)
				return c.Next()
			}
		}

		return fiber.NewError(fiber.StatusForbidden, "acesso restrito")
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}

// GetCurrentUserRole returns the role resolved by RequireRole, if any.
func GetCurrentUserRole(c *fiber.Ctx) (string, bool) {
	if role, ok := c.Locals(roleContextKey).(string); ok {
		return role, true
	}
	return "", false
}

func bearerUserID(c *fiber.Ctx, secret string) (uuid.UUID, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	userID, err := utils.ParseToken(secret, parts[1])
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	return userID, nil
}
