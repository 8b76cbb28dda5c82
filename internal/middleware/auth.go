package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/config"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/types"
	"gorm.io/gorm"
)

// AuthUser validates the bearer token and loads the acting user into the
// request context. Every core operation downstream reads the owner from here.
func AuthUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Missing bearer token",
				Type:    "auth.token.missing",
			}
		}

		userID, err := services.VerifyToken(cfg, tokenString)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid token",
				Type:    "auth.token.invalid",
			}
		}

		user, err := services.GetUser(db, userID)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Unknown user",
				Type:    "auth.user.unknown",
			}
		}

		c.Locals("user", user)

		return c.Next()
	}
}

// extractBearerToken pulls the token from the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
