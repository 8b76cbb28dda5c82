package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/config"
	"github.com/pantryworks/recipedb/internal/middleware"
	"github.com/pantryworks/recipedb/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the liveness endpoint
type HealthHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// HealthCheck handles GET /api/health-check
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health-check [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	result.Version = middleware.RequestedVersion(c)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(result)
}
