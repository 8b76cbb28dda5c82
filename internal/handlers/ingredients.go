package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/utils"
	"gorm.io/gorm"
)

// IngredientHandler handles ingredient routes, mirroring TagHandler
type IngredientHandler struct {
	DB *gorm.DB
}

// ListIngredients handles GET /api/ingredients
// @Summary List ingredients
// @Tags Ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /ingredients [get]
func (h *IngredientHandler) ListIngredients(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "ingredients.authorization")
	}

	ingredients, err := services.ListIngredients(h.DB, user.UserID)
	if err != nil {
		return serviceErrorResponse(c, err, "listIngredients")
	}

	return c.Status(fiber.StatusOK).JSON(ingredients)
}

// UpdateIngredient handles PATCH /api/ingredients/:id
// @Summary Rename an ingredient
// @Tags Ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param body body object true "New name"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /ingredients/{id} [patch]
func (h *IngredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "ingredients.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "ingredients.validation.input")
	}

	ingredient, err := services.UpdateIngredient(h.DB, user.UserID, id, body.Name)
	if err != nil {
		return serviceErrorResponse(c, err, "updateIngredient")
	}

	return c.Status(fiber.StatusOK).JSON(ingredient)
}

// DeleteIngredient handles DELETE /api/ingredients/:id
// @Summary Delete an ingredient
// @Tags Ingredients
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "ingredients.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	if err := services.DeleteIngredient(h.DB, user.UserID, id); err != nil {
		return serviceErrorResponse(c, err, "deleteIngredient")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
