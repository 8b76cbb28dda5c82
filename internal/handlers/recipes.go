package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/storage"
	"github.com/pantryworks/recipedb/internal/utils"
	"gorm.io/gorm"
)

// RecipeHandler handles recipe routes
type RecipeHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

// ListRecipes handles GET /api/recipes?tags=1,2&ingredients=3
// @Summary List recipes
// @Description List the authenticated user's recipes, optionally filtered by tag/ingredient ids
// @Tags Recipes
// @Produce json
// @Param tags query string false "Comma-separated tag ids; keeps recipes with at least one"
// @Param ingredients query string false "Comma-separated ingredient ids; keeps recipes with at least one"
// @Success 200 {array} models.Recipe
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	tagIDs, err := parseIDFilter(c, "tags")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.filter")
	}
	ingredientIDs, err := parseIDFilter(c, "ingredients")
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.filter")
	}

	recipes, err := services.ListRecipes(h.DB, user.UserID, tagIDs, ingredientIDs)
	if err != nil {
		return serviceErrorResponse(c, err, "listRecipes")
	}

	return c.Status(fiber.StatusOK).JSON(recipes)
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get recipe detail
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	recipe, err := services.GetRecipe(h.DB, user.UserID, id)
	if err != nil {
		return serviceErrorResponse(c, err, "getRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(recipe)
}

// CreateRecipe handles POST /api/recipes
// @Summary Create a recipe
// @Description Create a recipe with nested tag/ingredient names; missing attribute rows are created
// @Tags Recipes
// @Accept json
// @Produce json
// @Param body body services.CreateRecipeInput true "Recipe"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	var input services.CreateRecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}

	recipe, err := services.CreateRecipe(h.DB, user.UserID, input)
	if err != nil {
		return serviceErrorResponse(c, err, "createRecipe")
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// PatchRecipe handles PATCH /api/recipes/:id
// @Summary Partially update a recipe
// @Description Absent fields keep their values; a present tags/ingredients key replaces the whole association set
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.UpdateRecipeInput true "Fields to change"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) PatchRecipe(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	var input services.UpdateRecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}

	recipe, err := services.UpdateRecipe(h.DB, user.UserID, id, input)
	if err != nil {
		return serviceErrorResponse(c, err, "updateRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(recipe)
}

// PutRecipe handles PUT /api/recipes/:id
// @Summary Fully update a recipe
// @Description All scalar fields are required; association semantics match PATCH
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param body body services.UpdateRecipeInput true "Recipe"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [put]
func (h *RecipeHandler) PutRecipe(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	var input services.UpdateRecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "recipes.validation.input")
	}

	// Full update: every scalar field must be supplied
	switch {
	case input.Title == nil:
		return utils.ValidationErrorResponse(c, "title", "title is required")
	case input.TimeMinutes == nil:
		return utils.ValidationErrorResponse(c, "time_minutes", "time_minutes is required")
	case input.Price == nil:
		return utils.ValidationErrorResponse(c, "price", "price is required")
	}
	if input.Description == nil {
		empty := ""
		input.Description = &empty
	}
	if input.Link == nil {
		empty := ""
		input.Link = &empty
	}

	recipe, err := services.UpdateRecipe(h.DB, user.UserID, id, input)
	if err != nil {
		return serviceErrorResponse(c, err, "updateRecipe")
	}

	return c.Status(fiber.StatusOK).JSON(recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Description Removes the recipe and its associations; shared tags/ingredients stay
// @Tags Recipes
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	if err := services.DeleteRecipe(h.DB, user.UserID, id); err != nil {
		return serviceErrorResponse(c, err, "deleteRecipe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage handles POST /api/recipes/:id/upload-image
// @Summary Attach an image to a recipe
// @Description Multipart upload under the "image" field; replaces any previous image
// @Tags Recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "recipes.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ValidationErrorResponse(c, "image", "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "recipes.validation.image")
	}

	recipe, err := services.AttachRecipeImage(h.DB, h.Store, user.UserID, id, data)
	if err != nil {
		return serviceErrorResponse(c, err, "attachRecipeImage")
	}

	return c.Status(fiber.StatusOK).JSON(recipe)
}
