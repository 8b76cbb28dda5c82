package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/utils"
	"gorm.io/gorm"
)

// TagHandler handles tag routes. Tags have no create endpoint; rows appear
// only through nested recipe payloads.
type TagHandler struct {
	DB *gorm.DB
}

// ListTags handles GET /api/tags
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tags [get]
func (h *TagHandler) ListTags(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "tags.authorization")
	}

	tags, err := services.ListTags(h.DB, user.UserID)
	if err != nil {
		return serviceErrorResponse(c, err, "listTags")
	}

	return c.Status(fiber.StatusOK).JSON(tags)
}

// UpdateTag handles PATCH /api/tags/:id
// @Summary Rename a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param body body object true "New name"
// @Success 200 {object} models.Tag
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tags/{id} [patch]
func (h *TagHandler) UpdateTag(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "tags.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "tags.validation.input")
	}

	tag, err := services.UpdateTag(h.DB, user.UserID, id, body.Name)
	if err != nil {
		return serviceErrorResponse(c, err, "updateTag")
	}

	return c.Status(fiber.StatusOK).JSON(tag)
}

// DeleteTag handles DELETE /api/tags/:id
// @Summary Delete a tag
// @Tags Tags
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "tags.authorization")
	}

	id, err := paramID(c)
	if err != nil {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	if err := services.DeleteTag(h.DB, user.UserID, id); err != nil {
		return serviceErrorResponse(c, err, "deleteTag")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
