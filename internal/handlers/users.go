package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/config"
	"github.com/pantryworks/recipedb/internal/services"
	"github.com/pantryworks/recipedb/internal/utils"
	"gorm.io/gorm"
)

// UserHandler handles registration, token issuance, and profile routes
type UserHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// Register handles POST /api/users
// @Summary Register a new user
// @Description Create an account with email, name, and password
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.RegisterUserInput true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.RegisterUser(h.DB, input)
	if err != nil {
		return serviceErrorResponse(c, err, "registerUser")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Token handles POST /api/users/token
// @Summary Obtain an API token
// @Description Exchange email and password for a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body object true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/token [post]
func (h *UserHandler) Token(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	user, err := services.AuthenticateUser(h.DB, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "users.authentication")
		}
		return serviceErrorResponse(c, err, "issueToken")
	}

	token, err := services.IssueToken(h.Cfg, user)
	if err != nil {
		return serviceErrorResponse(c, err, "issueToken")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": token})
}

// Me handles GET /api/users/me
// @Summary Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "users.authorization")
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateMe handles PATCH /api/users/me
// @Summary Update the authenticated user's profile
// @Description Partial update; a supplied password is re-hashed
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := actingUser(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "users.authorization")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "users.validation.input")
	}

	updated, err := services.UpdateUser(h.DB, user.UserID, input)
	if err != nil {
		return serviceErrorResponse(c, err, "updateUser")
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}
