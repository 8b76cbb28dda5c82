package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/models"
	"github.com/pantryworks/recipedb/internal/types"
	"github.com/pantryworks/recipedb/internal/utils"
)

// actingUser extracts the authenticated user from context (set by auth middleware)
func actingUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals("user").(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// paramID parses the :id path parameter
func paramID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return id, nil
}

// parseIDFilter extracts an id set from query parameters, supporting both
// repeated keys and comma-separated values. Returns nil when absent.
func parseIDFilter(c *fiber.Ctx, key string) ([]uint64, error) {
	idMap := make(map[uint64]struct{})

	args := c.Context().QueryArgs()
	var parseErr error
	args.VisitAll(func(k, value []byte) {
		if string(k) != key || parseErr != nil {
			return
		}
		for _, v := range strings.Split(string(value), ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				parseErr = fmt.Errorf("invalid %s filter value %q", key, v)
				return
			}
			idMap[id] = struct{}{}
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if len(idMap) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(idMap))
	for id := range idMap {
		ids = append(ids, id)
	}

	return ids, nil
}

// serviceErrorResponse maps service errors to the API error envelope
func serviceErrorResponse(c *fiber.Ctx, err error, operation string) error {
	if errors.Is(err, types.ErrNotFound) {
		return utils.NotFoundResponse(c, "Resource not found")
	}

	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		return utils.ValidationErrorResponse(c, validationErr.Field, validationErr.Message)
	}

	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, operation)
}
