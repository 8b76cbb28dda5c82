package services

import (
	"errors"
	"strings"

	"github.com/pantryworks/recipedb/internal/models"
	"github.com/pantryworks/recipedb/internal/types"
	"gorm.io/gorm"
)

// CreateRecipeInput represents the payload for creating a recipe.
// The owner is never part of the payload; it is forced to the acting user.
type CreateRecipeInput struct {
	Title       string           `json:"title"`
	TimeMinutes types.FlexUint64 `json:"time_minutes"`
	Price       types.Price      `json:"price"`
	Description string           `json:"description"`
	Link        string           `json:"link"`
	Tags        []AttributeInput `json:"tags"`
	Ingredients []AttributeInput `json:"ingredients"`
}

// UpdateRecipeInput represents a partial recipe update. Nil fields are left
// untouched. A non-nil Tags or Ingredients slice, even an empty one, replaces
// the association set entirely.
type UpdateRecipeInput struct {
	Title       *string           `json:"title"`
	TimeMinutes *types.FlexUint64 `json:"time_minutes"`
	Price       *types.Price      `json:"price"`
	Description *string           `json:"description"`
	Link        *string           `json:"link"`
	Tags        *[]AttributeInput `json:"tags"`
	Ingredients *[]AttributeInput `json:"ingredients"`
}

// CreateRecipe validates and persists a recipe together with its nested
// tag/ingredient resolution in a single transaction.
func CreateRecipe(db *gorm.DB, userID uint64, input CreateRecipeInput) (*models.Recipe, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, types.NewValidationError("title", "title is required")
	}
	if input.Price.Negative() {
		return nil, types.NewValidationError("price", "price must not be negative")
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes.Uint64(),
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		tags, err := ResolveTags(tx, userID, input.Tags)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(&recipe).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}

		ingredients, err := ResolveIngredients(tx, userID, input.Ingredients)
		if err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Model(&recipe).Association("Ingredients").Append(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(db, userID, recipe.RecipeID)
}

// GetRecipe retrieves one of the owner's recipes with its associations
func GetRecipe(db *gorm.DB, userID, recipeID uint64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.Preload("Tags").Preload("Ingredients").
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes retrieves the owner's recipes, newest first. Non-empty tagIDs
// keeps recipes carrying at least one of those tags; ingredientIDs filters
// independently, and both must hold when both are supplied. A recipe matching
// several qualifying ids appears once.
func ListRecipes(db *gorm.DB, userID uint64, tagIDs, ingredientIDs []uint64) ([]models.Recipe, error) {
	query := db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(tagIDs) > 0 {
		query = query.
			Joins("JOIN recipes_tags ON recipes_tags.recipe_id = recipes.recipe_id").
			Where("recipes_tags.tag_id IN ?", tagIDs)
	}

	if len(ingredientIDs) > 0 {
		query = query.
			Joins("JOIN recipes_ingredients ON recipes_ingredients.recipe_id = recipes.recipe_id").
			Where("recipes_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []models.Recipe
	err := query.Distinct("recipes.*").
		Preload("Tags").Preload("Ingredients").
		Order("recipes.recipe_id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	return recipes, nil
}

// UpdateRecipe applies a partial update to one of the owner's recipes.
// Scalar updates and association replacement happen in one transaction.
func UpdateRecipe(db *gorm.DB, userID, recipeID uint64, input UpdateRecipeInput) (*models.Recipe, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, types.NewValidationError("title", "title must not be empty")
	}
	if input.Price != nil && input.Price.Negative() {
		return nil, types.NewValidationError("price", "price must not be negative")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.TimeMinutes != nil {
			updates["time_minutes"] = input.TimeMinutes.Uint64()
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Link != nil {
			updates["link"] = *input.Link
		}

		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.Tags != nil {
			tags, err := ResolveTags(tx, userID, *input.Tags)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		if input.Ingredients != nil {
			ingredients, err := ResolveIngredients(tx, userID, *input.Ingredients)
			if err != nil {
				return err
			}
			if len(ingredients) == 0 {
				if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(db, userID, recipeID)
}

// DeleteRecipe removes one of the owner's recipes and its association rows.
// Shared tag/ingredient rows stay for the owner's other recipes.
func DeleteRecipe(db *gorm.DB, userID, recipeID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})
}
