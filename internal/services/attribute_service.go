package services

import (
	"errors"
	"strings"

	"github.com/pantryworks/recipedb/internal/models"
	"github.com/pantryworks/recipedb/internal/types"
	"gorm.io/gorm"
)

// AttributeInput carries a tag or ingredient name in a nested recipe payload
type AttributeInput struct {
	Name string `json:"name"`
}

// ResolveTags returns the tag rows matching (owner, name) for each supplied
// name, creating missing rows. Duplicate names collapse to a single row.
// Names match case-sensitively within the owner's namespace.
func ResolveTags(tx *gorm.DB, userID uint64, inputs []AttributeInput) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, types.NewValidationError("tags", "tag name must not be empty")
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var tag models.Tag
		if err := tx.Where("user_id = ? AND name = ?", userID, name).
			FirstOrCreate(&tag, models.Tag{UserID: userID, Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// ResolveIngredients is the ingredient counterpart of ResolveTags
func ResolveIngredients(tx *gorm.DB, userID uint64, inputs []AttributeInput) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, types.NewValidationError("ingredients", "ingredient name must not be empty")
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var ingredient models.Ingredient
		if err := tx.Where("user_id = ? AND name = ?", userID, name).
			FirstOrCreate(&ingredient, models.Ingredient{UserID: userID, Name: name}).Error; err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// ListTags retrieves the owner's tags, most recently named first
func ListTags(db *gorm.DB, userID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Where("user_id = ?", userID).
		Order("name DESC").Order("tag_id DESC").
		Find(&tags).Error
	return tags, err
}

// ListIngredients retrieves the owner's ingredients, most recently named first
func ListIngredients(db *gorm.DB, userID uint64) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := db.Where("user_id = ?", userID).
		Order("name DESC").Order("ingredient_id DESC").
		Find(&ingredients).Error
	return ingredients, err
}

// UpdateTag renames an owner's tag. A tag owned by someone else is
// indistinguishable from a missing one.
func UpdateTag(db *gorm.DB, userID, tagID uint64, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidationError("name", "name must not be empty")
	}

	var tag models.Tag
	if err := db.Where("tag_id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if err := db.Model(&tag).Update("name", name).Error; err != nil {
		return nil, err
	}

	return &tag, nil
}

// UpdateIngredient renames an owner's ingredient under the same rules as UpdateTag
func UpdateIngredient(db *gorm.DB, userID, ingredientID uint64, name string) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidationError("name", "name must not be empty")
	}

	var ingredient models.Ingredient
	if err := db.Where("ingredient_id = ? AND user_id = ?", ingredientID, userID).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	if err := db.Model(&ingredient).Update("name", name).Error; err != nil {
		return nil, err
	}

	return &ingredient, nil
}

// DeleteTag removes an owner's tag and its recipe associations.
// Recipes referencing the tag keep their other tags.
func DeleteTag(db *gorm.DB, userID, tagID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("tag_id = ? AND user_id = ?", tagID, userID).First(&tag).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if err := tx.Exec("DELETE FROM recipes_tags WHERE tag_id = ?", tag.TagID).Error; err != nil {
			return err
		}

		return tx.Delete(&tag).Error
	})
}

// DeleteIngredient removes an owner's ingredient and its recipe associations
func DeleteIngredient(db *gorm.DB, userID, ingredientID uint64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Where("ingredient_id = ? AND user_id = ?", ingredientID, userID).First(&ingredient).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return err
		}

		if err := tx.Exec("DELETE FROM recipes_ingredients WHERE ingredient_id = ?", ingredient.IngredientID).Error; err != nil {
			return err
		}

		return tx.Delete(&ingredient).Error
	})
}
