package helpers

import (
	"testing"

	"github.com/pantryworks/recipedb/internal/models"
	"github.com/pantryworks/recipedb/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateTestUser creates a user row directly, bypassing the API
func CreateTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// CreateTestRecipe creates a recipe with sensible defaults for the given owner
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uint64, title string) *models.Recipe {
	t.Helper()

	price, err := types.ParsePrice("5.25")
	if err != nil {
		t.Fatalf("Failed to parse price: %v", err)
	}

	recipe := models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 10,
		Price:       price,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}
	return &recipe
}

// CreateTestTag creates a tag owned by the given user
func CreateTestTag(t *testing.T, db *gorm.DB, userID uint64, name string) *models.Tag {
	t.Helper()

	tag := models.Tag{UserID: userID, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	return &tag
}

// CreateTestIngredient creates an ingredient owned by the given user
func CreateTestIngredient(t *testing.T, db *gorm.DB, userID uint64, name string) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{UserID: userID, Name: name}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("Failed to create ingredient: %v", err)
	}
	return &ingredient
}

// TagRecipe appends existing tags to a recipe
func TagRecipe(t *testing.T, db *gorm.DB, recipe *models.Recipe, tags ...*models.Tag) {
	t.Helper()

	for _, tag := range tags {
		if err := db.Model(recipe).Association("Tags").Append(tag); err != nil {
			t.Fatalf("Failed to associate tag: %v", err)
		}
	}
}

// StockRecipe appends existing ingredients to a recipe
func StockRecipe(t *testing.T, db *gorm.DB, recipe *models.Recipe, ingredients ...*models.Ingredient) {
	t.Helper()

	for _, ingredient := range ingredients {
		if err := db.Model(recipe).Association("Ingredients").Append(ingredient); err != nil {
			t.Fatalf("Failed to associate ingredient: %v", err)
		}
	}
}
