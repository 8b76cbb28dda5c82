package models

import (
	"time"

	"github.com/pantryworks/recipedb/internal/types"
)

// Recipe represents a recipe owned by a user, with many-to-many
// tag and ingredient associations scoped to the same owner.
type Recipe struct {
	RecipeID    uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64       `gorm:"not null;index" json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes uint64       `gorm:"not null;default:0" json:"time_minutes"`
	Price       types.Price  `gorm:"type:decimal(6,2);not null;default:0" json:"price"`
	Description string       `gorm:"type:text" json:"description"`
	Link        string       `gorm:"size:255" json:"link"`
	Image       string       `gorm:"size:255" json:"image"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Tags        []Tag        `gorm:"many2many:recipes_tags;joinForeignKey:recipe_id;joinReferences:tag_id" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipes_ingredients;joinForeignKey:recipe_id;joinReferences:ingredient_id" json:"ingredients"`
}

// Tag represents a named label owned by a user
type Tag struct {
	TagID     uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_tag_owner_name" json:"-"`
	Name      string    `gorm:"size:255;not null;index:idx_tag_owner_name" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Ingredient represents a named ingredient owned by a user.
// Same shape and lifecycle as Tag, separate namespace.
type Ingredient struct {
	IngredientID uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"not null;index:idx_ingredient_owner_name" json:"-"`
	Name         string    `gorm:"size:255;not null;index:idx_ingredient_owner_name" json:"name"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// TableName overrides the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}
