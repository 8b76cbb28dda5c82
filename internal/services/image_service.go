package services

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"

	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/pantryworks/recipedb/internal/models"
	"github.com/pantryworks/recipedb/internal/storage"
	"github.com/pantryworks/recipedb/internal/types"
	"gorm.io/gorm"
)

// AttachRecipeImage validates the uploaded blob as an image, stores it, and
// points the recipe at the new blob. A previously attached blob is removed
// only after the replacement is in place, so a failed upload leaves the old
// image untouched.
func AttachRecipeImage(db *gorm.DB, store storage.Store, userID, recipeID uint64, data []byte) (*models.Recipe, error) {
	recipe, err := GetRecipe(db, userID, recipeID)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, types.NewValidationError("image", "upload is not a decodable image")
	}

	ref, err := store.Save(extensionForFormat(format), data)
	if err != nil {
		return nil, err
	}

	previous := recipe.Image
	if err := db.Model(recipe).Update("image", ref).Error; err != nil {
		// Roll the orphaned blob back out of the store
		if removeErr := store.Remove(ref); removeErr != nil {
			log.Printf("Failed to remove orphaned image blob %s: %v", ref, removeErr)
		}
		return nil, err
	}
	recipe.Image = ref

	if previous != "" {
		if err := store.Remove(previous); err != nil {
			log.Printf("Failed to remove replaced image blob %s: %v", previous, err)
		}
	}

	return recipe, nil
}

// extensionForFormat maps an image format name from the decoder registry
// to a file extension
func extensionForFormat(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
