package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pantryworks/recipedb/internal/handlers"
	"github.com/pantryworks/recipedb/internal/models"
	"gorm.io/gorm"
)

// newAttributeApp wires the tag and ingredient routes with a fixed acting user
func newAttributeApp(db *gorm.DB, user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})

	tagHandler := &handlers.TagHandler{DB: db}
	app.Get("/api/tags", tagHandler.ListTags)
	app.Patch("/api/tags/:id", tagHandler.UpdateTag)
	app.Delete("/api/tags/:id", tagHandler.DeleteTag)

	ingredientHandler := &handlers.IngredientHandler{DB: db}
	app.Get("/api/ingredients", ingredientHandler.ListIngredients)
	app.Patch("/api/ingredients/:id", ingredientHandler.UpdateIngredient)
	app.Delete("/api/ingredients/:id", ingredientHandler.DeleteIngredient)

	return app
}

// TestListTagsEndpoint tests owner-scoped, name-descending listing
func TestListTagsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cook@example.com")
	other := createUser(t, db, "other@example.com")
	app := newAttributeApp(db, user)

	db.Create(&models.Tag{UserID: user.UserID, Name: "dessert"})
	db.Create(&models.Tag{UserID: user.UserID, Name: "vegan"})
	db.Create(&models.Tag{UserID: other.UserID, Name: "foreign"})

	req := httptest.NewRequest("GET", "/api/tags", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var tags []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}
	if tags[0]["name"] != "vegan" || tags[1]["name"] != "dessert" {
		t.Errorf("Expected name-descending order, got %v", tags)
	}
}

// TestUpdateTagEndpoint tests renames and owner scoping over HTTP
func TestUpdateTagEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cook@example.com")
	other := createUser(t, db, "other@example.com")

	tag := models.Tag{UserID: user.UserID, Name: "breakfast"}
	db.Create(&tag)

	app := newAttributeApp(db, user)
	body := []byte(`{"name": "brunch"}`)
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/api/tags/%d", tag.TagID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["name"] != "brunch" {
		t.Errorf("Expected renamed tag, got %v", result["name"])
	}

	// Another user's request reads as missing
	foreignApp := newAttributeApp(db, other)
	req = httptest.NewRequest("PATCH", fmt.Sprintf("/api/tags/%d", tag.TagID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = foreignApp.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for foreign tag, got %d", resp.StatusCode)
	}

	// Empty name -> validation detail
	req = httptest.NewRequest("PATCH", fmt.Sprintf("/api/tags/%d", tag.TagID), bytes.NewReader([]byte(`{"name": " "}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for empty name, got %d", resp.StatusCode)
	}
}

// TestDeleteTagEndpoint tests 204 on success and 404 afterwards
func TestDeleteTagEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cook@example.com")
	app := newAttributeApp(db, user)

	tag := models.Tag{UserID: user.UserID, Name: "doomed"}
	db.Create(&tag)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/tags/%d", tag.TagID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Fatalf("Expected status 204, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/tags/%d", tag.TagID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 on repeat delete, got %d", resp.StatusCode)
	}
}

// TestIngredientEndpoints tests the ingredient mirror of the tag routes
func TestIngredientEndpoints(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "cook@example.com")
	app := newAttributeApp(db, user)

	ingredient := models.Ingredient{UserID: user.UserID, Name: "salt"}
	db.Create(&ingredient)

	// List
	resp, err := app.Test(httptest.NewRequest("GET", "/api/ingredients", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var ingredients []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&ingredients); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0]["name"] != "salt" {
		t.Errorf("Expected [salt], got %v", ingredients)
	}

	// Rename
	body := []byte(`{"name": "sea salt"}`)
	req := httptest.NewRequest("PATCH", fmt.Sprintf("/api/ingredients/%d", ingredient.IngredientID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	// Delete
	resp, err = app.Test(httptest.NewRequest("DELETE", fmt.Sprintf("/api/ingredients/%d", ingredient.IngredientID), nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("Expected status 204, got %d", resp.StatusCode)
	}
}
