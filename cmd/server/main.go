package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/pantryworks/recipedb/internal/config"
	"github.com/pantryworks/recipedb/internal/database"
	"github.com/pantryworks/recipedb/internal/handlers"
	"github.com/pantryworks/recipedb/internal/middleware"
	"github.com/pantryworks/recipedb/internal/storage"
	"github.com/pantryworks/recipedb/internal/types"
	"github.com/pantryworks/recipedb/internal/utils"

	_ "github.com/pantryworks/recipedb/docs/api" // Swagger docs
)

// @title RecipeDB API
// @version 1.0.0
// @description Recipe management service with per-user tags, ingredients, and image attachments
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/pantryworks/recipedb

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Image blob store
	store, err := storage.NewFileStore(cfg.MediaRoot)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("recipedb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Stored recipe images
	app.Static("/media", cfg.MediaRoot)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	recipeHandler := &handlers.RecipeHandler{DB: db, Store: store}
	tagHandler := &handlers.TagHandler{DB: db}
	ingredientHandler := &handlers.IngredientHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	authed := middleware.AuthUser(cfg, db)

	// Health
	api.Get("/health-check", healthHandler.HealthCheck)

	// User routes (registration and token are public)
	users := api.Group("/users")
	users.Post("/", userHandler.Register)
	users.Post("/token", userHandler.Token)
	users.Get("/me", authed, userHandler.Me)
	users.Patch("/me", authed, userHandler.UpdateMe)

	// Recipe routes (all require authentication)
	recipes := api.Group("/recipes", authed)
	recipes.Get("/", recipeHandler.ListRecipes)
	recipes.Post("/", recipeHandler.CreateRecipe)
	recipes.Get("/:id", recipeHandler.GetRecipe)
	recipes.Patch("/:id", recipeHandler.PatchRecipe)
	recipes.Put("/:id", recipeHandler.PutRecipe)
	recipes.Delete("/:id", recipeHandler.DeleteRecipe)
	recipes.Post("/:id/upload-image", recipeHandler.UploadImage)

	// Attribute routes (rows are created only via nested recipe payloads)
	tags := api.Group("/tags", authed)
	tags.Get("/", tagHandler.ListTags)
	tags.Patch("/:id", tagHandler.UpdateTag)
	tags.Delete("/:id", tagHandler.DeleteTag)

	ingredients := api.Group("/ingredients", authed)
	ingredients.Get("/", ingredientHandler.ListIngredients)
	ingredients.Patch("/:id", ingredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", ingredientHandler.DeleteIngredient)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	switch e := err.(type) {
	case *fiber.Error:
		code = e.Code
		message = e.Message
	case *types.CustomError:
		code = e.Code
		message = e.Message
		errorType = e.Type
	case *types.ValidationError:
		return utils.ValidationErrorResponse(c, e.Field, e.Message)
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
