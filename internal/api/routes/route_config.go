package routes

import (
	"fridge-tracker-backend/internal/api/handlers"
	"fridge-tracker-backend/internal/middleware"
	"fridge-tracker-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	FridgeHandler handlers.FridgeHandler
	RecipeHandler handlers.RecipeHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Fridge()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware(), c.UserHandler.GetUsers)
		user.Post("/promote", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware(), c.UserHandler.PromoteToAdmin)
	}
}

func (c *Config) Fridge() {
	fridge := c.App.Group("/api/v1/fridge", c.Middleware.AuthMiddleware(c.JWTService))

	// Basic CRUD operations
	fridge.Post("", c.FridgeHandler.AddItem)
	fridge.Get("", c.FridgeHandler.GetItems)
	fridge.Delete("", c.FridgeHandler.EmptyFridge)
	fridge.Delete("/:id", c.FridgeHandler.DeleteItem)

	// Special operations
	fridge.Post("/seed", c.Middleware.AdminMiddleware(), c.FridgeHandler.SeedFridge)
	fridge.Post("/receipt-scan", c.FridgeHandler.ScanReceipt)
	fridge.Post("/save-scanned", c.FridgeHandler.SaveScannedItems)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Get("/suggestions", c.RecipeHandler.GetSuggestions)
	recipes.Post("", c.RecipeHandler.SaveRecipe)
	recipes.Get("", c.RecipeHandler.GetSavedRecipes)
	recipes.Delete("/:id", c.RecipeHandler.DeleteSavedRecipe)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
