package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nodeverse/nodeverse-api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	app.Get("/health", handlers.HandleHealthCheck)

	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return handlers.FiberJsonResponse(c, fiber.StatusOK, "success", "Welcome to Nodeverse!", nil)
	})

	todos := api.Group("/todos")
	todos.Get("/", handlers.HandleAllTodos(h))
	todos.Post("/", handlers.HandleCreateTodo(h))
	todos.Get("/:id", handlers.HandleGetOneTodo(h))
	todos.Patch("/:id", handlers.HandleUpdateTodo(h))
	todos.Delete("/:id", handlers.HandleDeleteTodo(h))

	users := api.Group("/users")
	users.Get("/", handlers.HandleAllUsers(h))
	users.Post("/", handlers.HandleCreateUser(h))
	users.Get("/:id", handlers.HandleGetOneUser(h))
	users.Patch("/:id", handlers.HandleUpdateUser(h))
	users.Delete("/:id", handlers.HandleDeleteUser(h))

	app.Use(func(c *fiber.Ctx) error {
		return handlers.FiberJsonResponse(c, fiber.StatusNotFound, "error", "Route Not Found!", nil)
	})
}
