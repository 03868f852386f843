package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nodeverse/nodeverse-api/services"
)

// @Summary Create a todo.
// @Description create a single todo item.
// @Tags todos
// @Accept json
// @Param todo body services.TodoInput true "Todo to create"
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/todos [post]
func HandleCreateTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		var in services.TodoInput
		if err := c.BodyParser(&in); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", nil)
		}
		id, err := h.Todos.Create(c.Context(), in)
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "new todo created", fiber.Map{"id": id})
	}
}

// @Summary List todos.
// @Description fetch todos matching the query, windowed and newest first.
// @Tags todos
// @Param title query string false "Case-insensitive substring match"
// @Param completed query bool false "Exact match"
// @Param fromDate query string false "Created-at lower bound (YYYY-MM-DD or RFC3339)"
// @Param toDate query string false "Created-at upper bound (YYYY-MM-DD or RFC3339)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Produce json
// @Success 200 {object} services.TodoList
// @Router /api/todos [get]
func HandleAllTodos(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		list, err := h.Todos.List(c.Context(), services.TodoListQuery{
			Title:          c.Query("title"),
			Completed:      c.Query("completed"),
			FromDate:       c.Query("fromDate"),
			ToDate:         c.Query("toDate"),
			Page:           c.Query("page"),
			Limit:          c.Query("limit"),
			IncludeDeleted: includeDeleted(c),
		})
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "todos", list)
	}
}

// @Summary Get a single todo.
// @Description fetch a single todo by id.
// @Tags todos
// @Param id path string true "Todo ID"
// @Produce json
// @Success 200 {object} models.Todo
// @Router /api/todos/:id [get]
func HandleGetOneTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		todo, err := h.Todos.GetByID(c.Context(), c.Params("id"), includeDeleted(c))
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "todo", todo)
	}
}

// @Summary Update a todo.
// @Description overwrite title, description and completed of a todo.
// @Tags todos
// @Accept json
// @Param id path string true "Todo ID"
// @Param todo body services.TodoInput true "New field values"
// @Produce json
// @Success 200 {object} models.Todo
// @Router /api/todos/:id [patch]
func HandleUpdateTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		var in services.TodoInput
		if err := c.BodyParser(&in); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", nil)
		}
		todo, err := h.Todos.Update(c.Context(), c.Params("id"), in)
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "todo updated", todo)
	}
}

// @Summary Delete a todo.
// @Description soft-delete a todo; it disappears from default reads.
// @Tags todos
// @Param id path string true "Todo ID"
// @Produce json
// @Success 200
// @Router /api/todos/:id [delete]
func HandleDeleteTodo(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := h.Todos.Delete(c.Context(), c.Params("id")); err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "todo deleted", nil)
	}
}
