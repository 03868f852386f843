package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nodeverse/nodeverse-api/services"
)

// @Summary Create a user.
// @Description create a single user with its embedded addresses.
// @Tags users
// @Accept json
// @Param user body services.UserInput true "User to create"
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/users [post]
func HandleCreateUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		var in services.UserInput
		if err := c.BodyParser(&in); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", nil)
		}
		id, err := h.Users.Create(c.Context(), in)
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "new user created", fiber.Map{"id": id})
	}
}

// @Summary List users.
// @Description fetch users matching the query, windowed and newest first.
// @Tags users
// @Param name query string false "Case-insensitive substring match"
// @Param email query string false "Exact match"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Produce json
// @Success 200 {object} services.UserList
// @Router /api/users [get]
func HandleAllUsers(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		list, err := h.Users.List(c.Context(), services.UserListQuery{
			Name:           c.Query("name"),
			Email:          c.Query("email"),
			Page:           c.Query("page"),
			Limit:          c.Query("limit"),
			IncludeDeleted: includeDeleted(c),
		})
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "users", list)
	}
}

// @Summary Get a single user.
// @Description fetch a single user with resolved addresses by id.
// @Tags users
// @Param id path string true "User ID"
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/users/:id [get]
func HandleGetOneUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		user, err := h.Users.GetByID(c.Context(), c.Params("id"), includeDeleted(c))
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "user", user)
	}
}

// @Summary Update a user.
// @Description overwrite name, email, age and the address list of a user.
// @Tags users
// @Accept json
// @Param id path string true "User ID"
// @Param user body services.UserInput true "New field values"
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/users/:id [patch]
func HandleUpdateUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		var in services.UserInput
		if err := c.BodyParser(&in); err != nil {
			return FiberJsonResponse(c, fiber.StatusBadRequest, "error", "request body malformed", nil)
		}
		user, err := h.Users.Update(c.Context(), c.Params("id"), in)
		if err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "user updated", user)
	}
}

// @Summary Delete a user.
// @Description soft-delete a user; it disappears from default reads.
// @Tags users
// @Param id path string true "User ID"
// @Produce json
// @Success 200
// @Router /api/users/:id [delete]
func HandleDeleteUser(h *Handler) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := h.Users.Delete(c.Context(), c.Params("id")); err != nil {
			return h.respondError(c, err)
		}
		return FiberJsonResponse(c, fiber.StatusOK, "success", "user deleted", nil)
	}
}
