package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/nodeverse/nodeverse-api/notify"
	"github.com/nodeverse/nodeverse-api/services"
)

type Handler struct {
	Todos *services.TodoService
	Users *services.UserService
	L     *logrus.Logger
	N     *notify.Notifier
}

func NewHandler(todos *services.TodoService, users *services.UserService, l *logrus.Logger, n *notify.Notifier) *Handler {
	return &Handler{Todos: todos, Users: users, L: l, N: n}
}

func FiberJsonResponse(c *fiber.Ctx, httpStatus int, status, message string, data any) error {
	return c.Status(httpStatus).JSON(fiber.Map{"status": status, "message": message, "data": data})
}

// respondError maps service error kinds to status codes. Dependency failures
// are logged and summarized to the notification sink; the client only gets a
// generic message.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var validation *services.ValidationError
	var notFound *services.NotFoundError
	var conflict *services.ConflictError

	switch {
	case errors.As(err, &validation):
		return FiberJsonResponse(c, fiber.StatusBadRequest, "error", validation.Error(), nil)
	case errors.As(err, &notFound):
		return FiberJsonResponse(c, fiber.StatusNotFound, "error", notFound.Error(), nil)
	case errors.As(err, &conflict):
		return FiberJsonResponse(c, fiber.StatusConflict, "error", conflict.Error(), nil)
	default:
		h.L.Errorf("dependency failure: %v", err)
		go h.N.Notify("nodeverse-api error: " + err.Error())
		return FiberJsonResponse(c, fiber.StatusInternalServerError, "error", "internal server error", nil)
	}
}

func includeDeleted(c *fiber.Ctx) bool {
	return c.Query("includeDeleted") == "true"
}
