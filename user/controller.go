package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Response is what the presentation layer returns to its caller.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Controller exposes Service operations and never lets an error escape:
// expected failures become messages, anything else is logged and hidden.
type Controller struct {
	service *Service
	logger  *slog.Logger
}

// NewController creates a Controller over service.
func NewController(service *Service, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{service: service, logger: logger}
}

func (c *Controller) HandleCreateUser(ctx context.Context, name, email string) Response {
	u, err := c.service.CreateUser(ctx, name, email)
	if err != nil {
		return c.fail("create user", err)
	}
	return Response{Success: true, Data: u}
}

func (c *Controller) HandleGetUser(id string) Response {
	u, err := c.service.GetUser(id)
	if err != nil {
		return c.fail("get user", err)
	}
	return Response{Success: true, Data: u}
}

func (c *Controller) HandleUpdateUser(ctx context.Context, id, name, email string) Response {
	u, err := c.service.UpdateUser(ctx, id, name, email)
	if err != nil {
		return c.fail("update user", err)
	}
	return Response{Success: true, Data: u}
}

func (c *Controller) HandleResetPassword(id string) Response {
	if _, err := c.service.ResetPassword(id); err != nil {
		return c.fail("reset password", err)
	}
	return Response{Success: true, Message: "Email de restablecimiento enviado"}
}

func (c *Controller) fail(op string, err error) Response {
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidEmail):
		return Response{Error: errorDetail(err)}
	case errors.Is(err, ErrNotFound):
		return Response{Error: "Usuario no encontrado"}
	case errors.Is(err, ErrDuplicateEmail):
		return Response{Error: "El email ya está registrado"}
	}
	c.logger.Error("user operation failed", "op", op, "error", err)
	return Response{Error: "Error interno del servidor"}
}

// errorDetail strips the sentinel prefix from a validation error.
func errorDetail(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrInvalidName, ErrInvalidEmail} {
		if detail, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return detail
		}
	}
	return msg
}
