package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shoplite/internal/domain"
	applog "shoplite/internal/log"
	"shoplite/internal/repos"
	"shoplite/internal/services"
)

// Responses use the envelope the frontend expects: {type, msg, data}.

func ok(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"type": "success", "msg": msg})
}

func okData(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"type": "success", "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"type": "error", "msg": msg})
}

// failErr maps service errors onto the envelope. Business outcomes keep
// their message; anything unexpected is logged and surfaced opaquely.
func failErr(c *fiber.Ctx, action string, err error, notFoundMsg string) error {
	var stock *repos.InsufficientStockError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fail(c, fiber.StatusNotFound, notFoundMsg)
	case errors.As(err, &stock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"type": "error",
			"msg":  "insufficient stock",
			"data": fiber.Map{"remaining": stock.Remaining},
		})
	case errors.Is(err, domain.ErrInvalidTransition):
		return fail(c, fiber.StatusConflict, "order is not in a state that allows this operation")
	case errors.Is(err, services.ErrBadCreds):
		return fail(c, fiber.StatusUnauthorized, "invalid account or password")
	case errors.Is(err, services.ErrAccountTaken):
		return fail(c, fiber.StatusConflict, "account already exists")
	default:
		applog.Error(c, action, err, nil)
		return fail(c, fiber.StatusInternalServerError, "internal error, please try again later")
	}
}
