package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pizzeria-api/internal/application/dto"
	"github.com/jhoicas/pizzeria-api/internal/domain"
)

// fail traduce errores de dominio a respuestas HTTP con código estable.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrInvalidQuantity):
		return respond(c, fiber.StatusBadRequest, "INVALID_QUANTITY", err)
	case errors.Is(err, domain.ErrInvalidSelection):
		return respond(c, fiber.StatusBadRequest, "INVALID_SELECTION", err)
	case errors.Is(err, domain.ErrCartEmpty):
		return respond(c, fiber.StatusBadRequest, "CART_EMPTY", err)
	case errors.Is(err, domain.ErrInvalidPromotion):
		return respond(c, fiber.StatusBadRequest, "INVALID_PROMOTION", err)
	case errors.Is(err, domain.ErrInvalidAdjustment):
		return respond(c, fiber.StatusConflict, "INVALID_ADJUSTMENT", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
