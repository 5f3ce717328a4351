package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
)

// writeError traduce un error de dominio a status + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	var (
		stockErr *domain.InsufficientStockError
		inUseErr *domain.CategoryInUseError
	)
	switch {
	case errors.As(err, &stockErr):
		status, code = fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.As(err, &inUseErr), errors.Is(err, domain.ErrCategoryInUse):
		status, code = fiber.StatusConflict, "CATEGORY_IN_USE"
	case errors.Is(err, domain.ErrDataIntegrity):
		status, code = fiber.StatusUnprocessableEntity, "DATA_INTEGRITY"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	return c.Status(status).JSON(dto.Fail(code, err.Error()))
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
}
