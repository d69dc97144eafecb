package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/turbocafe/turbocafe-api/internal/application/dto"
	"github.com/turbocafe/turbocafe-api/internal/domain"
)

// respondError maps domain errors onto the HTTP error envelope. Anything not
// in the taxonomy becomes an opaque 500.
func respondError(c *fiber.Ctx, err error) error {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: te.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "operation not allowed for this role"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "resource already exists"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity must be between 1 and 50"})
	case errors.Is(err, domain.ErrItemUnavailable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "menu item is not available"})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "status transition not allowed"})
	case errors.Is(err, domain.ErrNotCancellable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_CANCELLABLE", Message: "order can no longer be cancelled"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"})
	}
}

func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "malformed request body"})
}

// Lenient filter parsing: a malformed value behaves as if the parameter was
// not sent at all.

func queryDecimal(c *fiber.Ctx, key string) *decimal.Decimal {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}

func queryDate(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func queryBool(c *fiber.Ctx, key string) *bool {
	switch c.Query(key) {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	default:
		return nil
	}
}

func queryPage(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Page:     c.QueryInt("page", 0),
		PageSize: c.QueryInt("page_size", 0),
	}
}
