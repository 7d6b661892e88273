package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/example/tapiocaria/internal/pricing"
)

// statusByCode maps rejection codes to HTTP statuses. Everything here is a
// request-class failure; unknown errors fall through to 500.
var statusByCode = map[string]int{
	pricing.CodeValidation:          fiber.StatusBadRequest,
	pricing.CodeItemNotFound:        fiber.StatusBadRequest,
	pricing.CodeItemUnavailable:     fiber.StatusBadRequest,
	pricing.CodeZoneNotFound:        fiber.StatusBadRequest,
	pricing.CodeStoreClosed:         fiber.StatusBadRequest,
	pricing.CodeCategoryClosed:      fiber.StatusBadRequest,
	pricing.CodeOrderCancelled:      fiber.StatusUnprocessableEntity,
	pricing.CodeCancelWindowExpired: fiber.StatusUnprocessableEntity,
}

// ErrorHandler renders every error as the {error, message?} JSON shape the
// frontends expect. Message text is Portuguese and shown to users as-is.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var pricingErr *pricing.Error
	if errors.As(err, &pricingErr) {
		status, ok := statusByCode[pricingErr.Code]
		if !ok {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error":   pricingErr.Code,
			"message": pricingErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiberErr.Message,
		})
	}

	logrus.WithError(err).Error("unhandled request error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "internal_error",
		"message": "erro interno do servidor",
	})
}
