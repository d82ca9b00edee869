package handlers

import (
	"errors"

	"etalase/internal/repositories"
	"etalase/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock), errors.Is(err, services.ErrInvalidQuantity):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUserExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error body used across the API.
func respondError(c *fiber.Ctx, lg *zap.Logger, message string, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		lg.Error(message, zap.String("path", c.Path()), zap.Error(err))
	} else {
		lg.Debug(message, zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
