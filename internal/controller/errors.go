package controller

import (
	"errors"

	"facelog-be/internal/pkg/facedetect"
	"facelog-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service errors to HTTP status codes so the controllers
// translate them consistently.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrFichaNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrAttendanceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidResetToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNotAStudent),
		errors.Is(err, service.ErrSessionInactive),
		errors.Is(err, service.ErrMissingTimestamp),
		errors.Is(err, facedetect.ErrNoFaceOrMultipleFaces):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
