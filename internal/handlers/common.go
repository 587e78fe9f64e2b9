package handlers

import (
	"errors"
	"fmt"

	"imobi/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// currentUser returns the authenticated user stored by the auth middleware.
func currentUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}

// validationErrorResponse renders a validator failure as a 400 with a
// per-field error map.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// statusFromError maps domain errors to HTTP status codes. Ownership
// mismatches surface as not-found so another user's rows are never revealed.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidEmail),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrInvalidRealEstates),
		errors.Is(err, models.ErrInvalidFilterValues):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponse renders a domain error with its mapped status code.
func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}
