package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/snapgather/snapgather-backend/internal/service"
)

// statusForError maps service sentinel errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrPhotoNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrUploadsClosed):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrFileTooLarge),
		errors.Is(err, service.ErrEventLimitReached):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}
