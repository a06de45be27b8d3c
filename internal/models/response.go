package models

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint resolves to. Status mirrors the
// HTTP status code so the transport layer has a single signal to act on.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Respond writes a success envelope with the given status and message.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// RespondWithError writes an error envelope. AppErrors carry their own status
// mapping; anything else is treated as an unexpected internal failure.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}
	return c.Status(appErr.StatusCode()).JSON(Response{
		Status:  appErr.StatusCode(),
		Message: appErr.Message,
	})
}
