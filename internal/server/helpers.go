package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"socialnet/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

const requestTimeout = 5 * time.Second

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// requestContext bounds store work for a single request.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// parseID extracts a non-empty route parameter. The value is copied out of the
// request buffer since it outlives the handler in spans and events. On failure
// it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (string, error) {
	id := strings.TrimSpace(utils.CopyString(c.Params(param)))
	if id == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(param, "Invalid "+param))
		return "", errResponseWritten
	}
	return id, nil
}

// parseBody decodes the JSON request body into dst, writing a 400 on failure.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// mapServiceError converts an AppError code to its HTTP status.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			return fiber.StatusGatewayTimeout
		}
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation:
		return fiber.StatusBadRequest
	case models.CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondServiceError writes err with the status mapped from its code.
// Unexpected errors are wrapped so their message is not echoed as the error text.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := mapServiceError(err)
	if status == fiber.StatusGatewayTimeout {
		return c.Status(status).JSON(fiber.Map{"error": "Request timeout"})
	}
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		err = models.NewInternalError(err)
	}
	return models.RespondWithError(c, status, err)
}

// requireUpgrade rejects plain HTTP requests to websocket routes.
func (s *Server) requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return models.RespondWithError(c, fiber.StatusUpgradeRequired,
		models.NewValidationError("WebSocket upgrade required"))
}
