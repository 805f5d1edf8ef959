package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/placescout/internal/core/domain"
	"github.com/samirrijal/placescout/internal/pkg/logging"
)

// ServerErrorMessage is the only detail a client sees for unexpected failures.
const ServerErrorMessage = "Server error"

// APIError is a structured error response. Success is always false; it keeps
// the envelope readable by clients of the original search endpoint.
type APIError struct {
	Success   bool   `json:"success"`
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errUnavailable returns a 503 error for features whose backend is not configured.
func errUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusServiceUnavailable, "unavailable", msg)
}

// searchError maps a pipeline error to a response. Validation problems are
// echoed; anything else is logged in full and reported as ServerErrorMessage.
func searchError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return errBadRequest(c, verr.Message)
	}
	if errors.Is(err, domain.ErrValidation) {
		return errBadRequest(c, err.Error())
	}

	logging.FromContext(c.UserContext()).Error("search failed", "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(c, fiber.StatusGatewayTimeout, "timeout", "Search timed out")
	}
	return errInternal(c, ServerErrorMessage)
}

// ErrorHandler renders errors that escape handlers (fiber errors, panics
// recovered upstream) in the APIError envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := "internal_error"
	message := ServerErrorMessage

	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
		switch status {
		case fiber.StatusNotFound:
			code = "not_found"
		case fiber.StatusRequestTimeout:
			code = "timeout"
		case fiber.StatusUpgradeRequired:
			code = "upgrade_required"
		case fiber.StatusRequestEntityTooLarge:
			code = "payload_too_large"
		case fiber.StatusMethodNotAllowed:
			code = "method_not_allowed"
		default:
			if status < 500 {
				code = "bad_request"
			}
		}
	} else {
		logging.FromContext(c.UserContext()).Error("unhandled error", "error", err)
	}

	return newError(c, status, code, message)
}
