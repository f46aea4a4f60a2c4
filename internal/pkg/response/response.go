package response

import "github.com/gofiber/fiber/v3"

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	Errors     any    `json:"errors,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
}

const (
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageValidationFailed    = "Validation failed"
	MessageInternalServerError = "internal server error"
)

func Success(c fiber.Ctx, status int, message string, data any) error {
	return c.Status(normalizeStatus(status)).JSON(Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessPage is Success with a pagination block alongside the data.
func SuccessPage(c fiber.Ctx, status int, data any, pagination any) error {
	return c.Status(normalizeStatus(status)).JSON(Envelope{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	})
}

func Error(c fiber.Ctx, status int, message string, errs any) error {
	st := normalizeStatus(status)
	if message == "" {
		message = defaultMessageForStatus(st)
	}
	return c.Status(st).JSON(Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageBadRequest
	}
}
