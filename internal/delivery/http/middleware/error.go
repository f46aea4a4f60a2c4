package middleware

import (
	"errors"
	"log"

	"jobpath/internal/pkg/response"
	"jobpath/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
)

// AppError carries an HTTP status, a client-facing message, and optional
// structured data (field errors) up to the error middleware. Cause is for
// logs only and never reaches the client.
type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// NewValidationError is the 400 shape for field-level failures: every
// violating field is listed, not just the first.
func NewValidationError(errs validation.Errors) *AppError {
	return &AppError{
		StatusCode: fiber.StatusBadRequest,
		Message:    response.MessageValidationFailed,
		Data:       []validation.FieldError(errs),
	}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered: %v", r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := m.normalizeError(err)
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) normalizeError(err error) (int, string, any) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			m.logInternal(appErr)
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, appErr.Message, appErr.Data
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return fiber.StatusBadRequest, response.MessageValidationFailed, []validation.FieldError(verrs)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			m.logger.Printf("internal error: %v", fiberErr)
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, fiberErr.Message, nil
	}

	m.logger.Printf("internal error: %v", err)
	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

func (m *ErrorMiddleware) logInternal(e *AppError) {
	if e.Cause != nil {
		m.logger.Printf("internal error: %s: %v", e.Message, e.Cause)
		return
	}
	m.logger.Printf("internal error: %s", e.Message)
}
