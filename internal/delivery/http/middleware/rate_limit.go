package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// WindowCounter is the redis slice the limiter needs.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitMiddleware enforces a fixed-window per-user request budget,
// keyed on the authenticated identity. It must run after the auth gate.
// When redis is unreachable requests pass through unlimited.
type RateLimitMiddleware struct {
	counter WindowCounter
	prefix  string
	limit   int
	window  time.Duration
}

func NewRateLimitMiddleware(counter WindowCounter, prefix string, limit int, window time.Duration) *RateLimitMiddleware {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimitMiddleware{counter: counter, prefix: prefix, limit: limit, window: window}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.counter == nil {
			return c.Next()
		}

		userID, ok := UserID(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
		}

		key := m.windowKey(userID)
		n, err := m.counter.IncrWindow(c.Context(), key, m.window)
		if err != nil {
			// Degrade open: losing the limiter must not take the feature down.
			return c.Next()
		}
		if n > int64(m.limit) {
			return NewAppError(fiber.StatusTooManyRequests,
				"Too many AI requests. Please try again in a minute.", nil, nil)
		}

		return c.Next()
	}
}

func (m *RateLimitMiddleware) windowKey(userID uuid.UUID) string {
	windowStart := time.Now().Unix() / int64(m.window.Seconds())
	return fmt.Sprintf("%s:%s:%d", m.prefix, userID, windowStart)
}
