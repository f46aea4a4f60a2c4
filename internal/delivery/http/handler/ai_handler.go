package handler

import (
	"errors"
	"strings"

	"jobpath/internal/delivery/http/dto"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/infrastructure/ai"
	"jobpath/internal/pkg/response"
	"jobpath/internal/pkg/validation"

	"github.com/gofiber/fiber/v3"
)

type AIHandler struct {
	summarizer *ai.Summarizer
}

func NewAIHandler(summarizer *ai.Summarizer) *AIHandler {
	return &AIHandler{summarizer: summarizer}
}

func (h *AIHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/summarize-job", h.Summarize)
}

func (h *AIHandler) Summarize(c fiber.Ctx) error {
	var req dto.SummarizeJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	if strings.TrimSpace(req.Description) == "" {
		var errs validation.Errors
		errs.Add("description", "Job description is required", req.Description)
		return middleware.NewValidationError(errs)
	}

	summary, err := h.summarizer.SummarizeJob(c.Context(), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrNotConfigured):
			return middleware.NewAppError(fiber.StatusServiceUnavailable,
				"AI service is not configured", nil, err)
		case errors.Is(err, ai.ErrUnavailable):
			return middleware.NewAppError(fiber.StatusTooManyRequests,
				"AI service quota exceeded. Please try again later.", nil, err)
		case errors.Is(err, ai.ErrEmptySummary):
			return middleware.NewAppError(fiber.StatusBadGateway,
				"Failed to generate summary", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, "Summary generated successfully", fiber.Map{
		"summary": summary,
	})
}
