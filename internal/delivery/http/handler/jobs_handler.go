package handler

import (
	"errors"
	"fmt"
	"strconv"

	"jobpath/internal/delivery/http/dto"
	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/domain/job"
	"jobpath/internal/pkg/response"
	"jobpath/internal/pkg/validation"
	ucjob "jobpath/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobsHandler struct {
	uc ucjob.Usecase
}

func NewJobsHandler(uc ucjob.Usecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	// /stats before /:id so it is not swallowed by the id route.
	r.Get("/stats", h.Stats)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/", h.DeleteMany)
	r.Delete("/:id", h.Delete)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	page, err := parseQueryInt(c, "page", ucjob.DefaultPage)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid page parameter", nil, err)
	}
	limit, err := parseQueryInt(c, "limit", ucjob.DefaultLimit)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit parameter", nil, err)
	}

	items, pagination, err := h.uc.List(c.Context(), ownerID, ucjob.ListParams{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy", "createdAt"),
		SortOrder: c.Query("sortOrder", "desc"),
	})
	if err != nil {
		return mapJobError(err)
	}

	return response.SuccessPage(c, fiber.StatusOK, dto.NewJobListResponse(items), pagination)
}

func (h *JobsHandler) Stats(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	stats, err := h.uc.Stats(c.Context(), ownerID)
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "", dto.NewStatsResponse(stats))
}

func (h *JobsHandler) Get(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}
	id, appErr := jobIDFromPath(c)
	if appErr != nil {
		return appErr
	}

	j, err := h.uc.Get(c.Context(), ownerID, id)
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "", dto.NewJobResponse(j))
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if errs := dto.Check(req); errs.HasErrors() {
		return middleware.NewValidationError(errs)
	}

	j, err := h.uc.Create(c.Context(), ownerID, req.Draft())
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Job created successfully", dto.NewJobResponse(j))
}

func (h *JobsHandler) Update(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}
	id, appErr := jobIDFromPath(c)
	if appErr != nil {
		return appErr
	}

	var req dto.UpdateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if errs := dto.Check(req); errs.HasErrors() {
		return middleware.NewValidationError(errs)
	}

	j, err := h.uc.Update(c.Context(), ownerID, id, req.Patch())
	if err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job updated successfully", dto.NewJobResponse(j))
}

func (h *JobsHandler) Delete(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}
	id, appErr := jobIDFromPath(c)
	if appErr != nil {
		return appErr
	}

	if err := h.uc.Delete(c.Context(), ownerID, id); err != nil {
		return mapJobError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func (h *JobsHandler) DeleteMany(c fiber.Ctx) error {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Access denied. No token provided.", nil, nil)
	}

	var req dto.DeleteManyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an array of job IDs", nil, err)
	}
	if len(req.IDs) == 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an array of job IDs", nil, nil)
	}

	// Malformed ids cannot match an owned record; they are dropped the same
	// way nonexistent ids are ignored.
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	var deleted int64
	if len(ids) > 0 {
		var err error
		deleted, err = h.uc.DeleteMany(c.Context(), ownerID, ids)
		if err != nil {
			return mapJobError(err)
		}
	}

	msg := fmt.Sprintf("%d jobs deleted successfully", deleted)
	return response.Success(c, fiber.StatusOK, msg, fiber.Map{"deletedCount": deleted})
}

func jobIDFromPath(c fiber.Ctx) (uuid.UUID, *middleware.AppError) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		var errs validation.Errors
		errs.Add("id", "Invalid ID format", c.Params("id"))
		return uuid.Nil, middleware.NewValidationError(errs)
	}
	return id, nil
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapJobError(err error) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return middleware.NewValidationError(verrs)
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucjob.ErrNoIDs):
		return middleware.NewAppError(fiber.StatusBadRequest, "Please provide an array of job IDs", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
