package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobpath/internal/delivery/http/middleware"
	"jobpath/internal/domain/job"
	"jobpath/internal/pkg/response"
	ucjob "jobpath/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type mockJobUsecase struct {
	created    job.JobApplication
	createErr  error
	got        job.JobApplication
	getErr     error
	listItems  []job.JobApplication
	listPg     ucjob.Pagination
	deleteErr  error
	deletedN   int64
	deletedIDs []uuid.UUID
	stats      job.Stats
}

func (m *mockJobUsecase) Create(_ context.Context, ownerID uuid.UUID, d job.Draft) (job.JobApplication, error) {
	if m.createErr != nil {
		return job.JobApplication{}, m.createErr
	}
	j := m.created
	j.UserID = ownerID
	j.Company = d.Company
	j.Position = d.Position
	j.Status = job.Status(d.Status)
	if d.ApplicationDate != nil {
		j.ApplicationDate = *d.ApplicationDate
	}
	return j, nil
}

func (m *mockJobUsecase) Get(_ context.Context, _, _ uuid.UUID) (job.JobApplication, error) {
	return m.got, m.getErr
}

func (m *mockJobUsecase) List(_ context.Context, _ uuid.UUID, _ ucjob.ListParams) ([]job.JobApplication, ucjob.Pagination, error) {
	return m.listItems, m.listPg, nil
}

func (m *mockJobUsecase) Update(_ context.Context, _, _ uuid.UUID, _ job.Patch) (job.JobApplication, error) {
	return m.got, m.getErr
}

func (m *mockJobUsecase) Delete(_ context.Context, _, _ uuid.UUID) error {
	return m.deleteErr
}

func (m *mockJobUsecase) DeleteMany(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (int64, error) {
	m.deletedIDs = ids
	return m.deletedN, nil
}

func (m *mockJobUsecase) Stats(_ context.Context, _ uuid.UUID) (job.Stats, error) {
	return m.stats, nil
}

// testApp mounts the handler behind the error middleware with a stub auth
// gate that injects owner. A nil owner mounts no gate at all, leaving the
// handlers to reject the missing identity themselves.
func testApp(uc ucjob.Usecase, owner *uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	grp := app.Group("/api/v1/jobs", func(c fiber.Ctx) error {
		if owner != nil {
			c.Locals(middleware.CtxUserIDKey, *owner)
		}
		return c.Next()
	})
	NewJobsHandler(uc).RegisterRoutes(grp)
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func sampleJob(owner uuid.UUID) job.JobApplication {
	return job.JobApplication{
		ID:              uuid.New(),
		UserID:          owner,
		Company:         "Acme",
		Position:        "Backend Engineer",
		Status:          job.StatusApplied,
		ApplicationDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
}

func TestJobs_RejectsMissingIdentity(t *testing.T) {
	app := testApp(&mockJobUsecase{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.False(t, env.Success)
	require.Equal(t, "Access denied. No token provided.", env.Message)
}

func TestJobs_GetNotFound(t *testing.T) {
	owner := uuid.New()
	app := testApp(&mockJobUsecase{getErr: job.ErrNotFound}, &owner)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/"+uuid.NewString(), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.Equal(t, "Job not found", env.Message)
}

func TestJobs_GetMalformedID(t *testing.T) {
	owner := uuid.New()
	app := testApp(&mockJobUsecase{}, &owner)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/not-a-uuid", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.Equal(t, response.MessageValidationFailed, env.Message)
	require.NotNil(t, env.Errors)
}

func TestJobs_CreateSuccess(t *testing.T) {
	owner := uuid.New()
	uc := &mockJobUsecase{created: sampleJob(owner)}
	app := testApp(uc, &owner)

	body, _ := json.Marshal(map[string]string{
		"company":         "Acme",
		"position":        "Backend Engineer",
		"status":          "applied",
		"applicationDate": "2025-01-10",
	})
	req := httptest.NewRequest("POST", "/api/v1/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)
	require.Equal(t, "Job created successfully", env.Message)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Acme", data["company"])
	require.Equal(t, "2025-01-10", data["applicationDate"])
	require.NotContains(t, data, "userId")
}

func TestJobs_CreateValidationFailure(t *testing.T) {
	owner := uuid.New()
	app := testApp(&mockJobUsecase{}, &owner)

	body, _ := json.Marshal(map[string]string{"status": "ghosted"})
	req := httptest.NewRequest("POST", "/api/v1/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.False(t, env.Success)
	require.Equal(t, response.MessageValidationFailed, env.Message)

	errsList, ok := env.Errors.([]any)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(errsList), 4)
}

func TestJobs_ListCarriesPagination(t *testing.T) {
	owner := uuid.New()
	uc := &mockJobUsecase{
		listItems: []job.JobApplication{sampleJob(owner)},
		listPg:    ucjob.Pagination{Page: 1, Limit: 50, Total: 1, Pages: 1},
	}
	app := testApp(uc, &owner)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs?status=applied", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.True(t, env.Success)
	pg, ok := env.Pagination.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), pg["total"])
	require.Equal(t, float64(50), pg["limit"])
}

func TestJobs_ListRejectsBadPage(t *testing.T) {
	owner := uuid.New()
	app := testApp(&mockJobUsecase{}, &owner)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs?page=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJobs_DeleteManyRequiresIDs(t *testing.T) {
	owner := uuid.New()
	app := testApp(&mockJobUsecase{}, &owner)

	body, _ := json.Marshal(map[string]any{"ids": []string{}})
	req := httptest.NewRequest("DELETE", "/api/v1/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.Equal(t, "Please provide an array of job IDs", env.Message)
}

func TestJobs_DeleteManyRejectsNonArrayIDs(t *testing.T) {
	owner := uuid.New()
	app := testApp(&mockJobUsecase{}, &owner)

	req := httptest.NewRequest("DELETE", "/api/v1/jobs", strings.NewReader(`{"ids":"abc"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	require.Equal(t, "Please provide an array of job IDs", env.Message)
}

func TestJobs_DeleteManySkipsMalformedIDs(t *testing.T) {
	owner := uuid.New()
	uc := &mockJobUsecase{deletedN: 1}
	app := testApp(uc, &owner)

	valid := uuid.NewString()
	body, _ := json.Marshal(map[string]any{"ids": []string{valid, "junk"}})
	req := httptest.NewRequest("DELETE", "/api/v1/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, uc.deletedIDs, 1)
	require.Equal(t, valid, uc.deletedIDs[0].String())

	env := decodeEnvelope(t, resp.Body)
	require.Equal(t, "1 jobs deleted successfully", env.Message)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(1), data["deletedCount"])
}

func TestJobs_StatsShape(t *testing.T) {
	owner := uuid.New()
	uc := &mockJobUsecase{stats: job.Stats{Total: 2, Applied: 1, Offered: 1}}
	app := testApp(uc, &owner)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/jobs/stats", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"total", "applied", "interviewing", "offered", "rejected"} {
		require.Contains(t, data, key)
	}
	require.Equal(t, float64(2), data["total"])
}
