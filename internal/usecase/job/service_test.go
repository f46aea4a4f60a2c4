package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobpath/internal/domain/job"
	"jobpath/internal/pkg/validation"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type mockJobRepo struct {
	created    *job.JobApplication
	updated    *job.JobApplication
	getResult  job.JobApplication
	getErr     error
	listItems  []job.JobApplication
	listTotal  int64
	listFilter job.ListFilter
	listOwner  uuid.UUID
	deleted    int64
	stats      job.Stats
	err        error
}

func (m *mockJobRepo) Create(_ context.Context, j job.JobApplication) error {
	m.created = &j
	return m.err
}

func (m *mockJobRepo) GetByID(_ context.Context, _, _ uuid.UUID) (job.JobApplication, error) {
	return m.getResult, m.getErr
}

func (m *mockJobRepo) List(_ context.Context, ownerID uuid.UUID, f job.ListFilter) ([]job.JobApplication, int64, error) {
	m.listOwner = ownerID
	m.listFilter = f
	return m.listItems, m.listTotal, m.err
}

func (m *mockJobRepo) Update(_ context.Context, j job.JobApplication) error {
	m.updated = &j
	return m.err
}

func (m *mockJobRepo) Delete(_ context.Context, _, _ uuid.UUID) error { return m.err }

func (m *mockJobRepo) DeleteMany(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.deleted > 0 {
		return m.deleted, nil
	}
	return int64(len(ids)), nil
}

func (m *mockJobRepo) DeleteByOwner(_ context.Context, _ uuid.UUID) (int64, error) {
	return m.deleted, m.err
}

func (m *mockJobRepo) CountByStatus(_ context.Context, _ uuid.UUID) (job.Stats, error) {
	return m.stats, m.err
}

type mockStatsCache struct {
	stored  map[string]job.Stats
	deleted []string
}

func newMockStatsCache() *mockStatsCache {
	return &mockStatsCache{stored: map[string]job.Stats{}}
}

func (m *mockStatsCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	s, ok := m.stored[key]
	if !ok {
		return false, nil
	}
	*(out.(*job.Stats)) = s
	return true, nil
}

func (m *mockStatsCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if s, ok := value.(job.Stats); ok {
		m.stored[key] = s
	}
	return nil
}

func (m *mockStatsCache) Delete(_ context.Context, keys ...string) error {
	m.deleted = append(m.deleted, keys...)
	return nil
}

func fixedService(repo *mockJobRepo, cache StatsCache) *Service {
	s := NewService(repo, cache, nil)
	s.now = func() time.Time { return testNow }
	return s
}

func validDraft() job.Draft {
	return job.Draft{
		Company:         "Acme",
		Position:        "Backend Engineer",
		Status:          "applied",
		ApplicationDate: datePtr(testNow.AddDate(0, 0, -3)),
	}
}

func datePtr(t time.Time) *time.Time { return &t }

func TestCreate_SetsOwnerAndTimestamps(t *testing.T) {
	repo := &mockJobRepo{}
	cache := newMockStatsCache()
	svc := fixedService(repo, cache)
	owner := uuid.New()

	j, err := svc.Create(context.Background(), owner, validDraft())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.created == nil {
		t.Fatalf("repo.Create not called")
	}
	if j.UserID != owner {
		t.Fatalf("owner not set: %v", j.UserID)
	}
	if j.ID == uuid.Nil {
		t.Fatalf("id not assigned")
	}
	if !j.CreatedAt.Equal(testNow) || !j.UpdatedAt.Equal(testNow) {
		t.Fatalf("timestamps not set: %+v", j)
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("stats cache not invalidated")
	}
}

func TestCreate_InvalidDraftSkipsRepo(t *testing.T) {
	repo := &mockJobRepo{}
	svc := fixedService(repo, nil)

	_, err := svc.Create(context.Background(), uuid.New(), job.Draft{})
	var verrs validation.Errors
	if !errors.As(err, &verrs) || !verrs.HasErrors() {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("repo.Create must not run on invalid input")
	}
}

func TestList_PaginationMath(t *testing.T) {
	repo := &mockJobRepo{listTotal: 101}
	svc := fixedService(repo, nil)
	owner := uuid.New()

	_, pg, err := svc.List(context.Background(), owner, ListParams{Page: 2, Limit: 50})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.listOwner != owner {
		t.Fatalf("owner not forwarded")
	}
	if repo.listFilter.Offset != 50 || repo.listFilter.Limit != 50 {
		t.Fatalf("unexpected window: %+v", repo.listFilter)
	}
	if pg.Pages != 3 {
		t.Fatalf("expected 3 pages for 101/50, got %d", pg.Pages)
	}
	if pg.Total != 101 || pg.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", pg)
	}
}

func TestList_ClampsPageAndLimit(t *testing.T) {
	repo := &mockJobRepo{}
	svc := fixedService(repo, nil)

	_, pg, err := svc.List(context.Background(), uuid.New(), ListParams{Page: -3, Limit: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if pg.Page != DefaultPage || pg.Limit != DefaultLimit {
		t.Fatalf("expected defaults, got %+v", pg)
	}
	if repo.listFilter.Offset != 0 {
		t.Fatalf("expected zero offset, got %d", repo.listFilter.Offset)
	}
}

func TestUpdate_MergedDateMustNotBeFuture(t *testing.T) {
	existing := job.JobApplication{
		ID:              uuid.New(),
		Company:         "Acme",
		Position:        "Backend Engineer",
		Status:          job.StatusApplied,
		ApplicationDate: testNow.AddDate(0, 0, 5),
	}
	repo := &mockJobRepo{getResult: existing}
	svc := fixedService(repo, nil)

	// The patch leaves applicationDate alone; the stored future date must
	// still be rejected before commit.
	status := "interviewing"
	_, err := svc.Update(context.Background(), uuid.New(), existing.ID, job.Patch{Status: &status})

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "applicationDate" {
		t.Fatalf("expected applicationDate error, got %v", verrs)
	}
	if repo.updated != nil {
		t.Fatalf("repo.Update must not run")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockJobRepo{getErr: job.ErrNotFound}
	svc := fixedService(repo, nil)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), job.Patch{})
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMany_EmptyInput(t *testing.T) {
	svc := fixedService(&mockJobRepo{}, nil)
	_, err := svc.DeleteMany(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrNoIDs) {
		t.Fatalf("expected ErrNoIDs, got %v", err)
	}
}

func TestDeleteMany_InvalidatesStatsOnDeletion(t *testing.T) {
	cache := newMockStatsCache()
	svc := fixedService(&mockJobRepo{}, cache)

	n, err := svc.DeleteMany(context.Background(), uuid.New(), []uuid.UUID{uuid.New(), uuid.New()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deletions, got %d", n)
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("stats cache not invalidated")
	}
}

func TestStats_CacheMissThenHit(t *testing.T) {
	repo := &mockJobRepo{stats: job.Stats{Total: 3, Applied: 2, Rejected: 1}}
	cache := newMockStatsCache()
	svc := fixedService(repo, cache)
	owner := uuid.New()

	got, err := svc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != repo.stats {
		t.Fatalf("unexpected stats: %+v", got)
	}

	// Second call must be served from the cache even if the repo changes.
	repo.stats = job.Stats{Total: 99}
	got, err = svc.Stats(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Total != 3 {
		t.Fatalf("expected cached stats, got %+v", got)
	}
}

func TestStats_RepoError(t *testing.T) {
	repo := &mockJobRepo{err: errors.New("boom")}
	svc := fixedService(repo, nil)

	_, err := svc.Stats(context.Background(), uuid.New())
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
