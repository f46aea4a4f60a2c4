package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobpath/internal/domain/job"
	"jobpath/internal/pkg/validation"

	"github.com/google/uuid"
)

var (
	ErrNoIDs    = errors.New("no ids provided")
	ErrInternal = errors.New("internal error")
)

const (
	DefaultPage  = 1
	DefaultLimit = 50

	statsCacheTTL = 5 * time.Minute
)

// ListParams are the recognized query options for listing an owner's records.
type ListParams struct {
	Status    string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Pagination describes the page that was returned and the filtered total.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type Usecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, d job.Draft) (job.JobApplication, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (job.JobApplication, error)
	List(ctx context.Context, ownerID uuid.UUID, p ListParams) ([]job.JobApplication, Pagination, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, p job.Patch) (job.JobApplication, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteMany(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (job.Stats, error)
}

// StatsCache is the slice of the redis cache the service uses. A nil cache
// disables caching entirely.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service is the job record store. Every method takes the owner identity as
// an explicit parameter; the repository conjoins it into every query, so no
// operation can see or touch another owner's records.
type Service struct {
	jobs   job.Repository
	cache  StatsCache
	logger *log.Logger
	now    func() time.Time
}

func NewService(jobs job.Repository, cache StatsCache, logger *log.Logger) *Service {
	return &Service{jobs: jobs, cache: cache, logger: logger, now: time.Now}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, d job.Draft) (job.JobApplication, error) {
	now := s.now().UTC()

	d = d.Normalize()
	if errs := job.ValidateDraft(d, now); errs.HasErrors() {
		return job.JobApplication{}, errs
	}

	j := job.JobApplication{
		ID:              uuid.New(),
		UserID:          ownerID,
		Company:         d.Company,
		Position:        d.Position,
		Status:          job.Status(d.Status),
		ApplicationDate: *d.ApplicationDate,
		Location:        d.Location,
		Salary:          d.Salary,
		Description:     d.Description,
		Notes:           d.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		s.logf("create job: %v", err)
		return job.JobApplication{}, ErrInternal
	}

	s.invalidateStats(ctx, ownerID)
	return j, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (job.JobApplication, error) {
	j, err := s.jobs.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.JobApplication{}, job.ErrNotFound
		}
		s.logf("get job: %v", err)
		return job.JobApplication{}, ErrInternal
	}
	return j, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID, p ListParams) ([]job.JobApplication, Pagination, error) {
	page := p.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	f := job.ListFilter{
		Status:    p.Status,
		Search:    p.Search,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}

	items, total, err := s.jobs.List(ctx, ownerID, f)
	if err != nil {
		s.logf("list jobs: %v", err)
		return nil, Pagination{}, ErrInternal
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return items, Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, p job.Patch) (job.JobApplication, error) {
	now := s.now().UTC()

	p = p.Normalize()
	if errs := job.ValidatePatch(p, now); errs.HasErrors() {
		return job.JobApplication{}, errs
	}

	existing, err := s.jobs.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.JobApplication{}, job.ErrNotFound
		}
		s.logf("load job for update: %v", err)
		return job.JobApplication{}, ErrInternal
	}

	merged := p.Apply(existing)

	// Second enforcement point: the merged record must still satisfy the
	// date invariant even when the patch left applicationDate untouched.
	if !job.DateNotFuture(merged.ApplicationDate, now) {
		var errs validation.Errors
		errs.Add("applicationDate", "Application date cannot be in the future",
			merged.ApplicationDate.Format("2006-01-02"))
		return job.JobApplication{}, errs
	}

	merged.UpdatedAt = now

	if err := s.jobs.Update(ctx, merged); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.JobApplication{}, job.ErrNotFound
		}
		s.logf("update job: %v", err)
		return job.JobApplication{}, ErrInternal
	}

	s.invalidateStats(ctx, ownerID)
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		s.logf("delete job: %v", err)
		return ErrInternal
	}
	s.invalidateStats(ctx, ownerID)
	return nil
}

// DeleteMany removes the intersection of ids and the owner's records. Ids
// that do not resolve to an owned record are ignored rather than reported.
func (s *Service) DeleteMany(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	deleted, err := s.jobs.DeleteMany(ctx, ownerID, ids)
	if err != nil {
		s.logf("delete jobs: %v", err)
		return 0, ErrInternal
	}
	if deleted > 0 {
		s.invalidateStats(ctx, ownerID)
	}
	return deleted, nil
}

func (s *Service) Stats(ctx context.Context, ownerID uuid.UUID) (job.Stats, error) {
	key := statsCacheKey(ownerID)

	if s.cache != nil {
		var cached job.Stats
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	stats, err := s.jobs.CountByStatus(ctx, ownerID)
	if err != nil {
		s.logf("job stats: %v", err)
		return job.Stats{}, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, stats, statsCacheTTL)
	}
	return stats, nil
}

func (s *Service) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, statsCacheKey(ownerID))
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf("[Jobs] "+format, args...)
	}
}

func statsCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("jobs:stats:%s", ownerID)
}
