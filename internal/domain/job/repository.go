package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound covers both a missing id and an id owned by someone else, so
// callers cannot distinguish the two.
var ErrNotFound = errors.New("job not found")

// ListFilter narrows and orders an owner's records. The owner itself is not
// part of the filter: every repository method takes it as a mandatory
// parameter and conjoins it into the query.
type ListFilter struct {
	Status    string // empty or "all" means no status filter
	Search    string // case-insensitive substring over company/position/location
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

type Repository interface {
	Create(ctx context.Context, j JobApplication) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (JobApplication, error)
	List(ctx context.Context, ownerID uuid.UUID, f ListFilter) ([]JobApplication, int64, error)
	Update(ctx context.Context, j JobApplication) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteMany(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, ownerID uuid.UUID) (Stats, error)
}
