package postgres

import (
	"context"
	"fmt"
	"strings"

	"jobpath/internal/database"
	"jobpath/internal/domain/job"

	"github.com/google/uuid"
)

// Column whitelist for client-supplied sort keys. Anything else falls back
// to created_at.
var jobSortColumns = map[string]string{
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	"applicationDate": "application_date",
	"company":         "company",
	"position":        "position",
	"status":          "status",
}

const jobColumns = `id, user_id, company, position, status, application_date,
	location, salary, description, notes, created_at, updated_at`

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.JobApplication) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, user_id, company, position, status, application_date,
			location, salary, description, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		j.ID, j.UserID, j.Company, j.Position, string(j.Status), j.ApplicationDate,
		j.Location, j.Salary, j.Description, j.Notes, j.CreatedAt, j.UpdatedAt,
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (job.JobApplication, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context, ownerID uuid.UUID, f job.ListFilter) ([]job.JobApplication, int64, error) {
	where := []string{"user_id = $1"}
	args := []any{ownerID}

	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(company ILIKE $%d OR position ILIKE $%d OR location ILIKE $%d)", n, n, n,
		))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+cond, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := jobSortColumns[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	q := fmt.Sprintf(
		`SELECT %s FROM jobs WHERE %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d`,
		jobColumns, cond, col, dir, dir, len(args)-1, len(args),
	)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]job.JobApplication, 0)
	for rows.Next() {
		j, err := scanJobFromRows(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.JobApplication) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET company = $3, position = $4, status = $5, application_date = $6,
		     location = $7, salary = $8, description = $9, notes = $10, updated_at = $11
		 WHERE id = $1 AND user_id = $2`,
		j.ID, j.UserID, j.Company, j.Position, string(j.Status), j.ApplicationDate,
		j.Location, j.Salary, j.Description, j.Notes, j.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) DeleteMany(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}
	return r.db.Exec(ctx,
		`DELETE FROM jobs WHERE user_id = $1 AND id = ANY($2::uuid[])`,
		ownerID, strIDs,
	)
}

func (r *JobRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM jobs WHERE user_id = $1`, ownerID)
}

func (r *JobRepository) CountByStatus(ctx context.Context, ownerID uuid.UUID) (job.Stats, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM jobs WHERE user_id = $1 GROUP BY status`,
		ownerID,
	)
	if err != nil {
		return job.Stats{}, err
	}
	defer rows.Close()

	var stats job.Stats
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return job.Stats{}, err
		}
		switch job.Status(status) {
		case job.StatusApplied:
			stats.Applied = count
		case job.StatusInterviewing:
			stats.Interviewing = count
		case job.StatusOffered:
			stats.Offered = count
		case job.StatusRejected:
			stats.Rejected = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return job.Stats{}, err
	}
	return stats, nil
}

type jobRow interface {
	Scan(dest ...any) error
}

func scanJob(row jobRow) (job.JobApplication, error) {
	var j job.JobApplication
	var status string
	err := row.Scan(
		&j.ID, &j.UserID, &j.Company, &j.Position, &status, &j.ApplicationDate,
		&j.Location, &j.Salary, &j.Description, &j.Notes, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return job.JobApplication{}, job.ErrNotFound
		}
		return job.JobApplication{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

func scanJobFromRows(rows database.Rows) (job.JobApplication, error) {
	var j job.JobApplication
	var status string
	err := rows.Scan(
		&j.ID, &j.UserID, &j.Company, &j.Position, &status, &j.ApplicationDate,
		&j.Location, &j.Salary, &j.Description, &j.Notes, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.JobApplication{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}

// escapeLike neutralizes LIKE metacharacters so search terms match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
