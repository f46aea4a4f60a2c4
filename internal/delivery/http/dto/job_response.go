package dto

import (
	"time"

	"jobpath/internal/domain/job"

	"github.com/google/uuid"
)

// JobResponse is the wire form of one application. The owner reference is
// intentionally not serialized.
type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	Company         string    `json:"company"`
	Position        string    `json:"position"`
	Status          string    `json:"status"`
	ApplicationDate string    `json:"applicationDate"`
	Location        string    `json:"location,omitempty"`
	Salary          string    `json:"salary,omitempty"`
	Description     string    `json:"description,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewJobResponse(j job.JobApplication) JobResponse {
	return JobResponse{
		ID:              j.ID,
		Company:         j.Company,
		Position:        j.Position,
		Status:          string(j.Status),
		ApplicationDate: j.ApplicationDate.UTC().Format("2006-01-02"),
		Location:        j.Location,
		Salary:          j.Salary,
		Description:     j.Description,
		Notes:           j.Notes,
		CreatedAt:       j.CreatedAt.UTC(),
		UpdatedAt:       j.UpdatedAt.UTC(),
	}
}

func NewJobListResponse(items []job.JobApplication) []JobResponse {
	out := make([]JobResponse, 0, len(items))
	for _, j := range items {
		out = append(out, NewJobResponse(j))
	}
	return out
}

// StatsResponse always carries every status key, zeros included.
type StatsResponse struct {
	Total        int64 `json:"total"`
	Applied      int64 `json:"applied"`
	Interviewing int64 `json:"interviewing"`
	Offered      int64 `json:"offered"`
	Rejected     int64 `json:"rejected"`
}

func NewStatsResponse(s job.Stats) StatsResponse {
	return StatsResponse{
		Total:        s.Total,
		Applied:      s.Applied,
		Interviewing: s.Interviewing,
		Offered:      s.Offered,
		Rejected:     s.Rejected,
	}
}
