package dto

import "jobpath/internal/domain/job"

type CreateJobRequest struct {
	Company         string `json:"company" validate:"required,max=200"`
	Position        string `json:"position" validate:"required,max=200"`
	Status          string `json:"status" validate:"required,oneof=applied interviewing rejected offered"`
	ApplicationDate string `json:"applicationDate" validate:"required,dateformat,notfuture"`
	Location        string `json:"location" validate:"omitempty,max=200"`
	Salary          string `json:"salary" validate:"omitempty,max=100"`
	Description     string `json:"description" validate:"omitempty,max=2000"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

// Draft converts the validated request into domain input. The owner is
// deliberately absent: it always comes from the authenticated identity.
func (r CreateJobRequest) Draft() job.Draft {
	d := job.Draft{
		Company:     r.Company,
		Position:    r.Position,
		Status:      r.Status,
		Location:    r.Location,
		Salary:      r.Salary,
		Description: r.Description,
		Notes:       r.Notes,
	}
	if t, ok := job.ParseDate(r.ApplicationDate); ok {
		d.ApplicationDate = &t
	}
	return d
}

type UpdateJobRequest struct {
	Company         *string `json:"company" validate:"omitnil,min=1,max=200"`
	Position        *string `json:"position" validate:"omitnil,min=1,max=200"`
	Status          *string `json:"status" validate:"omitnil,oneof=applied interviewing rejected offered"`
	ApplicationDate *string `json:"applicationDate" validate:"omitnil,dateformat,notfuture"`
	Location        *string `json:"location" validate:"omitnil,max=200"`
	Salary          *string `json:"salary" validate:"omitnil,max=100"`
	Description     *string `json:"description" validate:"omitnil,max=2000"`
	Notes           *string `json:"notes" validate:"omitnil,max=2000"`
}

func (r UpdateJobRequest) Patch() job.Patch {
	p := job.Patch{
		Company:     r.Company,
		Position:    r.Position,
		Status:      r.Status,
		Location:    r.Location,
		Salary:      r.Salary,
		Description: r.Description,
		Notes:       r.Notes,
	}
	if r.ApplicationDate != nil {
		if t, ok := job.ParseDate(*r.ApplicationDate); ok {
			p.ApplicationDate = &t
		}
	}
	return p
}

type DeleteManyRequest struct {
	IDs []string `json:"ids"`
}

type SummarizeJobRequest struct {
	Description string `json:"description"`
	Position    string `json:"position"`
	Company     string `json:"company"`
}
