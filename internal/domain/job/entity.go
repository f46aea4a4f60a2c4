package job

import (
	"time"

	"github.com/google/uuid"
)

// Status is the user-assigned stage of an application. There is no enforced
// transition graph; any status may move to any other via update.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusRejected     Status = "rejected"
	StatusOffered      Status = "offered"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusApplied, StatusInterviewing, StatusRejected, StatusOffered:
		return true
	}
	return false
}

// JobApplication is one tracked application. UserID is fixed at creation and
// never writable through the API.
type JobApplication struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Company         string
	Position        string
	Status          Status
	ApplicationDate time.Time
	Location        string
	Salary          string
	Description     string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Stats aggregates one owner's records per status. All keys are always
// populated, zero included.
type Stats struct {
	Total        int64
	Applied      int64
	Interviewing int64
	Offered      int64
	Rejected     int64
}
