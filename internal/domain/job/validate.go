package job

import (
	"strings"
	"time"
	"unicode/utf8"

	"jobpath/internal/pkg/validation"
)

const (
	MaxCompanyLen     = 200
	MaxPositionLen    = 200
	MaxLocationLen    = 200
	MaxSalaryLen      = 100
	MaxDescriptionLen = 2000
	MaxNotesLen       = 2000
)

// Draft holds the writable fields of a new application, already parsed. A
// nil ApplicationDate means the field was not supplied; this keeps a client
// sending "0001-01-01" distinguishable from one sending nothing.
type Draft struct {
	Company         string
	Position        string
	Status          string
	ApplicationDate *time.Time
	Location        string
	Salary          string
	Description     string
	Notes           string
}

// Patch holds a partial update; nil means "leave unchanged".
type Patch struct {
	Company         *string
	Position        *string
	Status          *string
	ApplicationDate *time.Time
	Location        *string
	Salary          *string
	Description     *string
	Notes           *string
}

// DateNotFuture is the single source of truth for the application-date
// invariant. Both the request validator and the pre-commit check call it.
func DateNotFuture(d, now time.Time) bool {
	return !d.After(now)
}

// TextLen measures field limits in characters, the same unit the request
// validator's max= rules count, so the two layers cannot disagree on
// multibyte input.
func TextLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ParseDate accepts a bare calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// Normalize trims every text field.
func (d Draft) Normalize() Draft {
	d.Company = strings.TrimSpace(d.Company)
	d.Position = strings.TrimSpace(d.Position)
	d.Status = strings.TrimSpace(d.Status)
	d.Location = strings.TrimSpace(d.Location)
	d.Salary = strings.TrimSpace(d.Salary)
	d.Description = strings.TrimSpace(d.Description)
	d.Notes = strings.TrimSpace(d.Notes)
	return d
}

// ValidateDraft checks every field rule and reports all violations at once.
func ValidateDraft(d Draft, now time.Time) validation.Errors {
	var errs validation.Errors

	if d.Company == "" {
		errs.Add("company", "Company name is required", d.Company)
	} else if TextLen(d.Company) > MaxCompanyLen {
		errs.Add("company", "Company name cannot exceed 200 characters", d.Company)
	}

	if d.Position == "" {
		errs.Add("position", "Position is required", d.Position)
	} else if TextLen(d.Position) > MaxPositionLen {
		errs.Add("position", "Position cannot exceed 200 characters", d.Position)
	}

	if !ValidStatus(d.Status) {
		errs.Add("status", "Status must be one of: applied, interviewing, rejected, offered", d.Status)
	}

	if d.ApplicationDate == nil {
		errs.Add("applicationDate", "Application date is required", nil)
	} else if !DateNotFuture(*d.ApplicationDate, now) {
		errs.Add("applicationDate", "Application date cannot be in the future", d.ApplicationDate.Format("2006-01-02"))
	}

	validateOptionalText(&errs, "location", d.Location, MaxLocationLen, "Location cannot exceed 200 characters")
	validateOptionalText(&errs, "salary", d.Salary, MaxSalaryLen, "Salary cannot exceed 100 characters")
	validateOptionalText(&errs, "description", d.Description, MaxDescriptionLen, "Description cannot exceed 2000 characters")
	validateOptionalText(&errs, "notes", d.Notes, MaxNotesLen, "Notes cannot exceed 2000 characters")

	return errs
}

// Normalize trims every supplied text field of the patch.
func (p Patch) Normalize() Patch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		return &t
	}
	p.Company = trim(p.Company)
	p.Position = trim(p.Position)
	p.Status = trim(p.Status)
	p.Location = trim(p.Location)
	p.Salary = trim(p.Salary)
	p.Description = trim(p.Description)
	p.Notes = trim(p.Notes)
	return p
}

// ValidatePatch checks only the supplied fields; required fields may be
// omitted but not blanked.
func ValidatePatch(p Patch, now time.Time) validation.Errors {
	var errs validation.Errors

	if p.Company != nil {
		if *p.Company == "" {
			errs.Add("company", "Company name cannot be empty", *p.Company)
		} else if TextLen(*p.Company) > MaxCompanyLen {
			errs.Add("company", "Company name cannot exceed 200 characters", *p.Company)
		}
	}

	if p.Position != nil {
		if *p.Position == "" {
			errs.Add("position", "Position cannot be empty", *p.Position)
		} else if TextLen(*p.Position) > MaxPositionLen {
			errs.Add("position", "Position cannot exceed 200 characters", *p.Position)
		}
	}

	if p.Status != nil && !ValidStatus(*p.Status) {
		errs.Add("status", "Status must be one of: applied, interviewing, rejected, offered", *p.Status)
	}

	if p.ApplicationDate != nil && !DateNotFuture(*p.ApplicationDate, now) {
		errs.Add("applicationDate", "Application date cannot be in the future", p.ApplicationDate.Format("2006-01-02"))
	}

	if p.Location != nil {
		validateOptionalText(&errs, "location", *p.Location, MaxLocationLen, "Location cannot exceed 200 characters")
	}
	if p.Salary != nil {
		validateOptionalText(&errs, "salary", *p.Salary, MaxSalaryLen, "Salary cannot exceed 100 characters")
	}
	if p.Description != nil {
		validateOptionalText(&errs, "description", *p.Description, MaxDescriptionLen, "Description cannot exceed 2000 characters")
	}
	if p.Notes != nil {
		validateOptionalText(&errs, "notes", *p.Notes, MaxNotesLen, "Notes cannot exceed 2000 characters")
	}

	return errs
}

// Apply overlays the patch onto an existing record; untouched fields keep
// their prior values.
func (p Patch) Apply(j JobApplication) JobApplication {
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.Position != nil {
		j.Position = *p.Position
	}
	if p.Status != nil {
		j.Status = Status(*p.Status)
	}
	if p.ApplicationDate != nil {
		j.ApplicationDate = *p.ApplicationDate
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Notes != nil {
		j.Notes = *p.Notes
	}
	return j
}

func validateOptionalText(errs *validation.Errors, field, value string, max int, msg string) {
	if value == "" {
		return
	}
	if TextLen(value) > max {
		errs.Add(field, msg, value)
	}
}
