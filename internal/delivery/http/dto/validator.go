package dto

import (
	"reflect"
	"strings"
	"time"

	"jobpath/internal/domain/job"
	"jobpath/internal/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// Shared request validator. Custom rules reuse the domain's pure checks so
// the API boundary and the pre-commit check cannot drift apart.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, ok := job.ParseDate(fl.Field().String())
		return ok
	})

	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		d, ok := job.ParseDate(fl.Field().String())
		if !ok {
			// dateformat reports the parse failure.
			return true
		}
		return job.DateNotFuture(d, time.Now().UTC())
	})

	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		var lower, upper, digit bool
		for _, r := range pw {
			switch {
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			}
		}
		return lower && upper && digit
	})

	return v
}

// Check runs the shared validator and translates every violation into a
// field-level error, one entry per failing constraint.
func Check(s any) validation.Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		var errs validation.Errors
		errs.Add("", "invalid request payload", nil)
		return errs
	}

	var errs validation.Errors
	for _, fe := range verrs {
		errs.Add(fe.Field(), messageFor(fe.Field(), fe.Tag()), fe.Value())
	}
	return errs
}

func messageFor(field, tag string) string {
	switch field {
	case "company":
		switch tag {
		case "required":
			return "Company name is required"
		case "min":
			return "Company name cannot be empty"
		case "max":
			return "Company name cannot exceed 200 characters"
		}
	case "position":
		switch tag {
		case "required":
			return "Position is required"
		case "min":
			return "Position cannot be empty"
		case "max":
			return "Position cannot exceed 200 characters"
		}
	case "status":
		return "Status must be one of: applied, interviewing, rejected, offered"
	case "applicationDate":
		switch tag {
		case "required":
			return "Application date is required"
		case "dateformat":
			return "Application date must be a valid date"
		case "notfuture":
			return "Application date cannot be in the future"
		}
	case "location":
		return "Location cannot exceed 200 characters"
	case "salary":
		return "Salary cannot exceed 100 characters"
	case "description":
		return "Description cannot exceed 2000 characters"
	case "notes":
		return "Notes cannot exceed 2000 characters"
	case "name":
		switch tag {
		case "required":
			return "Name is required"
		case "min", "max":
			return "Name must be between 2 and 100 characters"
		}
	case "email":
		return "Please provide a valid email"
	case "password":
		switch tag {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 6 characters"
		case "password":
			return "Password must contain at least one lowercase letter, one uppercase letter, and one number"
		}
	case "ids":
		return "Please provide an array of job IDs"
	}
	return "Invalid value"
}
