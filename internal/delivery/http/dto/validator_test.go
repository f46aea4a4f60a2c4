package dto

import (
	"strings"
	"testing"
	"time"
)

func validCreateRequest() CreateJobRequest {
	return CreateJobRequest{
		Company:         "Acme",
		Position:        "Backend Engineer",
		Status:          "applied",
		ApplicationDate: "2025-01-10",
	}
}

func TestCheck_ValidCreateRequest(t *testing.T) {
	if errs := Check(validCreateRequest()); errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestCheck_CollectsEveryViolation(t *testing.T) {
	req := CreateJobRequest{
		Status:          "ghosted",
		ApplicationDate: "not-a-date",
	}
	errs := Check(req)
	fields := map[string]string{}
	for _, fe := range errs {
		fields[fe.Field] = fe.Message
	}

	if fields["company"] != "Company name is required" {
		t.Fatalf("company: %q", fields["company"])
	}
	if fields["position"] != "Position is required" {
		t.Fatalf("position: %q", fields["position"])
	}
	if fields["status"] != "Status must be one of: applied, interviewing, rejected, offered" {
		t.Fatalf("status: %q", fields["status"])
	}
	if fields["applicationDate"] != "Application date must be a valid date" {
		t.Fatalf("applicationDate: %q", fields["applicationDate"])
	}
}

func TestCheck_FutureDateRejected(t *testing.T) {
	req := validCreateRequest()
	req.ApplicationDate = time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")

	errs := Check(req)
	if len(errs) != 1 || errs[0].Field != "applicationDate" {
		t.Fatalf("expected applicationDate error, got %v", errs)
	}
	if errs[0].Message != "Application date cannot be in the future" {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestCheck_LengthLimits(t *testing.T) {
	req := validCreateRequest()
	req.Company = strings.Repeat("x", 201)
	req.Notes = strings.Repeat("n", 2001)

	errs := Check(req)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}

func TestCheck_UpdateOmittedFieldsPass(t *testing.T) {
	if errs := Check(UpdateJobRequest{}); errs.HasErrors() {
		t.Fatalf("empty update must be valid, got %v", errs)
	}
}

func TestCheck_UpdateBlankCompanyRejected(t *testing.T) {
	empty := ""
	errs := Check(UpdateJobRequest{Company: &empty})
	if len(errs) != 1 || errs[0].Message != "Company name cannot be empty" {
		t.Fatalf("expected blank-company error, got %v", errs)
	}
}

func TestCheck_RegisterPasswordRules(t *testing.T) {
	req := RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "alllowercase1"}
	errs := Check(req)
	if len(errs) != 1 || errs[0].Field != "password" {
		t.Fatalf("expected password error, got %v", errs)
	}

	req.Password = "Str0ngEnough"
	if errs := Check(req); errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestCheck_RegisterBadEmail(t *testing.T) {
	req := RegisterRequest{Name: "Jane", Email: "not-an-email", Password: "Str0ngEnough"}
	errs := Check(req)
	if len(errs) != 1 || errs[0].Message != "Please provide a valid email" {
		t.Fatalf("expected email error, got %v", errs)
	}
}
