package validator

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Status   string `validate:"omitempty,oneof=accepted rejected"`
	DoctorID string `validate:"omitempty,uuid"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()

	req := sampleRequest{
		Email:    "user@example.com",
		Password: "supersecret",
		Status:   "accepted",
		DoctorID: "7a9cfd9e-3f42-4a5a-9a3e-0f8d1f1f2a3b",
	}
	if err := cv.Validate(&req); err != nil {
		t.Errorf("valid struct failed validation: %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	req := sampleRequest{
		Email:    "not-an-email",
		Password: "short",
		Status:   "maybe",
		DoctorID: "not-a-uuid",
	}
	err := cv.Validate(&req)
	if err == nil {
		t.Fatal("invalid struct passed validation")
	}

	formatted := cv.FormatValidationErrors(err)

	if msg := formatted["Email"]; !strings.Contains(msg, "valid email") {
		t.Errorf("Email message = %q", msg)
	}
	if msg := formatted["Password"]; !strings.Contains(msg, "at least 8") {
		t.Errorf("Password message = %q", msg)
	}
	if msg := formatted["Status"]; !strings.Contains(msg, "one of: accepted rejected") {
		t.Errorf("Status message = %q", msg)
	}
	if msg := formatted["DoctorID"]; !strings.Contains(msg, "valid UUID") {
		t.Errorf("DoctorID message = %q", msg)
	}
}

func TestFormatValidationErrorsRequired(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{})
	if err == nil {
		t.Fatal("empty struct passed validation")
	}

	formatted := cv.FormatValidationErrors(err)
	if msg := formatted["Email"]; msg != "Email is required" {
		t.Errorf("Email message = %q", msg)
	}
	if msg := formatted["Password"]; msg != "Password is required" {
		t.Errorf("Password message = %q", msg)
	}
}
