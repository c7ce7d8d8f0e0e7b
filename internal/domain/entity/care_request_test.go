package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCareRequestStates(t *testing.T) {
	r := &CareRequest{Status: CareRequestStatusPending}
	if !r.IsPending() {
		t.Error("pending request should report IsPending")
	}
	if r.IsTerminal() {
		t.Error("pending request should not be terminal")
	}

	for _, s := range []CareRequestStatus{CareRequestStatusAccepted, CareRequestStatusRejected} {
		r := &CareRequest{Status: s}
		if r.IsPending() {
			t.Errorf("%q request should not report IsPending", s)
		}
		if !r.IsTerminal() {
			t.Errorf("%q request should be terminal", s)
		}
	}
}

func TestValidCareRequestDecision(t *testing.T) {
	for _, d := range []string{"accepted", "rejected"} {
		if !ValidCareRequestDecision(d) {
			t.Errorf("ValidCareRequestDecision(%q) = false, want true", d)
		}
	}
	for _, d := range []string{"pending", "approved", "", "ACCEPTED"} {
		if ValidCareRequestDecision(d) {
			t.Errorf("ValidCareRequestDecision(%q) = true, want false", d)
		}
	}
}

func TestCareAssignmentOwnedBy(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()
	a := &CareAssignment{PatientID: patientID, DoctorID: doctorID}

	if !a.OwnedBy(patientID) {
		t.Error("assignment should be owned by its patient")
	}
	if !a.OwnedBy(doctorID) {
		t.Error("assignment should be owned by its doctor")
	}
	if a.OwnedBy(uuid.New()) {
		t.Error("assignment should not be owned by a third party")
	}
}

func TestPatientProfileAge(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	dob := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	p := &PatientProfile{DateOfBirth: &dob}
	if got := p.Age(now); got != 35 {
		t.Errorf("Age on birthday = %d, want 35", got)
	}

	dobLater := time.Date(1990, time.December, 1, 0, 0, 0, 0, time.UTC)
	p = &PatientProfile{DateOfBirth: &dobLater}
	if got := p.Age(now); got != 34 {
		t.Errorf("Age before birthday = %d, want 34", got)
	}

	p = &PatientProfile{}
	if got := p.Age(now); got != -1 {
		t.Errorf("Age without date of birth = %d, want -1", got)
	}
}

func TestRoleName(t *testing.T) {
	if got := RoleName(RoleIDDoctor); got != RoleDoctor {
		t.Errorf("RoleName(doctor) = %q", got)
	}
	if got := RoleName(RoleIDPatient); got != RolePatient {
		t.Errorf("RoleName(patient) = %q", got)
	}
	if got := RoleName(99); got != "" {
		t.Errorf("RoleName(99) = %q, want empty", got)
	}
}
