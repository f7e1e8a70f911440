package validator

import (
	"testing"
	"time"
)

func TestValidateNominationCreateRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     NominationCreateRequest
		wantErr bool
	}{
		{
			name: "valid request",
			req:  NominationCreateRequest{StudentID: 1, Semester: 6, AcademicYear: "2025/2026"},
		},
		{
			name:    "missing student",
			req:     NominationCreateRequest{Semester: 6, AcademicYear: "2025/2026"},
			wantErr: true,
		},
		{
			name:    "semester out of range",
			req:     NominationCreateRequest{StudentID: 1, Semester: 21, AcademicYear: "2025/2026"},
			wantErr: true,
		},
		{
			name:    "non-consecutive academic year",
			req:     NominationCreateRequest{StudentID: 1, Semester: 6, AcademicYear: "2025/2027"},
			wantErr: true,
		},
		{
			name:    "malformed academic year",
			req:     NominationCreateRequest{StudentID: 1, Semester: 6, AcademicYear: "2025-2026"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePostponeRequest(t *testing.T) {
	v := New()

	valid := PostponeRequest{Reason: "Medical leave", PostponedTo: time.Now().AddDate(0, 1, 0)}
	if err := v.Validate(&valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	past := PostponeRequest{Reason: "Backdated", PostponedTo: time.Now().AddDate(0, -1, 0)}
	if err := v.Validate(&past); err == nil {
		t.Fatal("expected past dates to fail")
	}

	empty := PostponeRequest{PostponedTo: time.Now().AddDate(0, 1, 0)}
	if err := v.Validate(&empty); err == nil {
		t.Fatal("expected missing reason to fail")
	}
}

func TestValidateChairpersonAssignmentRequest(t *testing.T) {
	v := New()

	valid := ChairpersonAssignmentRequest{Assignments: []ChairpersonAssignmentItem{
		{EvaluationID: 1, ChairpersonID: 2},
	}}
	if err := v.Validate(&valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := ChairpersonAssignmentRequest{}
	if err := v.Validate(&empty); err == nil {
		t.Fatal("expected empty batch to fail")
	}

	badItem := ChairpersonAssignmentRequest{Assignments: []ChairpersonAssignmentItem{
		{EvaluationID: 1},
	}}
	if err := v.Validate(&badItem); err == nil {
		t.Fatal("expected missing chairperson to fail")
	}
}
