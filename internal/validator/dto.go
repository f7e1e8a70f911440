package validator

import (
	"time"
)

// NominationCreateRequest opens an evaluation record for a student in a
// semester. Any subset of the three examiner slots may be supplied; the
// status is derived from completeness, never submitted.
type NominationCreateRequest struct {
	StudentID    uint   `json:"student_id" validate:"required"`
	Semester     int    `json:"semester" validate:"required,semester"`
	AcademicYear string `json:"academic_year" validate:"required,academic_year"`
	Examiner1ID  *uint  `json:"examiner1_id"`
	Examiner2ID  *uint  `json:"examiner2_id"`
	Examiner3ID  *uint  `json:"examiner3_id"`
}

// NominationUpdateRequest replaces the examiner slots of an existing
// evaluation. A nil slot clears the examiner; removing one demotes a
// Nominated record back to Pending.
type NominationUpdateRequest struct {
	Examiner1ID *uint `json:"examiner1_id"`
	Examiner2ID *uint `json:"examiner2_id"`
	Examiner3ID *uint `json:"examiner3_id"`
}

// PostponeRequest defers an evaluation to a later date.
type PostponeRequest struct {
	Reason      string    `json:"reason" validate:"required,max=500"`
	PostponedTo time.Time `json:"postponed_to" validate:"required,future_date"`
}

// ChairpersonAssignmentItem is one tuple of a chairperson assignment batch.
type ChairpersonAssignmentItem struct {
	EvaluationID   uint    `json:"evaluation_id" validate:"required"`
	ChairpersonID  uint    `json:"chairperson_id" validate:"required"`
	Semester       *int    `json:"semester" validate:"omitempty,semester"`
	AcademicYear   *string `json:"academic_year" validate:"omitempty,academic_year"`
	IsAutoAssigned bool    `json:"is_auto_assigned"`
}

// ChairpersonAssignmentRequest carries a whole batch; the batch commits
// atomically or not at all.
type ChairpersonAssignmentRequest struct {
	Assignments []ChairpersonAssignmentItem `json:"assignments" validate:"required,min=1,dive"`
}

// LockBatchRequest locks a list of evaluations, skipping ids already locked.
type LockBatchRequest struct {
	EvaluationIDs []uint `json:"evaluation_ids" validate:"required,min=1"`
}
