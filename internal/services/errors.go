package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing entities
var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrLecturerNotFound   = errors.New("lecturer not found")
	ErrUserNotFound       = errors.New("user not found")
)

// PermissionError is returned when the actor may not perform the operation
// on the resource.
type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// LockedRecordError is returned when a mutation targets a Locked evaluation.
type LockedRecordError struct {
	EvaluationID uint `json:"evaluation_id"`
}

func (e *LockedRecordError) Error() string {
	return fmt.Sprintf("evaluation %d is locked and cannot be modified", e.EvaluationID)
}

// DuplicateNominationError is returned when a student already has an
// evaluation record in the semester.
type DuplicateNominationError struct {
	StudentID uint `json:"student_id"`
	Semester  int  `json:"semester"`
}

func (e *DuplicateNominationError) Error() string {
	return fmt.Sprintf("student %d already has an evaluation in semester %d", e.StudentID, e.Semester)
}

// CapacityExceededError is returned when a chairperson assignment would push
// the lecturer past the per-department-per-semester session cap.
type CapacityExceededError struct {
	ChairpersonID uint   `json:"chairperson_id"`
	Department    string `json:"department"`
	Semester      int    `json:"semester"`
	Count         int64  `json:"count"`
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("chairperson %d already chairs %d evaluations in department %s, semester %d",
		e.ChairpersonID, e.Count, e.Department, e.Semester)
}

// ===== ERROR CLASSIFICATION HELPERS =====

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsLockedRecordError(err error) bool {
	var le *LockedRecordError
	return errors.As(err, &le)
}

func IsDuplicateNominationError(err error) bool {
	var de *DuplicateNominationError
	return errors.As(err, &de)
}

func IsCapacityExceededError(err error) bool {
	var ce *CapacityExceededError
	return errors.As(err, &ce)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEvaluationNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrLecturerNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
