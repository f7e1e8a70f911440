package events

import "time"

// Kafka topics
const (
	TopicEvaluationEvents   = "evaluation.events"
	TopicNotificationEvents = "notification.events"
)

// Event types
const (
	EventEvaluationNominated  = "evaluation.nominated"
	EventEvaluationLocked     = "evaluation.locked"
	EventEvaluationPostponed  = "evaluation.postponed"
	EventChairpersonAssigned  = "evaluation.chairperson_assigned"
	EventNotificationRequired = "notification.required"
)

// Recipient identifies one party a notification fans out to.
type Recipient struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// EvaluationPostponedEvent is emitted after a postponement commits. The
// consumer fans it out to every listed recipient.
type EvaluationPostponedEvent struct {
	EvaluationID uint        `json:"evaluation_id"`
	StudentID    uint        `json:"student_id"`
	StudentName  string      `json:"student_name"`
	Department   string      `json:"department"`
	Semester     int         `json:"semester"`
	Reason       string      `json:"reason"`
	PostponedTo  time.Time   `json:"postponed_to"`
	PostponedBy  string      `json:"postponed_by"`
	Recipients   []Recipient `json:"recipients"`
}

// EvaluationLockedEvent is emitted when a nomination becomes immutable.
type EvaluationLockedEvent struct {
	EvaluationID uint   `json:"evaluation_id"`
	StudentID    uint   `json:"student_id"`
	LockedBy     string `json:"locked_by"`
}

// ChairpersonAssignedEvent is emitted per evaluation after a batch
// assignment commits.
type ChairpersonAssignedEvent struct {
	EvaluationID   uint   `json:"evaluation_id"`
	ChairpersonID  uint   `json:"chairperson_id"`
	IsAutoAssigned bool   `json:"is_auto_assigned"`
	AssignedBy     string `json:"assigned_by"`
}
