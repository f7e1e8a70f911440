package services

import (
	"context"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateNominationRequest = validator.NominationCreateRequest
type UpdateNominationRequest = validator.NominationUpdateRequest
type PostponeNominationRequest = validator.PostponeRequest
type AssignChairpersonsRequest = validator.ChairpersonAssignmentRequest
type ChairpersonAssignment = validator.ChairpersonAssignmentItem
type LockNominationsBatchRequest = validator.LockBatchRequest

type EvaluationResponse struct {
	*models.Evaluation
	CanEdit     bool `json:"can_edit"`
	CanLock     bool `json:"can_lock"`
	CanPostpone bool `json:"can_postpone"`
}

type EvaluationListResponse struct {
	Evaluations []*EvaluationResponse `json:"evaluations"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	Size        int                   `json:"size"`
}

// BatchLockResponse reports a batch lock outcome: already-Locked ids are
// skipped, not failed.
type BatchLockResponse struct {
	Requested  int    `json:"requested"`
	Locked     int    `json:"locked"`
	SkippedIDs []uint `json:"skipped_ids"`
}

// SuggestionResponse carries eligible candidates for one examiner slot,
// ordered by display name.
type SuggestionResponse struct {
	Slot       int                `json:"slot"`
	StudentID  uint               `json:"student_id"`
	Candidates []*models.Lecturer `json:"candidates"`
}

type LecturerResponse struct {
	*models.Lecturer
}

type LecturerListResponse struct {
	Lecturers []*LecturerResponse `json:"lecturers"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	Size      int                 `json:"size"`
}

// ===== SERVICE INTERFACES =====

type NominationService interface {
	// Lifecycle operations
	Create(ctx context.Context, req *CreateNominationRequest, actor models.Actor) (*EvaluationResponse, error)
	Update(ctx context.Context, id uint, req *UpdateNominationRequest, actor models.Actor) (*EvaluationResponse, error)
	Postpone(ctx context.Context, id uint, req *PostponeNominationRequest, actor models.Actor) (*EvaluationResponse, error)
	Lock(ctx context.Context, id uint, actor models.Actor) (*EvaluationResponse, error)
	LockBatch(ctx context.Context, req *LockNominationsBatchRequest, actor models.Actor) (*BatchLockResponse, error)

	// Read operations (visibility-filtered)
	GetByID(ctx context.Context, id uint, actor models.Actor) (*EvaluationResponse, error)
	List(ctx context.Context, filters repositories.EvaluationFilters, actor models.Actor) (*EvaluationListResponse, error)
}

type AssignmentService interface {
	// AssignChairpersons validates every tuple before any write and commits
	// the whole batch in one transaction, or nothing.
	AssignChairpersons(ctx context.Context, req *AssignChairpersonsRequest, actor models.Actor) ([]*EvaluationResponse, error)
}

type SuggestionService interface {
	GetExaminerSuggestions(ctx context.Context, slot int, studentID uint, priorSelections []uint, actor models.Actor) (*SuggestionResponse, error)
}

type LecturerService interface {
	GetByID(ctx context.Context, id uint, actor models.Actor) (*LecturerResponse, error)
	List(ctx context.Context, filters repositories.LecturerFilters, actor models.Actor) (*LecturerListResponse, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Nomination() NominationService
	Assignment() AssignmentService
	Suggestion() SuggestionService
	Lecturer() LecturerService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
