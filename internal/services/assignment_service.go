package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/events"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

// MaxChairSessions is the workload cap: a lecturer may chair at most this
// many evaluations per department per semester.
const MaxChairSessions = 4

type assignmentService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewAssignmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) AssignmentService {
	return &assignmentService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// validatedAssignment is one tuple that passed phase one and is ready to
// commit.
type validatedAssignment struct {
	item       ChairpersonAssignment
	evaluation *models.Evaluation
}

// capacityKey identifies one workload bucket.
type capacityKey struct {
	chairpersonID uint
	department    string
	semester      int
}

// AssignChairpersons validates every tuple before any write, then commits
// the whole batch in a single transaction. One bad tuple fails the batch.
func (s *assignmentService) AssignChairpersons(ctx context.Context, req *AssignChairpersonsRequest, actor models.Actor) ([]*EvaluationResponse, error) {
	s.logger.Info("Assigning chairpersons", "count", len(req.Assignments), "actor", actor.UserID)

	if err := s.validator.Validate(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	if !actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator) {
		return nil, NewPermissionError(actor.UserID, 0, "evaluation", "assign_chairperson", "insufficient role permissions")
	}

	// Phase one: resolve and validate every tuple. Capacity counts include
	// assignments earlier in this batch so the cap holds across the whole
	// request, not just against committed rows.
	validated := make([]validatedAssignment, 0, len(req.Assignments))
	inBatch := make(map[capacityKey]int64)
	dbCounts := make(map[capacityKey]int64)

	for _, item := range req.Assignments {
		evaluation, err := s.repo.Evaluation().GetByIDWithCommittee(ctx, nil, item.EvaluationID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrEvaluationNotFound
			}
			return nil, fmt.Errorf("failed to get evaluation %d: %w", item.EvaluationID, err)
		}

		if evaluation.IsLocked() {
			return nil, &LockedRecordError{EvaluationID: item.EvaluationID}
		}

		if actor.HasRole(models.RoleProgramCoordinator) &&
			!actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant) &&
			evaluation.Student.Department != actor.Department {
			return nil, NewPermissionError(actor.UserID, item.EvaluationID, "evaluation", "assign_chairperson", "student is outside the coordinator's department")
		}

		candidate, err := s.repo.Lecturer().GetByID(ctx, nil, item.ChairpersonID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrLecturerNotFound
			}
			return nil, fmt.Errorf("failed to get chairperson %d: %w", item.ChairpersonID, err)
		}

		// Title floor and committee non-overlap
		committee := validator.Committee{
			MainSupervisor: &evaluation.Student.MainSupervisor,
			CoSupervisors:  evaluation.Student.CoSupervisors,
			Examiners:      [3]*models.Lecturer{evaluation.Examiner1, evaluation.Examiner2, evaluation.Examiner3},
		}
		if err := s.validator.GetEligibilityValidator().ValidateChairperson(candidate, committee); err != nil {
			return nil, err
		}

		// Workload cap, batch-aware
		semester := evaluation.Semester
		if item.Semester != nil {
			semester = *item.Semester
		}
		key := capacityKey{
			chairpersonID: item.ChairpersonID,
			department:    evaluation.Student.Department,
			semester:      semester,
		}
		if _, ok := dbCounts[key]; !ok {
			count, err := s.repo.Evaluation().CountChairSessions(ctx, nil, key.chairpersonID, key.department, key.semester)
			if err != nil {
				return nil, fmt.Errorf("failed to count chair sessions: %w", err)
			}
			dbCounts[key] = count
		}
		total := dbCounts[key] + inBatch[key]
		if total >= MaxChairSessions {
			return nil, &CapacityExceededError{
				ChairpersonID: key.chairpersonID,
				Department:    key.department,
				Semester:      key.semester,
				Count:         total,
			}
		}
		inBatch[key]++

		validated = append(validated, validatedAssignment{item: item, evaluation: evaluation})
	}

	// Phase two: commit everything in one transaction
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, va := range validated {
			err := txRepo.Evaluation().UpdateChairperson(ctx, nil,
				va.item.EvaluationID,
				va.item.ChairpersonID,
				va.item.IsAutoAssigned,
				va.item.Semester,
				va.item.AcademicYear)
			if err != nil {
				return fmt.Errorf("failed to assign chairperson on evaluation %d: %w", va.item.EvaluationID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Chairpersons assigned", "count", len(validated))

	// Per-assignment events after commit, best effort
	for _, va := range validated {
		s.publishAssignedEvent(ctx, va.item, actor)
	}

	responses := make([]*EvaluationResponse, len(validated))
	for i, va := range validated {
		evaluation, err := s.repo.Evaluation().GetByIDWithCommittee(ctx, nil, va.item.EvaluationID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload evaluation %d: %w", va.item.EvaluationID, err)
		}
		locked := evaluation.IsLocked()
		responses[i] = &EvaluationResponse{
			Evaluation:  evaluation,
			CanEdit:     !locked,
			CanLock:     !locked,
			CanPostpone: !locked,
		}
	}

	return responses, nil
}

func (s *assignmentService) publishAssignedEvent(ctx context.Context, item ChairpersonAssignment, actor models.Actor) {
	if s.eventPublisher == nil {
		return
	}

	event := events.NewEvent(events.EventChairpersonAssigned, events.ChairpersonAssignedEvent{
		EvaluationID:   item.EvaluationID,
		ChairpersonID:  item.ChairpersonID,
		IsAutoAssigned: item.IsAutoAssigned,
		AssignedBy:     actor.UserID,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicEvaluationEvents, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish assignment event",
			"error", err,
			"evaluation_id", item.EvaluationID)
	}
}
