package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/events"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

type nominationService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	notifier       *PostponementNotifier
}

func NewNominationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, notifier *PostponementNotifier) NominationService {
	return &nominationService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
		notifier:       notifier,
	}
}

// ===== LIFECYCLE OPERATIONS =====

func (s *nominationService) Create(ctx context.Context, req *CreateNominationRequest, actor models.Actor) (*EvaluationResponse, error) {
	s.logger.Info("Creating nomination", "student_id", req.StudentID, "semester", req.Semester, "actor", actor.UserID)

	if err := s.validator.Validate(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	// Resolve the student with supervisors for permission and rule checks
	student, err := s.repo.Student().GetByID(ctx, nil, req.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	canManage, err := s.canManageNomination(ctx, actor, student)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, NewPermissionError(actor.UserID, 0, "evaluation", "create", "not a supervisor or coordinator for this student")
	}

	// One evaluation per student per semester
	if _, err := s.repo.Evaluation().GetByStudentAndSemester(ctx, nil, req.StudentID, req.Semester); err == nil {
		return nil, &DuplicateNominationError{StudentID: req.StudentID, Semester: req.Semester}
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing evaluation: %w", err)
	}

	// Eligibility of the supplied slots, first failure wins
	if err := s.validateExaminerSlots(ctx, student, req.Examiner1ID, req.Examiner2ID, req.Examiner3ID); err != nil {
		return nil, err
	}

	evaluation := &models.Evaluation{
		StudentID:    req.StudentID,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Examiner1ID:  req.Examiner1ID,
		Examiner2ID:  req.Examiner2ID,
		Examiner3ID:  req.Examiner3ID,
	}
	evaluation.NominationStatus = models.DeriveNominationStatus(req.Examiner1ID, req.Examiner2ID, req.Examiner3ID)
	now := time.Now()
	evaluation.NominatedBy = &actor.UserID
	evaluation.NominatedAt = &now

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Evaluation().Create(ctx, nil, evaluation)
	})
	if err != nil {
		// The unique index decides the race; the loser maps to a duplicate
		if repositories.IsDuplicateKeyError(err) {
			return nil, &DuplicateNominationError{StudentID: req.StudentID, Semester: req.Semester}
		}
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}

	s.logger.Info("Nomination created", "evaluation_id", evaluation.ID, "status", evaluation.NominationStatus)

	return s.loadResponse(ctx, evaluation.ID, actor)
}

func (s *nominationService) Update(ctx context.Context, id uint, req *UpdateNominationRequest, actor models.Actor) (*EvaluationResponse, error) {
	s.logger.Info("Updating nomination", "evaluation_id", id, "actor", actor.UserID)

	evaluation, err := s.getEvaluation(ctx, id)
	if err != nil {
		return nil, err
	}

	if evaluation.IsLocked() {
		return nil, &LockedRecordError{EvaluationID: id}
	}

	student, err := s.repo.Student().GetByID(ctx, nil, evaluation.StudentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	canManage, err := s.canManageNomination(ctx, actor, student)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, NewPermissionError(actor.UserID, id, "evaluation", "update", "not a supervisor or coordinator for this student")
	}

	if err := s.validateExaminerSlots(ctx, student, req.Examiner1ID, req.Examiner2ID, req.Examiner3ID); err != nil {
		return nil, err
	}

	evaluation.Examiner1ID = req.Examiner1ID
	evaluation.Examiner2ID = req.Examiner2ID
	evaluation.Examiner3ID = req.Examiner3ID

	// Removing an examiner demotes the record; completing the slots promotes
	// it. Each accepted submission re-stamps the nominator.
	evaluation.NominationStatus = models.DeriveNominationStatus(req.Examiner1ID, req.Examiner2ID, req.Examiner3ID)
	now := time.Now()
	evaluation.NominatedBy = &actor.UserID
	evaluation.NominatedAt = &now
	evaluation.UpdatedAt = now

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Evaluation().Update(ctx, nil, evaluation)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update evaluation: %w", err)
	}

	s.logger.Info("Nomination updated", "evaluation_id", id, "status", evaluation.NominationStatus)

	return s.loadResponse(ctx, id, actor)
}

func (s *nominationService) Postpone(ctx context.Context, id uint, req *PostponeNominationRequest, actor models.Actor) (*EvaluationResponse, error) {
	s.logger.Info("Postponing nomination", "evaluation_id", id, "actor", actor.UserID)

	if err := s.validator.Validate(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	evaluation, err := s.getEvaluationWithCommittee(ctx, id)
	if err != nil {
		return nil, err
	}

	if evaluation.IsLocked() {
		return nil, &LockedRecordError{EvaluationID: id}
	}

	canManage, err := s.canManageNomination(ctx, actor, &evaluation.Student)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, NewPermissionError(actor.UserID, id, "evaluation", "postpone", "not a supervisor or coordinator for this student")
	}

	now := time.Now()
	evaluation.IsPostponed = true
	evaluation.PostponementReason = &req.Reason
	evaluation.PostponedTo = &req.PostponedTo
	evaluation.NominationStatus = models.StatusPostponed
	evaluation.UpdatedAt = now

	entry := models.PostponementEntry{
		Reason:      req.Reason,
		PostponedTo: req.PostponedTo,
		PostponedBy: actor.UserID,
		PostponedAt: now,
	}
	log, err := appendPostponementEntry(evaluation.PostponementLog, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to append postponement log: %w", err)
	}
	evaluation.PostponementLog = log

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Evaluation().Update(ctx, nil, evaluation)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to postpone evaluation: %w", err)
	}

	s.logger.Info("Nomination postponed", "evaluation_id", id, "postponed_to", req.PostponedTo)

	// Event and notifications fire only after the transaction commits.
	// A delivery failure never fails the postponement.
	s.publishPostponedEvent(ctx, evaluation, req, actor)

	return s.loadResponse(ctx, id, actor)
}

func (s *nominationService) Lock(ctx context.Context, id uint, actor models.Actor) (*EvaluationResponse, error) {
	s.logger.Info("Locking nomination", "evaluation_id", id, "actor", actor.UserID)

	if !actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator) {
		return nil, NewPermissionError(actor.UserID, id, "evaluation", "lock", "insufficient role permissions")
	}

	evaluation, err := s.getEvaluationWithCommittee(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.HasRole(models.RoleProgramCoordinator) &&
		!actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant) &&
		evaluation.Student.Department != actor.Department {
		return nil, NewPermissionError(actor.UserID, id, "evaluation", "lock", "student is outside the coordinator's department")
	}

	if evaluation.IsLocked() {
		return nil, &LockedRecordError{EvaluationID: id}
	}

	now := time.Now()
	evaluation.NominationStatus = models.StatusLocked
	evaluation.LockedBy = &actor.UserID
	evaluation.LockedAt = &now
	evaluation.UpdatedAt = now

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		return txRepo.Evaluation().Update(ctx, nil, evaluation)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to lock evaluation: %w", err)
	}

	s.logger.Info("Nomination locked", "evaluation_id", id)

	s.publishEvent(ctx, events.TopicEvaluationEvents, events.NewEvent(events.EventEvaluationLocked, events.EvaluationLockedEvent{
		EvaluationID: id,
		StudentID:    evaluation.StudentID,
		LockedBy:     actor.UserID,
	}))

	return s.loadResponse(ctx, id, actor)
}

func (s *nominationService) LockBatch(ctx context.Context, req *LockNominationsBatchRequest, actor models.Actor) (*BatchLockResponse, error) {
	s.logger.Info("Locking nominations batch", "count", len(req.EvaluationIDs), "actor", actor.UserID)

	if err := s.validator.Validate(req); err != nil {
		return nil, validator.ToValidationErrors(err)
	}

	if !actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator) {
		return nil, NewPermissionError(actor.UserID, 0, "evaluation", "lock", "insufficient role permissions")
	}

	response := &BatchLockResponse{Requested: len(req.EvaluationIDs)}

	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		now := time.Now()
		for _, id := range req.EvaluationIDs {
			evaluation, err := txRepo.Evaluation().GetByIDWithCommittee(ctx, nil, id)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					return ErrEvaluationNotFound
				}
				return fmt.Errorf("failed to get evaluation %d: %w", id, err)
			}

			// Coordinators lock within their own department, same as the
			// single-record path
			if actor.HasRole(models.RoleProgramCoordinator) &&
				!actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant) &&
				evaluation.Student.Department != actor.Department {
				return NewPermissionError(actor.UserID, id, "evaluation", "lock", "student is outside the coordinator's department")
			}

			// Already-locked records are skipped, not failed
			if evaluation.IsLocked() {
				response.SkippedIDs = append(response.SkippedIDs, id)
				continue
			}

			evaluation.NominationStatus = models.StatusLocked
			evaluation.LockedBy = &actor.UserID
			evaluation.LockedAt = &now
			evaluation.UpdatedAt = now

			if err := txRepo.Evaluation().Update(ctx, nil, evaluation); err != nil {
				return fmt.Errorf("failed to lock evaluation %d: %w", id, err)
			}
			response.Locked++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Nominations batch locked", "locked", response.Locked, "skipped", len(response.SkippedIDs))

	return response, nil
}

// ===== READ OPERATIONS =====

func (s *nominationService) GetByID(ctx context.Context, id uint, actor models.Actor) (*EvaluationResponse, error) {
	evaluation, err := s.getEvaluationWithCommittee(ctx, id)
	if err != nil {
		return nil, err
	}

	lecturer, err := s.resolveActorLecturer(ctx, actor)
	if err != nil {
		return nil, err
	}

	scope := BuildEvaluationScope(actor, lecturer)
	if !scopeMatches(scope, evaluation) {
		return nil, NewPermissionError(actor.UserID, id, "evaluation", "read", "record is outside the caller's visibility")
	}

	return s.buildResponse(evaluation, actor), nil
}

func (s *nominationService) List(ctx context.Context, filters repositories.EvaluationFilters, actor models.Actor) (*EvaluationListResponse, error) {
	lecturer, err := s.resolveActorLecturer(ctx, actor)
	if err != nil {
		return nil, err
	}

	scope := BuildEvaluationScope(actor, lecturer)

	// No matching role yields an empty page, not an error
	if scope.Empty() {
		return &EvaluationListResponse{
			Evaluations: []*EvaluationResponse{},
			Total:       0,
			Page:        1,
			Size:        filters.Limit,
		}, nil
	}

	evaluations, total, err := s.repo.Evaluation().List(ctx, nil, filters, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	response := &EvaluationListResponse{
		Evaluations: make([]*EvaluationResponse, len(evaluations)),
		Total:       total,
		Page:        (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:        filters.Limit,
	}
	for i, evaluation := range evaluations {
		response.Evaluations[i] = s.buildResponse(evaluation, actor)
	}

	return response, nil
}
