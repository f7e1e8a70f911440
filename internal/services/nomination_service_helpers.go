package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/evaluation-service/internal/events"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

// ===== LOOKUP WRAPPERS =====

func (s *nominationService) getEvaluation(ctx context.Context, id uint) (*models.Evaluation, error) {
	evaluation, err := s.repo.Evaluation().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return evaluation, nil
}

func (s *nominationService) getEvaluationWithCommittee(ctx context.Context, id uint) (*models.Evaluation, error) {
	evaluation, err := s.repo.Evaluation().GetByIDWithCommittee(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation details: %w", err)
	}
	return evaluation, nil
}

// resolveActorLecturer maps the actor to the lecturer directory record via
// staff number. Actors without a lecturer record (office staff) resolve to
// nil, not an error.
func (s *nominationService) resolveActorLecturer(ctx context.Context, actor models.Actor) (*models.Lecturer, error) {
	if actor.StaffNumber == "" {
		return nil, nil
	}
	lecturer, err := s.repo.Lecturer().GetByStaffNumber(ctx, nil, actor.StaffNumber)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve actor lecturer: %w", err)
	}
	return lecturer, nil
}

// ===== PERMISSION CHECKS =====

// canManageNomination decides whether the actor may create or modify the
// student's nomination: PGAM and Office Assistant always, coordinators for
// their department, supervisors for their own students.
func (s *nominationService) canManageNomination(ctx context.Context, actor models.Actor, student *models.Student) (bool, error) {
	if actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant) {
		return true, nil
	}

	if actor.HasRole(models.RoleProgramCoordinator) && actor.Department == student.Department {
		return true, nil
	}

	if actor.HasRole(models.RoleSupervisor) {
		lecturer, err := s.resolveActorLecturer(ctx, actor)
		if err != nil {
			return false, err
		}
		if lecturer != nil && student.IsSupervisor(lecturer.ID) {
			return true, nil
		}
	}

	return false, nil
}

// ===== ELIGIBILITY =====

// validateExaminerSlots runs the committee rules over the supplied slots.
// Distinctness is checked first, then each occupied slot in order; the
// first violation is returned.
func (s *nominationService) validateExaminerSlots(ctx context.Context, student *models.Student, examiner1, examiner2, examiner3 *uint) error {
	slots := []*uint{examiner1, examiner2, examiner3}

	// One lecturer cannot occupy two slots
	seen := make(map[uint]int)
	for i, id := range slots {
		if id == nil {
			continue
		}
		if prev, ok := seen[*id]; ok {
			return &validator.RuleViolationError{
				Slot:   fmt.Sprintf("examiner%d", i+1),
				Reason: fmt.Sprintf("Examiner %d and Examiner %d must be different lecturers", prev+1, i+1),
			}
		}
		seen[*id] = i
	}

	if len(seen) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	lecturers, err := s.repo.Lecturer().GetByIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve examiners: %w", err)
	}
	byID := make(map[uint]*models.Lecturer, len(lecturers))
	for _, lecturer := range lecturers {
		byID[lecturer.ID] = lecturer
	}

	eligibility := s.validator.GetEligibilityValidator()
	supervision := validator.Supervision{
		MainSupervisor: &student.MainSupervisor,
		CoSupervisors:  student.CoSupervisors,
	}
	for i, id := range slots {
		if id == nil {
			continue
		}
		candidate, ok := byID[*id]
		if !ok {
			return ErrLecturerNotFound
		}
		if err := eligibility.ValidateExaminerSlot(i+1, supervision, candidate); err != nil {
			return err
		}
	}

	return nil
}

// ===== RESPONSE BUILDING =====

func (s *nominationService) buildResponse(evaluation *models.Evaluation, actor models.Actor) *EvaluationResponse {
	locked := evaluation.IsLocked()
	return &EvaluationResponse{
		Evaluation:  evaluation,
		CanEdit:     !locked,
		CanLock:     !locked && actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant, models.RoleProgramCoordinator),
		CanPostpone: !locked,
	}
}

func (s *nominationService) loadResponse(ctx context.Context, id uint, actor models.Actor) (*EvaluationResponse, error) {
	evaluation, err := s.getEvaluationWithCommittee(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(evaluation, actor), nil
}

// ===== POSTPONEMENT LOG AND EVENTS =====

// appendPostponementEntry appends one entry to the JSON history column.
func appendPostponementEntry(log datatypes.JSON, entry models.PostponementEntry) (datatypes.JSON, error) {
	var entries []models.PostponementEntry
	if len(log) > 0 {
		if err := json.Unmarshal(log, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode postponement log: %w", err)
		}
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode postponement log: %w", err)
	}
	return datatypes.JSON(data), nil
}

func (s *nominationService) publishEvent(ctx context.Context, topic string, event *events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, topic, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"error", err,
			"topic", topic,
			"event_type", event.Type)
	}
}

func (s *nominationService) publishPostponedEvent(ctx context.Context, evaluation *models.Evaluation, req *PostponeNominationRequest, actor models.Actor) {
	payload := events.EvaluationPostponedEvent{
		EvaluationID: evaluation.ID,
		StudentID:    evaluation.StudentID,
		StudentName:  evaluation.Student.FullName,
		Department:   evaluation.Student.Department,
		Semester:     evaluation.Semester,
		Reason:       req.Reason,
		PostponedTo:  req.PostponedTo,
		PostponedBy:  actor.UserID,
		Recipients:   buildPostponementRecipients(evaluation),
	}

	s.publishEvent(ctx, events.TopicEvaluationEvents, events.NewEvent(events.EventEvaluationPostponed, payload))

	if s.notifier != nil {
		s.notifier.Notify(ctx, &payload)
	}
}

// buildPostponementRecipients collects every committee member attached to
// the evaluation. The Student association must be preloaded.
func buildPostponementRecipients(evaluation *models.Evaluation) []events.Recipient {
	var recipients []events.Recipient
	add := func(lecturer *models.Lecturer, role string) {
		if lecturer == nil || lecturer.Email == "" {
			return
		}
		recipients = append(recipients, events.Recipient{
			UserID:   lecturer.StaffNumber,
			FullName: lecturer.FullName,
			Email:    lecturer.Email,
			Role:     role,
		})
	}

	add(&evaluation.Student.MainSupervisor, "supervisor")
	for i := range evaluation.Student.CoSupervisors {
		add(&evaluation.Student.CoSupervisors[i], "co_supervisor")
	}
	add(evaluation.Examiner1, "examiner")
	add(evaluation.Examiner2, "examiner")
	add(evaluation.Examiner3, "examiner")
	add(evaluation.Chairperson, "chairperson")

	return recipients
}
