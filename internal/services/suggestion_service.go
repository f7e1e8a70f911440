package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

type suggestionService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSuggestionService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) SuggestionService {
	return &suggestionService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// GetExaminerSuggestions returns lecturers eligible for the slot, excluding
// the student's supervisors, the current committee and the caller's prior
// selections. Candidates come back ordered by display name.
func (s *suggestionService) GetExaminerSuggestions(ctx context.Context, slot int, studentID uint, priorSelections []uint, actor models.Actor) (*SuggestionResponse, error) {
	if slot < 1 || slot > 3 {
		return nil, validator.ValidationErrors{{
			Field:   "slot",
			Message: "slot must be between 1 and 3",
			Rule:    "range",
		}}
	}

	student, err := s.repo.Student().GetByID(ctx, nil, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	canSuggest, err := s.canRequestSuggestions(ctx, actor, student)
	if err != nil {
		return nil, err
	}
	if !canSuggest {
		return nil, NewPermissionError(actor.UserID, studentID, "student", "suggest_examiners", "not a supervisor or coordinator for this student")
	}

	excluded, err := s.buildExclusions(ctx, student, priorSelections)
	if err != nil {
		return nil, err
	}

	// Pool ordered by name; eligibility filters the rest
	lecturers, _, err := s.repo.Lecturer().List(ctx, nil, repositories.LecturerFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list lecturers: %w", err)
	}

	eligibility := s.validator.GetEligibilityValidator()
	supervision := validator.Supervision{
		MainSupervisor: &student.MainSupervisor,
		CoSupervisors:  student.CoSupervisors,
	}
	candidates := make([]*models.Lecturer, 0, len(lecturers))
	for _, lecturer := range lecturers {
		if excluded[lecturer.ID] {
			continue
		}
		if err := eligibility.ValidateExaminerSlot(slot, supervision, lecturer); err != nil {
			continue
		}
		candidates = append(candidates, lecturer)
	}

	s.logger.Debug("Examiner suggestions computed",
		"student_id", studentID,
		"slot", slot,
		"candidates", len(candidates))

	return &SuggestionResponse{
		Slot:       slot,
		StudentID:  studentID,
		Candidates: candidates,
	}, nil
}

// buildExclusions collects lecturer ids that can never be suggested:
// supervisors, current committee occupants and prior selections. A missing
// current evaluation just means no occupants to exclude; any other lookup
// failure aborts the suggestion.
func (s *suggestionService) buildExclusions(ctx context.Context, student *models.Student, priorSelections []uint) (map[uint]bool, error) {
	excluded := make(map[uint]bool)

	for _, id := range student.SupervisorIDs() {
		excluded[id] = true
	}
	for _, id := range priorSelections {
		excluded[id] = true
	}

	evaluation, err := s.repo.Evaluation().GetByStudentAndSemester(ctx, nil, student.ID, student.CurrentSemester)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return excluded, nil
		}
		return nil, fmt.Errorf("failed to get current evaluation: %w", err)
	}
	for _, id := range evaluation.ExaminerIDs() {
		excluded[id] = true
	}
	if evaluation.ChairpersonID != nil {
		excluded[*evaluation.ChairpersonID] = true
	}

	return excluded, nil
}

func (s *suggestionService) canRequestSuggestions(ctx context.Context, actor models.Actor, student *models.Student) (bool, error) {
	if actor.HasAnyRole(models.RolePGAM, models.RoleOfficeAssistant) {
		return true, nil
	}
	if actor.HasRole(models.RoleProgramCoordinator) && actor.Department == student.Department {
		return true, nil
	}
	if actor.HasRole(models.RoleSupervisor) && actor.StaffNumber != "" {
		lecturer, err := s.repo.Lecturer().GetByStaffNumber(ctx, nil, actor.StaffNumber)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to resolve actor lecturer: %w", err)
		}
		return student.IsSupervisor(lecturer.ID), nil
	}
	return false, nil
}
