package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
)

type lecturerService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewLecturerService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) LecturerService {
	return &lecturerService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *lecturerService) GetByID(ctx context.Context, id uint, actor models.Actor) (*LecturerResponse, error) {
	if !s.canReadDirectory(actor) {
		return nil, NewPermissionError(actor.UserID, id, "lecturer", "read", "insufficient role permissions")
	}

	lecturer, err := s.repo.Lecturer().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLecturerNotFound
		}
		return nil, fmt.Errorf("failed to get lecturer: %w", err)
	}

	return &LecturerResponse{Lecturer: lecturer}, nil
}

func (s *lecturerService) List(ctx context.Context, filters repositories.LecturerFilters, actor models.Actor) (*LecturerListResponse, error) {
	if !s.canReadDirectory(actor) {
		return nil, NewPermissionError(actor.UserID, 0, "lecturer", "list", "insufficient role permissions")
	}

	lecturers, total, err := s.repo.Lecturer().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list lecturers: %w", err)
	}

	response := &LecturerListResponse{
		Lecturers: make([]*LecturerResponse, len(lecturers)),
		Total:     total,
		Page:      (filters.Offset / max(filters.Limit, 1)) + 1,
		Size:      filters.Limit,
	}
	for i, lecturer := range lecturers {
		response.Lecturers[i] = &LecturerResponse{Lecturer: lecturer}
	}

	return response, nil
}

// canReadDirectory allows any recognized role to browse the lecturer pool.
func (s *lecturerService) canReadDirectory(actor models.Actor) bool {
	return actor.HasAnyRole(
		models.RolePGAM,
		models.RoleOfficeAssistant,
		models.RoleProgramCoordinator,
		models.RoleSupervisor,
		models.RoleChairperson,
	)
}
