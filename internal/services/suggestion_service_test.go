package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

func newSuggestionFixture(t *testing.T) (SuggestionService, *fakeRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository()

	repo.addLecturer(&models.Lecturer{ID: 1, StaffNumber: "L001", FullName: "Aminah Rahman", Title: models.TitleDr, Department: "Computing", IsFromHostFaculty: true})
	repo.addLecturer(&models.Lecturer{ID: 2, StaffNumber: "L002", FullName: "Boon Keat Tan", Title: models.TitleAssocProf, Department: "Computing", IsFromHostFaculty: true})
	repo.addLecturer(&models.Lecturer{ID: 3, StaffNumber: "L003", FullName: "Chandra Patel", Title: models.TitleProf, Department: "Computing", IsFromHostFaculty: true})
	repo.addLecturer(&models.Lecturer{ID: 4, StaffNumber: "L004", FullName: "Daliah Ismail", Title: models.TitleAssocProf, Department: "Computing", IsFromHostFaculty: false})
	repo.addLecturer(&models.Lecturer{ID: 5, StaffNumber: "L005", FullName: "Emil Hassan", Title: models.TitleDr, Department: "Computing", IsFromHostFaculty: true})

	repo.addStudent(&models.Student{ID: 1, MatricNumber: "PG0001", FullName: "Farid Osman", Department: "Computing", CurrentSemester: 6, MainSupervisorID: 1})

	service := NewSuggestionService(repo, nil, logger, validator.New())
	return service, repo
}

func TestSuggestionService_GetExaminerSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("slot 1 applies the title floor and faculty rule", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		resp, err := service.GetExaminerSuggestions(ctx, 1, 1, nil, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Eligible: 2 (AssocProf host) and 3 (Prof host). 1 is the
		// supervisor, 4 is external, 5 is a Dr.
		if got := candidateIDs(resp); len(got) != 2 || got[0] != 2 || got[1] != 3 {
			t.Fatalf("expected candidates [2 3], got %v", got)
		}
	})

	t.Run("slot 3 allows any host-faculty title", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		resp, err := service.GetExaminerSuggestions(ctx, 3, 1, nil, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := candidateIDs(resp); len(got) != 3 {
			t.Fatalf("expected candidates [2 3 5], got %v", got)
		}
	})

	t.Run("prior selections are excluded", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		resp, err := service.GetExaminerSuggestions(ctx, 1, 1, []uint{2}, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := candidateIDs(resp); len(got) != 1 || got[0] != 3 {
			t.Fatalf("expected candidates [3], got %v", got)
		}
	})

	t.Run("current committee occupants are excluded", func(t *testing.T) {
		service, repo := newSuggestionFixture(t)
		repo.addEvaluation(&models.Evaluation{ID: 1, StudentID: 1, Semester: 6, NominationStatus: models.StatusPending, Examiner1ID: uintPtr(2), ChairpersonID: uintPtr(3)})

		resp, err := service.GetExaminerSuggestions(ctx, 1, 1, nil, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := candidateIDs(resp); len(got) != 0 {
			t.Fatalf("expected no candidates, got %v", got)
		}
	})

	t.Run("occupant lookup failure aborts the suggestion", func(t *testing.T) {
		service, repo := newSuggestionFixture(t)
		repo.studentSemesterErr = errors.New("connection reset")

		_, err := service.GetExaminerSuggestions(ctx, 1, 1, nil, coordinatorActor())
		if err == nil {
			t.Fatal("expected error when the current evaluation cannot be read")
		}
	})

	t.Run("candidates come back ordered by name", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		resp, err := service.GetExaminerSuggestions(ctx, 2, 1, nil, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 1; i < len(resp.Candidates); i++ {
			if resp.Candidates[i-1].FullName > resp.Candidates[i].FullName {
				t.Fatalf("candidates not ordered by name: %s before %s", resp.Candidates[i-1].FullName, resp.Candidates[i].FullName)
			}
		}
	})

	t.Run("invalid slot", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		_, err := service.GetExaminerSuggestions(ctx, 0, 1, nil, coordinatorActor())
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		_, err := service.GetExaminerSuggestions(ctx, 1, 42, nil, coordinatorActor())
		if !errors.Is(err, ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("unrelated supervisor rejected", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		actor := models.Actor{UserID: "sup-2", StaffNumber: "L002", Roles: []models.UserRole{models.RoleSupervisor}}
		_, err := service.GetExaminerSuggestions(ctx, 1, 1, nil, actor)
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("own supervisor allowed", func(t *testing.T) {
		service, _ := newSuggestionFixture(t)

		if _, err := service.GetExaminerSuggestions(ctx, 1, 1, nil, supervisorActor()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func candidateIDs(resp *SuggestionResponse) []uint {
	ids := make([]uint, len(resp.Candidates))
	for i, candidate := range resp.Candidates {
		ids[i] = candidate.ID
	}
	return ids
}
