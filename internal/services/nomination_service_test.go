package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/evaluation-service/internal/events"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

func uintPtr(v uint) *uint { return &v }

type nominationFixture struct {
	service   NominationService
	repo      *fakeRepository
	publisher *events.MockEventPublisher
	sender    *captureSender
}

// captureSender records notifications and can fail for chosen recipients.
type captureSender struct {
	sent    []events.Recipient
	failFor map[string]bool
}

func (c *captureSender) Send(ctx context.Context, recipient events.Recipient, subject, body string) error {
	if c.failFor[recipient.Email] {
		return errors.New("delivery failed")
	}
	c.sent = append(c.sent, recipient)
	return nil
}

func newNominationFixture(t *testing.T) *nominationFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(logger)
	sender := &captureSender{failFor: make(map[string]bool)}
	notifier := NewPostponementNotifier(sender, logger)

	// Directory: Dr supervisor, host-faculty examiners, one external.
	repo.addLecturer(&models.Lecturer{ID: 1, StaffNumber: "L001", FullName: "Aminah Rahman", Email: "aminah@uni.edu", Title: models.TitleDr, Department: "Computing", IsFromHostFaculty: true})
	repo.addLecturer(&models.Lecturer{ID: 2, StaffNumber: "L002", FullName: "Boon Keat Tan", Email: "boon@uni.edu", Title: models.TitleAssocProf, Department: "Computing", IsFromHostFaculty: true})
	repo.addLecturer(&models.Lecturer{ID: 3, StaffNumber: "L003", FullName: "Chandra Patel", Email: "chandra@other.edu", Title: models.TitleDr, Department: "Computing", IsFromHostFaculty: false})
	repo.addLecturer(&models.Lecturer{ID: 4, StaffNumber: "L004", FullName: "Daliah Ismail", Email: "daliah@uni.edu", Title: models.TitleDr, Department: "Computing", IsFromHostFaculty: true})
	repo.addLecturer(&models.Lecturer{ID: 5, StaffNumber: "L005", FullName: "Emil Hassan", Email: "emil@uni.edu", Title: models.TitleProf, Department: "Computing", IsFromHostFaculty: true})

	repo.addStudent(&models.Student{ID: 1, MatricNumber: "PG0001", FullName: "Farid Osman", Department: "Computing", CurrentSemester: 6, MainSupervisorID: 1})

	// Student 2 is co-supervised by lecturer 2, who would otherwise be a
	// valid examiner.
	repo.addStudent(&models.Student{ID: 2, MatricNumber: "PG0002", FullName: "Goh Li Wen", Department: "Computing", CurrentSemester: 6, MainSupervisorID: 1,
		CoSupervisors: []models.Lecturer{{ID: 2, StaffNumber: "L002", FullName: "Boon Keat Tan", Email: "boon@uni.edu", Title: models.TitleAssocProf, Department: "Computing", IsFromHostFaculty: true}}})

	service := NewNominationService(repo, nil, logger, validator.New(), publisher, notifier)

	return &nominationFixture{service: service, repo: repo, publisher: publisher, sender: sender}
}

func coordinatorActor() models.Actor {
	return models.Actor{UserID: "coord-1", Department: "Computing", Roles: []models.UserRole{models.RoleProgramCoordinator}}
}

func supervisorActor() models.Actor {
	return models.Actor{UserID: "sup-1", StaffNumber: "L001", Roles: []models.UserRole{models.RoleSupervisor}}
}

func TestNominationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("complete committee derives Nominated", func(t *testing.T) {
		fx := newNominationFixture(t)

		req := &CreateNominationRequest{
			StudentID:    1,
			Semester:     6,
			AcademicYear: "2025/2026",
			Examiner1ID:  uintPtr(2),
			Examiner2ID:  uintPtr(3),
			Examiner3ID:  uintPtr(4),
		}

		resp, err := fx.service.Create(ctx, req, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.NominationStatus != models.StatusNominated {
			t.Fatalf("expected Nominated, got %s", resp.NominationStatus)
		}
		if resp.NominatedBy == nil || *resp.NominatedBy != "coord-1" {
			t.Fatalf("expected nomination stamp for coord-1, got %v", resp.NominatedBy)
		}
		if resp.NominatedAt == nil {
			t.Fatal("expected NominatedAt to be set")
		}
	})

	t.Run("partial committee stays Pending", func(t *testing.T) {
		fx := newNominationFixture(t)

		req := &CreateNominationRequest{
			StudentID:    1,
			Semester:     6,
			AcademicYear: "2025/2026",
			Examiner1ID:  uintPtr(2),
		}

		resp, err := fx.service.Create(ctx, req, supervisorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.NominationStatus != models.StatusPending {
			t.Fatalf("expected Pending, got %s", resp.NominationStatus)
		}
		if resp.NominatedBy == nil || *resp.NominatedBy != "sup-1" {
			t.Fatalf("creation must stamp the nominator, got %v", resp.NominatedBy)
		}
		if resp.NominatedAt == nil {
			t.Fatal("creation must stamp NominatedAt")
		}
	})

	t.Run("co-supervisor cannot take an examiner slot", func(t *testing.T) {
		fx := newNominationFixture(t)

		req := &CreateNominationRequest{
			StudentID:    2,
			Semester:     6,
			AcademicYear: "2025/2026",
			Examiner2ID:  uintPtr(2),
		}

		_, err := fx.service.Create(ctx, req, coordinatorActor())
		var ruleErr *validator.RuleViolationError
		if !errors.As(err, &ruleErr) {
			t.Fatalf("expected RuleViolationError, got %v", err)
		}
		if ruleErr.Reason != "Examiner 2 must not be a co-supervisor of the student" {
			t.Fatalf("unexpected reason %q", ruleErr.Reason)
		}
	})

	t.Run("duplicate student and semester", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{StudentID: 1, Semester: 6, AcademicYear: "2025/2026", NominationStatus: models.StatusPending})

		req := &CreateNominationRequest{StudentID: 1, Semester: 6, AcademicYear: "2025/2026"}
		_, err := fx.service.Create(ctx, req, coordinatorActor())
		if !IsDuplicateNominationError(err) {
			t.Fatalf("expected DuplicateNominationError, got %v", err)
		}
	})

	t.Run("same student in a different semester is allowed", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{StudentID: 1, Semester: 5, AcademicYear: "2024/2025", NominationStatus: models.StatusLocked})

		req := &CreateNominationRequest{StudentID: 1, Semester: 6, AcademicYear: "2025/2026"}
		if _, err := fx.service.Create(ctx, req, coordinatorActor()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ineligible examiner 1 rejected", func(t *testing.T) {
		fx := newNominationFixture(t)

		// Lecturer 4 is a Dr: below the examiner 1 title floor.
		req := &CreateNominationRequest{
			StudentID:    1,
			Semester:     6,
			AcademicYear: "2025/2026",
			Examiner1ID:  uintPtr(4),
		}

		_, err := fx.service.Create(ctx, req, coordinatorActor())
		var ruleErr *validator.RuleViolationError
		if !errors.As(err, &ruleErr) {
			t.Fatalf("expected RuleViolationError, got %v", err)
		}
		if ruleErr.Reason != "Examiner 1 must be at least an Assoc Prof" {
			t.Fatalf("unexpected reason: %s", ruleErr.Reason)
		}
	})

	t.Run("same lecturer in two slots rejected", func(t *testing.T) {
		fx := newNominationFixture(t)

		req := &CreateNominationRequest{
			StudentID:    1,
			Semester:     6,
			AcademicYear: "2025/2026",
			Examiner1ID:  uintPtr(2),
			Examiner2ID:  uintPtr(2),
		}

		_, err := fx.service.Create(ctx, req, coordinatorActor())
		var ruleErr *validator.RuleViolationError
		if !errors.As(err, &ruleErr) {
			t.Fatalf("expected RuleViolationError, got %v", err)
		}
		if ruleErr.Reason != "Examiner 1 and Examiner 2 must be different lecturers" {
			t.Fatalf("unexpected reason: %s", ruleErr.Reason)
		}
	})

	t.Run("unknown examiner id", func(t *testing.T) {
		fx := newNominationFixture(t)

		req := &CreateNominationRequest{
			StudentID:    1,
			Semester:     6,
			AcademicYear: "2025/2026",
			Examiner2ID:  uintPtr(99),
		}

		_, err := fx.service.Create(ctx, req, coordinatorActor())
		if !errors.Is(err, ErrLecturerNotFound) {
			t.Fatalf("expected ErrLecturerNotFound, got %v", err)
		}
	})

	t.Run("supervisor of another student rejected", func(t *testing.T) {
		fx := newNominationFixture(t)

		// L004 exists but does not supervise student 1.
		actor := models.Actor{UserID: "sup-2", StaffNumber: "L004", Roles: []models.UserRole{models.RoleSupervisor}}
		req := &CreateNominationRequest{StudentID: 1, Semester: 6, AcademicYear: "2025/2026"}

		_, err := fx.service.Create(ctx, req, actor)
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("coordinator outside the department rejected", func(t *testing.T) {
		fx := newNominationFixture(t)

		actor := models.Actor{UserID: "coord-2", Department: "Engineering", Roles: []models.UserRole{models.RoleProgramCoordinator}}
		req := &CreateNominationRequest{StudentID: 1, Semester: 6, AcademicYear: "2025/2026"}

		_, err := fx.service.Create(ctx, req, actor)
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		fx := newNominationFixture(t)

		req := &CreateNominationRequest{StudentID: 42, Semester: 6, AcademicYear: "2025/2026"}
		_, err := fx.service.Create(ctx, req, coordinatorActor())
		if !errors.Is(err, ErrStudentNotFound) {
			t.Fatalf("expected ErrStudentNotFound, got %v", err)
		}
	})
}

func TestNominationService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("locked record rejects updates", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 10, StudentID: 1, Semester: 6, NominationStatus: models.StatusLocked})

		_, err := fx.service.Update(ctx, 10, &UpdateNominationRequest{Examiner1ID: uintPtr(2)}, coordinatorActor())
		if !IsLockedRecordError(err) {
			t.Fatalf("expected LockedRecordError, got %v", err)
		}
	})

	t.Run("removing an examiner demotes and re-stamps", func(t *testing.T) {
		fx := newNominationFixture(t)
		by := "sup-1"
		at := time.Now().Add(-time.Hour)
		fx.repo.addEvaluation(&models.Evaluation{
			ID: 11, StudentID: 1, Semester: 6,
			NominationStatus: models.StatusNominated,
			Examiner1ID:      uintPtr(2), Examiner2ID: uintPtr(3), Examiner3ID: uintPtr(4),
			NominatedBy: &by, NominatedAt: &at,
		})

		resp, err := fx.service.Update(ctx, 11, &UpdateNominationRequest{
			Examiner1ID: uintPtr(2),
			Examiner2ID: uintPtr(3),
		}, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.NominationStatus != models.StatusPending {
			t.Fatalf("expected demotion to Pending, got %s", resp.NominationStatus)
		}
		if resp.NominatedBy == nil || *resp.NominatedBy != "coord-1" {
			t.Fatalf("update must re-stamp the nominator, got %v", resp.NominatedBy)
		}
		if resp.NominatedAt == nil || !resp.NominatedAt.After(at) {
			t.Fatal("update must refresh NominatedAt")
		}
	})

	t.Run("completing the slots promotes", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{
			ID: 12, StudentID: 1, Semester: 6,
			NominationStatus: models.StatusPending,
			Examiner1ID:      uintPtr(2),
		})

		resp, err := fx.service.Update(ctx, 12, &UpdateNominationRequest{
			Examiner1ID: uintPtr(2),
			Examiner2ID: uintPtr(3),
			Examiner3ID: uintPtr(4),
		}, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.NominationStatus != models.StatusNominated {
			t.Fatalf("expected promotion to Nominated, got %s", resp.NominationStatus)
		}
		if resp.NominatedBy == nil || *resp.NominatedBy != "coord-1" {
			t.Fatalf("expected nomination stamp, got %v", resp.NominatedBy)
		}
	})

	t.Run("unknown evaluation", func(t *testing.T) {
		fx := newNominationFixture(t)

		_, err := fx.service.Update(ctx, 99, &UpdateNominationRequest{}, coordinatorActor())
		if !errors.Is(err, ErrEvaluationNotFound) {
			t.Fatalf("expected ErrEvaluationNotFound, got %v", err)
		}
	})
}

func TestNominationService_Lock(t *testing.T) {
	ctx := context.Background()

	t.Run("coordinator locks and stamps", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 20, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		resp, err := fx.service.Lock(ctx, 20, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.NominationStatus != models.StatusLocked {
			t.Fatalf("expected Locked, got %s", resp.NominationStatus)
		}
		if resp.LockedBy == nil || *resp.LockedBy != "coord-1" {
			t.Fatalf("expected lock stamp, got %v", resp.LockedBy)
		}
		if resp.CanEdit || resp.CanPostpone {
			t.Fatal("locked record must not be editable")
		}

		published := fx.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventEvaluationLocked {
			t.Fatalf("expected one lock event, got %+v", published)
		}
	})

	t.Run("supervisor cannot lock", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 21, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		_, err := fx.service.Lock(ctx, 21, supervisorActor())
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("coordinator outside the department cannot lock", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 22, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		actor := models.Actor{UserID: "coord-2", Department: "Engineering", Roles: []models.UserRole{models.RoleProgramCoordinator}}
		_, err := fx.service.Lock(ctx, 22, actor)
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("already locked", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 23, StudentID: 1, Semester: 6, NominationStatus: models.StatusLocked})

		_, err := fx.service.Lock(ctx, 23, coordinatorActor())
		if !IsLockedRecordError(err) {
			t.Fatalf("expected LockedRecordError, got %v", err)
		}
	})
}

func TestNominationService_LockBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("locked records are skipped not failed", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 30, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})
		fx.repo.addEvaluation(&models.Evaluation{ID: 31, StudentID: 1, Semester: 7, NominationStatus: models.StatusLocked})
		fx.repo.addEvaluation(&models.Evaluation{ID: 32, StudentID: 1, Semester: 8, NominationStatus: models.StatusPending})

		resp, err := fx.service.LockBatch(ctx, &LockNominationsBatchRequest{EvaluationIDs: []uint{30, 31, 32}}, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Requested != 3 || resp.Locked != 2 {
			t.Fatalf("expected 2 of 3 locked, got %+v", resp)
		}
		if len(resp.SkippedIDs) != 1 || resp.SkippedIDs[0] != 31 {
			t.Fatalf("expected skipped [31], got %v", resp.SkippedIDs)
		}
		if fx.repo.evaluations[32].NominationStatus != models.StatusLocked {
			t.Fatal("evaluation 32 should be locked")
		}
	})

	t.Run("unknown id fails the whole batch", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 33, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		_, err := fx.service.LockBatch(ctx, &LockNominationsBatchRequest{EvaluationIDs: []uint{33, 99}}, coordinatorActor())
		if !errors.Is(err, ErrEvaluationNotFound) {
			t.Fatalf("expected ErrEvaluationNotFound, got %v", err)
		}
	})

	t.Run("coordinator outside the department cannot lock via batch", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 34, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		actor := models.Actor{UserID: "coord-2", Department: "Engineering", Roles: []models.UserRole{models.RoleProgramCoordinator}}
		_, err := fx.service.LockBatch(ctx, &LockNominationsBatchRequest{EvaluationIDs: []uint{34}}, actor)
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
		if fx.repo.evaluations[34].IsLocked() {
			t.Fatal("evaluation 34 must stay unlocked")
		}
	})
}

func TestNominationService_Postpone(t *testing.T) {
	ctx := context.Background()

	t.Run("postpone records history and notifies committee", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{
			ID: 40, StudentID: 1, Semester: 6,
			NominationStatus: models.StatusNominated,
			Examiner1ID:      uintPtr(2), Examiner2ID: uintPtr(3), Examiner3ID: uintPtr(4),
			ChairpersonID: uintPtr(5),
		})

		target := time.Now().AddDate(0, 2, 0)
		resp, err := fx.service.Postpone(ctx, 40, &PostponeNominationRequest{
			Reason:      "Student on medical leave",
			PostponedTo: target,
		}, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.NominationStatus != models.StatusPostponed || !resp.IsPostponed {
			t.Fatalf("expected Postponed, got %+v", resp.NominationStatus)
		}

		var entries []models.PostponementEntry
		if err := json.Unmarshal(resp.PostponementLog, &entries); err != nil {
			t.Fatalf("failed to decode postponement log: %v", err)
		}
		if len(entries) != 1 || entries[0].Reason != "Student on medical leave" || entries[0].PostponedBy != "coord-1" {
			t.Fatalf("unexpected log entries: %+v", entries)
		}

		published := fx.publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventEvaluationPostponed {
			t.Fatalf("expected one postponed event, got %+v", published)
		}

		// Supervisor, three examiners and the chairperson.
		if len(fx.sender.sent) != 5 {
			t.Fatalf("expected 5 notifications, got %d", len(fx.sender.sent))
		}
	})

	t.Run("second postponement appends to the log", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 41, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		first := time.Now().AddDate(0, 1, 0)
		if _, err := fx.service.Postpone(ctx, 41, &PostponeNominationRequest{Reason: "Panel unavailable", PostponedTo: first}, coordinatorActor()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second := time.Now().AddDate(0, 3, 0)
		resp, err := fx.service.Postpone(ctx, 41, &PostponeNominationRequest{Reason: "Extended leave", PostponedTo: second}, coordinatorActor())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var entries []models.PostponementEntry
		if err := json.Unmarshal(resp.PostponementLog, &entries); err != nil {
			t.Fatalf("failed to decode postponement log: %v", err)
		}
		if len(entries) != 2 || entries[1].Reason != "Extended leave" {
			t.Fatalf("expected two log entries, got %+v", entries)
		}
	})

	t.Run("past target date rejected", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 42, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		_, err := fx.service.Postpone(ctx, 42, &PostponeNominationRequest{
			Reason:      "Backdated",
			PostponedTo: time.Now().AddDate(0, -1, 0),
		}, coordinatorActor())
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
	})

	t.Run("locked record cannot be postponed", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 43, StudentID: 1, Semester: 6, NominationStatus: models.StatusLocked})

		_, err := fx.service.Postpone(ctx, 43, &PostponeNominationRequest{
			Reason:      "Too late",
			PostponedTo: time.Now().AddDate(0, 1, 0),
		}, coordinatorActor())
		if !IsLockedRecordError(err) {
			t.Fatalf("expected LockedRecordError, got %v", err)
		}
	})
}

func TestNominationService_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("get by id outside scope is denied", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 50, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		// L004 neither supervises nor examines student 1.
		actor := models.Actor{UserID: "sup-2", StaffNumber: "L004", Roles: []models.UserRole{models.RoleSupervisor}}
		_, err := fx.service.GetByID(ctx, 50, actor)
		if !IsPermissionError(err) {
			t.Fatalf("expected PermissionError, got %v", err)
		}
	})

	t.Run("examiner sees the record regardless of roles", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 51, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated, Examiner2ID: uintPtr(4)})

		// L004 is examiner 2; their only role is chairperson.
		actor := models.Actor{UserID: "chair-1", StaffNumber: "L004", Roles: []models.UserRole{models.RoleChairperson}}
		resp, err := fx.service.GetByID(ctx, 51, actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ID != 51 {
			t.Fatalf("expected evaluation 51, got %d", resp.ID)
		}
	})

	t.Run("empty scope returns an empty page", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 52, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})

		// Supervisor role with no lecturer record resolves to nothing.
		actor := models.Actor{UserID: "ghost", StaffNumber: "NOPE", Roles: []models.UserRole{models.RoleSupervisor}}
		resp, err := fx.service.List(ctx, repositories.EvaluationFilters{Limit: 10}, actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Total != 0 || len(resp.Evaluations) != 0 {
			t.Fatalf("expected empty page, got %+v", resp)
		}
		if resp.Page != 1 {
			t.Fatalf("expected page 1, got %d", resp.Page)
		}
	})

	t.Run("pgam lists everything", func(t *testing.T) {
		fx := newNominationFixture(t)
		fx.repo.addEvaluation(&models.Evaluation{ID: 53, StudentID: 1, Semester: 6, NominationStatus: models.StatusNominated})
		fx.repo.addEvaluation(&models.Evaluation{ID: 54, StudentID: 1, Semester: 7, NominationStatus: models.StatusPending})

		actor := models.Actor{UserID: "pgam-1", Roles: []models.UserRole{models.RolePGAM}}
		resp, err := fx.service.List(ctx, repositories.EvaluationFilters{Limit: 10}, actor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Total != 2 {
			t.Fatalf("expected 2 records, got %d", resp.Total)
		}
	})
}
