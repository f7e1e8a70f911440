package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type EvaluationFilters struct {
	Status       *models.NominationStatus `json:"status"`
	StudentID    *uint                    `json:"student_id"`
	Semester     *int                     `json:"semester"`
	AcademicYear *string                  `json:"academic_year"`
	Department   *string                  `json:"department"`
	IsPostponed  *bool                    `json:"is_postponed"`
	Limit        int                      `json:"limit"`
	Offset       int                      `json:"offset"`
	SortBy       string                   `json:"sort_by"`    // "created_at", "semester", "nomination_status"
	SortOrder    string                   `json:"sort_order"` // "asc", "desc"
}

type LecturerFilters struct {
	Title             *models.LecturerTitle `json:"title"`
	Department        *string               `json:"department"`
	IsFromHostFaculty *bool                 `json:"is_from_host_faculty"`
	Query             string                `json:"query"`
	Limit             int                   `json:"limit"`
	Offset            int                   `json:"offset"`
}

// UserFilters defines filters for directory queries.
type UserFilters struct {
	Query  string // Search query for name or email
	Limit  int
	Offset int
}

// EvaluationScope is the visibility predicate applied to every evaluation
// listing. It is built from the caller's roles by the service layer and
// rendered into OR-branches by the repository. The zero value matches
// nothing.
type EvaluationScope struct {
	// All short-circuits the scope: the caller sees every record.
	All bool

	// Department restricts to evaluations of students in this department.
	Department *string

	// SupervisorLecturerID restricts to students the lecturer main-supervises.
	SupervisorLecturerID *uint

	// ChairLecturerID restricts to evaluations the lecturer chairs.
	ChairLecturerID *uint

	// ExaminerLecturerID adds evaluations where the lecturer occupies any
	// examiner slot, unioned with whichever branches above are set.
	ExaminerLecturerID *uint
}

// Empty reports whether the scope matches nothing.
func (s EvaluationScope) Empty() bool {
	return !s.All &&
		s.Department == nil &&
		s.SupervisorLecturerID == nil &&
		s.ChairLecturerID == nil &&
		s.ExaminerLecturerID == nil
}

// ===== REPOSITORY INTERFACES =====

type EvaluationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Evaluation, error)
	GetByIDWithCommittee(ctx context.Context, tx *gorm.DB, id uint) (*models.Evaluation, error)
	GetByStudentAndSemester(ctx context.Context, tx *gorm.DB, studentID uint, semester int) (*models.Evaluation, error)
	Update(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error
	UpdateChairperson(ctx context.Context, tx *gorm.DB, id uint, chairpersonID uint, isAutoAssigned bool, semester *int, academicYear *string) error
	List(ctx context.Context, tx *gorm.DB, filters EvaluationFilters, scope EvaluationScope) ([]*models.Evaluation, int64, error)

	// CountChairSessions counts evaluations the lecturer already chairs for
	// students in the given department during the given semester.
	CountChairSessions(ctx context.Context, tx *gorm.DB, chairpersonID uint, department string, semester int) (int64, error)
}

type StudentRepository interface {
	// GetByID resolves the student with main supervisor and co-supervisors
	// preloaded.
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
}

type LecturerRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lecturer, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Lecturer, error)
	GetByStaffNumber(ctx context.Context, tx *gorm.DB, staffNumber string) (*models.Lecturer, error)
	List(ctx context.Context, tx *gorm.DB, filters LecturerFilters) ([]*models.Lecturer, int64, error)
}

// UserRepository is the read-only directory interface (the evaluation
// service is not the owner of user data).
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByStaffNumber(ctx context.Context, staffNumber string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}
