package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	evaluations map[uint]*models.Evaluation
	students    map[uint]*models.Student
	lecturers   map[uint]*models.Lecturer

	nextEvaluationID   uint
	updateErr          error
	studentSemesterErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		evaluations:      make(map[uint]*models.Evaluation),
		students:         make(map[uint]*models.Student),
		lecturers:        make(map[uint]*models.Lecturer),
		nextEvaluationID: 1,
	}
}

func (f *fakeRepository) addLecturer(l *models.Lecturer)  { f.lecturers[l.ID] = l }
func (f *fakeRepository) addStudent(s *models.Student)    { f.students[s.ID] = s }
func (f *fakeRepository) addEvaluation(e *models.Evaluation) {
	if e.ID == 0 {
		e.ID = f.nextEvaluationID
	}
	if e.ID >= f.nextEvaluationID {
		f.nextEvaluationID = e.ID + 1
	}
	f.evaluations[e.ID] = e
}

func (f *fakeRepository) Evaluation() repositories.EvaluationRepository { return &fakeEvaluationRepo{f} }
func (f *fakeRepository) Student() repositories.StudentRepository       { return &fakeStudentRepo{f} }
func (f *fakeRepository) Lecturer() repositories.LecturerRepository     { return &fakeLecturerRepo{f} }
func (f *fakeRepository) User() repositories.UserRepository             { return nil }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// attachRelations resolves the committee pointers the way the real
// repository preloads them.
func (f *fakeRepository) attachRelations(e *models.Evaluation) {
	if student, ok := f.students[e.StudentID]; ok {
		s := *student
		if supervisor, ok := f.lecturers[s.MainSupervisorID]; ok {
			s.MainSupervisor = *supervisor
		}
		e.Student = s
	}
	lookup := func(id *uint) *models.Lecturer {
		if id == nil {
			return nil
		}
		return f.lecturers[*id]
	}
	e.Examiner1 = lookup(e.Examiner1ID)
	e.Examiner2 = lookup(e.Examiner2ID)
	e.Examiner3 = lookup(e.Examiner3ID)
	e.Chairperson = lookup(e.ChairpersonID)
}

type fakeEvaluationRepo struct{ f *fakeRepository }

func (r *fakeEvaluationRepo) Create(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	for _, existing := range r.f.evaluations {
		if existing.StudentID == evaluation.StudentID && existing.Semester == evaluation.Semester {
			return repositories.ErrDuplicateKey
		}
	}
	r.f.addEvaluation(evaluation)
	return nil
}

func (r *fakeEvaluationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Evaluation, error) {
	evaluation, ok := r.f.evaluations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return evaluation, nil
}

func (r *fakeEvaluationRepo) GetByIDWithCommittee(ctx context.Context, tx *gorm.DB, id uint) (*models.Evaluation, error) {
	evaluation, ok := r.f.evaluations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	r.f.attachRelations(evaluation)
	return evaluation, nil
}

func (r *fakeEvaluationRepo) GetByStudentAndSemester(ctx context.Context, tx *gorm.DB, studentID uint, semester int) (*models.Evaluation, error) {
	if r.f.studentSemesterErr != nil {
		return nil, r.f.studentSemesterErr
	}
	for _, evaluation := range r.f.evaluations {
		if evaluation.StudentID == studentID && evaluation.Semester == semester {
			return evaluation, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEvaluationRepo) Update(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	if r.f.updateErr != nil {
		return r.f.updateErr
	}
	if _, ok := r.f.evaluations[evaluation.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.f.evaluations[evaluation.ID] = evaluation
	return nil
}

func (r *fakeEvaluationRepo) UpdateChairperson(ctx context.Context, tx *gorm.DB, id uint, chairpersonID uint, isAutoAssigned bool, semester *int, academicYear *string) error {
	evaluation, ok := r.f.evaluations[id]
	if !ok {
		return repositories.ErrNotFound
	}
	evaluation.ChairpersonID = &chairpersonID
	evaluation.IsAutoAssigned = isAutoAssigned
	if semester != nil {
		evaluation.Semester = *semester
	}
	if academicYear != nil {
		evaluation.AcademicYear = *academicYear
	}
	return nil
}

func (r *fakeEvaluationRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.EvaluationFilters, scope repositories.EvaluationScope) ([]*models.Evaluation, int64, error) {
	var matched []*models.Evaluation
	for _, evaluation := range r.f.evaluations {
		r.f.attachRelations(evaluation)
		if !scopeMatches(scope, evaluation) {
			continue
		}
		if filters.Status != nil && evaluation.NominationStatus != *filters.Status {
			continue
		}
		if filters.Semester != nil && evaluation.Semester != *filters.Semester {
			continue
		}
		matched = append(matched, evaluation)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (r *fakeEvaluationRepo) CountChairSessions(ctx context.Context, tx *gorm.DB, chairpersonID uint, department string, semester int) (int64, error) {
	var count int64
	for _, evaluation := range r.f.evaluations {
		if evaluation.ChairpersonID == nil || *evaluation.ChairpersonID != chairpersonID {
			continue
		}
		if evaluation.Semester != semester {
			continue
		}
		student, ok := r.f.students[evaluation.StudentID]
		if !ok || student.Department != department {
			continue
		}
		count++
	}
	return count, nil
}

type fakeStudentRepo struct{ f *fakeRepository }

func (r *fakeStudentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	student, ok := r.f.students[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	s := *student
	if supervisor, ok := r.f.lecturers[s.MainSupervisorID]; ok {
		s.MainSupervisor = *supervisor
	}
	return &s, nil
}

func (r *fakeStudentRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	_, ok := r.f.students[id]
	return ok, nil
}

type fakeLecturerRepo struct{ f *fakeRepository }

func (r *fakeLecturerRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lecturer, error) {
	lecturer, ok := r.f.lecturers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return lecturer, nil
}

func (r *fakeLecturerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Lecturer, error) {
	var lecturers []*models.Lecturer
	for _, id := range ids {
		if lecturer, ok := r.f.lecturers[id]; ok {
			lecturers = append(lecturers, lecturer)
		}
	}
	return lecturers, nil
}

func (r *fakeLecturerRepo) GetByStaffNumber(ctx context.Context, tx *gorm.DB, staffNumber string) (*models.Lecturer, error) {
	for _, lecturer := range r.f.lecturers {
		if lecturer.StaffNumber == staffNumber {
			return lecturer, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeLecturerRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.LecturerFilters) ([]*models.Lecturer, int64, error) {
	var lecturers []*models.Lecturer
	for _, lecturer := range r.f.lecturers {
		if filters.Department != nil && lecturer.Department != *filters.Department {
			continue
		}
		if filters.Title != nil && lecturer.Title != *filters.Title {
			continue
		}
		lecturers = append(lecturers, lecturer)
	}
	sort.Slice(lecturers, func(i, j int) bool { return lecturers[i].FullName < lecturers[j].FullName })
	return lecturers, int64(len(lecturers)), nil
}
