package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
)

// SharedHelpers contains common query-building operations
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// ApplyEvaluationFilters applies common filters to evaluation queries
func (h *SharedHelpers) ApplyEvaluationFilters(query *gorm.DB, filters repositories.EvaluationFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("evaluations.nomination_status = ?", *filters.Status)
	}
	if filters.StudentID != nil {
		query = query.Where("evaluations.student_id = ?", *filters.StudentID)
	}
	if filters.Semester != nil {
		query = query.Where("evaluations.semester = ?", *filters.Semester)
	}
	if filters.AcademicYear != nil {
		query = query.Where("evaluations.academic_year = ?", *filters.AcademicYear)
	}
	if filters.Department != nil {
		query = query.Where("students.department = ?", *filters.Department)
	}
	if filters.IsPostponed != nil {
		query = query.Where("evaluations.is_postponed = ?", *filters.IsPostponed)
	}
	return query
}

// ApplyEvaluationScope renders the visibility predicate into SQL. Branches
// are OR-ed together; an empty scope matches nothing.
func (h *SharedHelpers) ApplyEvaluationScope(query *gorm.DB, scope repositories.EvaluationScope) *gorm.DB {
	if scope.All {
		return query
	}
	if scope.Empty() {
		return query.Where("1 = 0")
	}

	var conds []string
	var args []interface{}

	if scope.Department != nil {
		conds = append(conds, "students.department = ?")
		args = append(args, *scope.Department)
	}
	if scope.SupervisorLecturerID != nil {
		conds = append(conds, "students.main_supervisor_id = ?")
		args = append(args, *scope.SupervisorLecturerID)
	}
	if scope.ChairLecturerID != nil {
		conds = append(conds, "evaluations.chairperson_id = ?")
		args = append(args, *scope.ChairLecturerID)
	}
	if scope.ExaminerLecturerID != nil {
		conds = append(conds, "(evaluations.examiner1_id = ? OR evaluations.examiner2_id = ? OR evaluations.examiner3_id = ?)")
		args = append(args, *scope.ExaminerLecturerID, *scope.ExaminerLecturerID, *scope.ExaminerLecturerID)
	}

	return query.Where(strings.Join(conds, " OR "), args...)
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	// Whitelist allowed sort columns
	allowedSortColumns := map[string]bool{
		"created_at":        true,
		"updated_at":        true,
		"id":                true,
		"semester":          true,
		"academic_year":     true,
		"nomination_status": true,
	}

	// Validate and set sort column
	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	// Validate and set sort order
	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order("evaluations." + sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// ApplyLecturerFilters applies common filters to lecturer queries
func (h *SharedHelpers) ApplyLecturerFilters(query *gorm.DB, filters repositories.LecturerFilters) *gorm.DB {
	if filters.Title != nil {
		query = query.Where("title = ?", *filters.Title)
	}
	if filters.Department != nil {
		query = query.Where("department = ?", *filters.Department)
	}
	if filters.IsFromHostFaculty != nil {
		query = query.Where("is_from_host_faculty = ?", *filters.IsFromHostFaculty)
	}
	if filters.Query != "" {
		search := "%" + filters.Query + "%"
		query = query.Where("full_name ILIKE ? OR staff_number ILIKE ?", search, search)
	}
	return query
}
