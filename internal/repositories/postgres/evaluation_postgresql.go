package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/cache"
	"github.com/SAP-F-2025/evaluation-service/internal/models"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
)

type EvaluationPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewEvaluationPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.EvaluationRepository {
	return &EvaluationPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// getDB returns the transaction DB if provided, otherwise returns the default DB
func (e *EvaluationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return e.db
}

// Create inserts a new evaluation record and invalidates list caches. The
// unique (student_id, semester) index rejects concurrent duplicates.
func (e *EvaluationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	if err := e.getDB(tx).WithContext(ctx).Create(evaluation).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	cache.SafeInvalidatePattern(ctx, e.cacheManager.Evaluation, fmt.Sprintf("student:%d:*", evaluation.StudentID))
	cache.SafeInvalidatePattern(ctx, e.cacheManager.Evaluation, "list:*")

	return nil
}

// GetByID retrieves an evaluation by ID with caching
func (e *EvaluationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Evaluation, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var evaluation models.Evaluation

	err := e.cacheManager.Evaluation.CacheOrExecute(ctx, cacheKey, &evaluation, cache.EvaluationCacheConfig.TTL, func() (interface{}, error) {
		var dbEvaluation models.Evaluation
		err := e.getDB(tx).WithContext(ctx).
			Preload("Student").
			First(&dbEvaluation, id).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get evaluation: %w", err)
		}
		return &dbEvaluation, nil
	})

	if err != nil {
		return nil, err
	}

	return &evaluation, nil
}

// GetByIDWithCommittee retrieves an evaluation with the full committee
// (supervisors and all nominated lecturers) preloaded.
func (e *EvaluationPostgreSQL) GetByIDWithCommittee(ctx context.Context, tx *gorm.DB, id uint) (*models.Evaluation, error) {
	cacheKey := fmt.Sprintf("details:%d", id)
	var evaluation models.Evaluation

	err := e.cacheManager.Evaluation.CacheOrExecute(ctx, cacheKey, &evaluation, cache.EvaluationCacheConfig.TTL, func() (interface{}, error) {
		var dbEvaluation models.Evaluation
		err := e.getDB(tx).WithContext(ctx).
			Preload("Student").
			Preload("Student.MainSupervisor").
			Preload("Student.CoSupervisors").
			Preload("Examiner1").
			Preload("Examiner2").
			Preload("Examiner3").
			Preload("Chairperson").
			First(&dbEvaluation, id).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get evaluation details: %w", err)
		}
		return &dbEvaluation, nil
	})

	return &evaluation, err
}

// GetByStudentAndSemester finds the evaluation for a student in a semester.
// Bypasses the cache so the duplicate check sees committed writes.
func (e *EvaluationPostgreSQL) GetByStudentAndSemester(ctx context.Context, tx *gorm.DB, studentID uint, semester int) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := e.getDB(tx).WithContext(ctx).
		Where("student_id = ? AND semester = ?", studentID, semester).
		First(&evaluation).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// Update updates an evaluation and invalidates cache
func (e *EvaluationPostgreSQL) Update(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	if err := e.getDB(tx).WithContext(ctx).Model(&models.Evaluation{}).Where("id = ?", evaluation.ID).Updates(map[string]interface{}{
		"examiner1_id":        evaluation.Examiner1ID,
		"examiner2_id":        evaluation.Examiner2ID,
		"examiner3_id":        evaluation.Examiner3ID,
		"nomination_status":   evaluation.NominationStatus,
		"nominated_by":        evaluation.NominatedBy,
		"nominated_at":        evaluation.NominatedAt,
		"locked_by":           evaluation.LockedBy,
		"locked_at":           evaluation.LockedAt,
		"is_postponed":        evaluation.IsPostponed,
		"postponement_reason": evaluation.PostponementReason,
		"postponed_to":        evaluation.PostponedTo,
		"postponement_log":    evaluation.PostponementLog,
		"updated_at":          evaluation.UpdatedAt,
	}).Error; err != nil {
		return fmt.Errorf("failed to update evaluation: %w", err)
	}

	cache.InvalidateEvaluationCache(ctx, e.cacheManager, evaluation.ID, evaluation.StudentID)

	return nil
}

// UpdateChairperson sets the chairperson slot, optionally correcting the
// session fields in the same write.
func (e *EvaluationPostgreSQL) UpdateChairperson(ctx context.Context, tx *gorm.DB, id uint, chairpersonID uint, isAutoAssigned bool, semester *int, academicYear *string) error {
	updates := map[string]interface{}{
		"chairperson_id":   chairpersonID,
		"is_auto_assigned": isAutoAssigned,
	}
	if semester != nil {
		updates["semester"] = *semester
	}
	if academicYear != nil {
		updates["academic_year"] = *academicYear
	}

	result := e.getDB(tx).WithContext(ctx).
		Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update chairperson: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	cache.SafeDelete(ctx, e.cacheManager.Evaluation,
		fmt.Sprintf("id:%d", id),
		fmt.Sprintf("details:%d", id))
	cache.SafeInvalidatePattern(ctx, e.cacheManager.Evaluation, "list:*")
	cache.SafeInvalidatePattern(ctx, e.cacheManager.Evaluation, "chair_count:*")

	return nil
}

// List retrieves evaluations restricted by the caller's visibility scope,
// with filters and pagination.
func (e *EvaluationPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.EvaluationFilters, scope repositories.EvaluationScope) ([]*models.Evaluation, int64, error) {
	query := e.getDB(tx).WithContext(ctx).
		Model(&models.Evaluation{}).
		Joins("JOIN students ON students.id = evaluations.student_id")

	// Scope first, filters narrow within it
	query = e.helpers.ApplyEvaluationScope(query, scope)
	query = e.helpers.ApplyEvaluationFilters(query, filters)

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination and ordering
	query = e.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	// Execute query
	var evaluations []*models.Evaluation
	err := query.
		Preload("Student").
		Preload("Student.MainSupervisor").
		Preload("Examiner1").
		Preload("Examiner2").
		Preload("Examiner3").
		Preload("Chairperson").
		Find(&evaluations).Error
	if err != nil {
		return nil, 0, err
	}

	return evaluations, total, nil
}

// CountChairSessions counts evaluations the lecturer already chairs for
// students in the given department during the given semester.
func (e *EvaluationPostgreSQL) CountChairSessions(ctx context.Context, tx *gorm.DB, chairpersonID uint, department string, semester int) (int64, error) {
	var count int64
	err := e.getDB(tx).WithContext(ctx).
		Model(&models.Evaluation{}).
		Joins("JOIN students ON students.id = evaluations.student_id").
		Where("evaluations.chairperson_id = ? AND students.department = ? AND evaluations.semester = ?",
			chairpersonID, department, semester).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count chair sessions: %w", err)
	}
	return count, nil
}
