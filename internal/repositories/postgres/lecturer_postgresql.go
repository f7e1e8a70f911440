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

type LecturerPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewLecturerPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.LecturerRepository {
	return &LecturerPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (l *LecturerPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return l.db
}

// GetByID retrieves a lecturer by ID with caching
func (l *LecturerPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Lecturer, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var lecturer models.Lecturer

	err := l.cacheManager.Lecturer.CacheOrExecute(ctx, cacheKey, &lecturer, cache.LecturerCacheConfig.TTL, func() (interface{}, error) {
		var dbLecturer models.Lecturer
		err := l.getDB(tx).WithContext(ctx).First(&dbLecturer, id).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get lecturer: %w", err)
		}
		return &dbLecturer, nil
	})

	if err != nil {
		return nil, err
	}

	return &lecturer, nil
}

// GetByIDs retrieves multiple lecturers in one query, preserving no
// particular order. Missing IDs are simply absent from the result.
func (l *LecturerPostgreSQL) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Lecturer, error) {
	if len(ids) == 0 {
		return []*models.Lecturer{}, nil
	}

	var lecturers []*models.Lecturer
	err := l.getDB(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Find(&lecturers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get lecturers: %w", err)
	}

	return lecturers, nil
}

// GetByStaffNumber retrieves a lecturer by staff number with caching
func (l *LecturerPostgreSQL) GetByStaffNumber(ctx context.Context, tx *gorm.DB, staffNumber string) (*models.Lecturer, error) {
	cacheKey := fmt.Sprintf("staff:%s", staffNumber)
	var lecturer models.Lecturer

	err := l.cacheManager.Lecturer.CacheOrExecute(ctx, cacheKey, &lecturer, cache.LecturerCacheConfig.TTL, func() (interface{}, error) {
		var dbLecturer models.Lecturer
		err := l.getDB(tx).WithContext(ctx).
			Where("staff_number = ?", staffNumber).
			First(&dbLecturer).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get lecturer by staff number: %w", err)
		}
		return &dbLecturer, nil
	})

	if err != nil {
		return nil, err
	}

	return &lecturer, nil
}

// List retrieves lecturers with filters and pagination, ordered by name
func (l *LecturerPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.LecturerFilters) ([]*models.Lecturer, int64, error) {
	query := l.getDB(tx).WithContext(ctx).Model(&models.Lecturer{})

	query = l.helpers.ApplyLecturerFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("full_name ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var lecturers []*models.Lecturer
	if err := query.Find(&lecturers).Error; err != nil {
		return nil, 0, err
	}

	return lecturers, total, nil
}
