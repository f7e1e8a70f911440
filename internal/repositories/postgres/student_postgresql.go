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

type StudentPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewStudentPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.StudentRepository {
	return &StudentPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (s *StudentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

// GetByID retrieves a student with supervisors preloaded, with caching
func (s *StudentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Student, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var student models.Student

	err := s.cacheManager.Student.CacheOrExecute(ctx, cacheKey, &student, cache.StudentCacheConfig.TTL, func() (interface{}, error) {
		var dbStudent models.Student
		err := s.getDB(tx).WithContext(ctx).
			Preload("MainSupervisor").
			Preload("CoSupervisors").
			First(&dbStudent, id).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get student: %w", err)
		}
		return &dbStudent, nil
	})

	if err != nil {
		return nil, err
	}

	return &student, nil
}

// ExistsByID checks student existence without loading the record
func (s *StudentPostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	var count int64
	err := s.getDB(tx).WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return count > 0, nil
}
