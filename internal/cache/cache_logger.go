package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidateEvaluationCache invalidates all evaluation-related caches using pipeline
func InvalidateEvaluationCache(ctx context.Context, cm *CacheManager, evaluationID uint, studentID uint) {
	// Delete specific keys using single call
	SafeDelete(ctx, cm.Evaluation,
		fmt.Sprintf("id:%d", evaluationID),
		fmt.Sprintf("details:%d", evaluationID))

	// Invalidate patterns
	SafeInvalidatePattern(ctx, cm.Evaluation, fmt.Sprintf("student:%d:*", studentID))
	SafeInvalidatePattern(ctx, cm.Evaluation, "list:*")
	SafeInvalidatePattern(ctx, cm.Evaluation, "chair_count:*")
}

// InvalidateLecturerCache invalidates all lecturer-related caches
func InvalidateLecturerCache(ctx context.Context, cm *CacheManager, lecturerID uint) {
	SafeDelete(ctx, cm.Lecturer, fmt.Sprintf("id:%d", lecturerID))
	SafeInvalidatePattern(ctx, cm.Lecturer, "list:*")
	SafeInvalidatePattern(ctx, cm.Lecturer, "staff:*")
}
