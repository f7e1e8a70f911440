package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/evaluation-service/internal/events"
	"github.com/SAP-F-2025/evaluation-service/internal/repositories"
	"github.com/SAP-F-2025/evaluation-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Service toggles
	Nomination ServiceConfig
	Assignment ServiceConfig
	Suggestion ServiceConfig
	Lecturer   ServiceConfig

	// Global settings
	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	Enabled      bool
	CacheEnabled bool
	CacheTTL     time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	config         ServiceManagerConfig

	// Service instances
	nominationService NominationService
	assignmentService AssignmentService
	suggestionService SuggestionService
	lecturerService   LecturerService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,

		Nomination: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     5 * time.Minute,
		},
		Assignment: ServiceConfig{
			Enabled:      true,
			CacheEnabled: false,
			CacheTTL:     0,
		},
		Suggestion: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     15 * time.Minute,
		},
		Lecturer: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     15 * time.Minute,
		},

		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(db, repo, logger, v, publisher, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	notifier := NewPostponementNotifier(NewLogSender(sm.logger), sm.logger)

	if sm.config.Nomination.Enabled {
		sm.nominationService = NewNominationService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher, notifier)
		sm.logger.Info("Nomination service initialized")
	}

	if sm.config.Assignment.Enabled {
		sm.assignmentService = NewAssignmentService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)
		sm.logger.Info("Assignment service initialized")
	}

	if sm.config.Suggestion.Enabled {
		sm.suggestionService = NewSuggestionService(sm.repo, sm.db, sm.logger, sm.validator)
		sm.logger.Info("Suggestion service initialized")
	}

	if sm.config.Lecturer.Enabled {
		sm.lecturerService = NewLecturerService(sm.repo, sm.db, sm.logger)
		sm.logger.Info("Lecturer service initialized")
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Nomination() NominationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Nomination.Enabled && sm.nominationService != nil {
		return sm.nominationService
	}

	panic("nomination service not enabled or not initialized")
}

func (sm *serviceManager) Assignment() AssignmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Assignment.Enabled && sm.assignmentService != nil {
		return sm.assignmentService
	}

	panic("assignment service not enabled or not initialized")
}

func (sm *serviceManager) Suggestion() SuggestionService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Suggestion.Enabled && sm.suggestionService != nil {
		return sm.suggestionService
	}

	panic("suggestion service not enabled or not initialized")
}

func (sm *serviceManager) Lecturer() LecturerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Lecturer.Enabled && sm.lecturerService != nil {
		return sm.lecturerService
	}

	panic("lecturer service not enabled or not initialized")
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
