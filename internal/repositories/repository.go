package repositories

import "context"

// Repository aggregates the data access interfaces the nomination engine
// consumes.
type Repository interface {
	Evaluation() EvaluationRepository
	Student() StudentRepository
	Lecturer() LecturerRepository

	// User directory (read-only, external identity provider)
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
