package repository

import (
	"alcyxob/fitness-api/internal/domain"
	"context"

	"github.com/google/uuid"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create inserts a new user. The id is caller-supplied; inserting an
	// existing id returns ErrConflict (the store's uniqueness constraint
	// resolves concurrent creates, there is no check-then-insert).
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// SearchByUsername returns all users whose username contains term.
	// An empty term matches every user.
	SearchByUsername(ctx context.Context, term string) ([]domain.User, error)
	// Update applies the non-nil fields of patch and returns the updated
	// user, or ErrNotFound.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
}

// ExerciseRepository defines the interface for interacting with the exercise
// library.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error)
	SearchByName(ctx context.Context, term string) ([]domain.Exercise, error)
	// AllExist reports whether every id references an existing exercise.
	AllExist(ctx context.Context, ids []uuid.UUID) (bool, error)
	// GetByIDs fetches the exercises for the given ids, keyed by id.
	// Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Exercise, error)
}

// WorkoutTemplateRepository defines the interface for interacting with
// workout template aggregates. Elements are part of the aggregate and are
// persisted and removed with it in a single call.
type WorkoutTemplateRepository interface {
	Create(ctx context.Context, template *domain.WorkoutTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error)
	// ListByUser returns the user's templates without their elements.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WorkoutTemplate, error)
	// Delete removes the template if it exists and belongs to userID,
	// reporting how many templates were removed.
	Delete(ctx context.Context, userID, templateID uuid.UUID) (int64, error)
}

// WorkoutExecutionRepository defines the interface for interacting with
// workout execution aggregates.
type WorkoutExecutionRepository interface {
	Create(ctx context.Context, execution *domain.WorkoutExecution) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutExecution, error)
}
