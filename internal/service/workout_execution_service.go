package service

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
)

var ErrExecutionNotFound = errors.New("workout execution not found")

// WorkoutExecutionService owns the workout execution aggregate lifecycle.
// Executions have no owner column of their own; ownership is derived through
// the referenced template on every operation rather than trusted from the
// request path.
type WorkoutExecutionService interface {
	CreateExecution(ctx context.Context, userID uuid.UUID, execution domain.WorkoutExecution) (*domain.WorkoutExecution, error)
	GetExecution(ctx context.Context, userID, executionID uuid.UUID) (*domain.WorkoutExecution, error)
}

type workoutExecutionService struct {
	executionRepo repository.WorkoutExecutionRepository
	templateRepo  repository.WorkoutTemplateRepository
	exerciseRepo  repository.ExerciseRepository
}

// NewWorkoutExecutionService creates a new instance of workoutExecutionService.
func NewWorkoutExecutionService(
	executionRepo repository.WorkoutExecutionRepository,
	templateRepo repository.WorkoutTemplateRepository,
	exerciseRepo repository.ExerciseRepository,
) WorkoutExecutionService {
	return &workoutExecutionService{
		executionRepo: executionRepo,
		templateRepo:  templateRepo,
		exerciseRepo:  exerciseRepo,
	}
}

// CreateExecution resolves the referenced template, requires it to belong to
// userID, verifies every referenced exercise exists, then persists the
// aggregate in one call.
func (s *workoutExecutionService) CreateExecution(ctx context.Context, userID uuid.UUID, execution domain.WorkoutExecution) (*domain.WorkoutExecution, error) {
	template, err := s.templateRepo.GetByID(ctx, execution.WorkoutTemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrTemplateNotFound
	}

	exerciseIDs := make([]uuid.UUID, len(execution.Elements))
	for i, element := range execution.Elements {
		exerciseIDs[i] = element.ExerciseID
	}
	if err := checkExerciseRefs(ctx, s.exerciseRepo, exerciseIDs); err != nil {
		return nil, err
	}

	execution.ID = uuid.New()
	for i := range execution.Elements {
		execution.Elements[i].ID = uuid.New()
	}

	if err := s.executionRepo.Create(ctx, &execution); err != nil {
		return nil, err
	}
	return &execution, nil
}

// GetExecution fetches an execution and re-derives its owner through the
// template before handing it out. An execution whose template belongs to a
// different user is reported as missing.
func (s *workoutExecutionService) GetExecution(ctx context.Context, userID, executionID uuid.UUID) (*domain.WorkoutExecution, error) {
	execution, err := s.executionRepo.GetByID(ctx, executionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}

	template, err := s.templateRepo.GetByID(ctx, execution.WorkoutTemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrExecutionNotFound
	}
	return execution, nil
}
