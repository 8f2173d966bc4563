package service

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
)

var ErrExerciseNotFound = errors.New("exercise not found")

// ExerciseService exposes the read-only exercise library.
type ExerciseService interface {
	GetExerciseByID(ctx context.Context, exerciseID uuid.UUID) (*domain.Exercise, error)
	SearchExercises(ctx context.Context, name string) ([]domain.Exercise, error)
	// GetExercisesByIDs resolves exercise details for element expansion.
	GetExercisesByIDs(ctx context.Context, exerciseIDs []uuid.UUID) (map[uuid.UUID]domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID uuid.UUID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// SearchExercises returns all exercises whose name contains the given term.
func (s *exerciseService) SearchExercises(ctx context.Context, name string) ([]domain.Exercise, error) {
	return s.exerciseRepo.SearchByName(ctx, name)
}

func (s *exerciseService) GetExercisesByIDs(ctx context.Context, exerciseIDs []uuid.UUID) (map[uuid.UUID]domain.Exercise, error) {
	return s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
}
