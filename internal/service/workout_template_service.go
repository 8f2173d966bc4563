package service

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
)

var ErrTemplateNotFound = errors.New("workout template not found")

// WorkoutTemplateService owns the workout template aggregate lifecycle.
// All operations are scoped to an owning user; a template that exists but
// belongs to someone else is indistinguishable from a missing one.
type WorkoutTemplateService interface {
	CreateTemplate(ctx context.Context, userID uuid.UUID, template domain.WorkoutTemplate) (*domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, userID, templateID uuid.UUID) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context, userID uuid.UUID) ([]domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, userID, templateID uuid.UUID) error
}

type workoutTemplateService struct {
	templateRepo repository.WorkoutTemplateRepository
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
}

// NewWorkoutTemplateService creates a new instance of workoutTemplateService.
func NewWorkoutTemplateService(
	templateRepo repository.WorkoutTemplateRepository,
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
) WorkoutTemplateService {
	return &workoutTemplateService{
		templateRepo: templateRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

// CreateTemplate verifies the owning user and every referenced exercise
// exist, then persists the aggregate in one call. Ids are generated here.
func (s *workoutTemplateService) CreateTemplate(ctx context.Context, userID uuid.UUID, template domain.WorkoutTemplate) (*domain.WorkoutTemplate, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exerciseIDs := make([]uuid.UUID, len(template.Elements))
	for i, element := range template.Elements {
		exerciseIDs[i] = element.ExerciseID
	}
	if err := checkExerciseRefs(ctx, s.exerciseRepo, exerciseIDs); err != nil {
		return nil, err
	}

	template.ID = uuid.New()
	template.UserID = userID
	for i := range template.Elements {
		template.Elements[i].ID = uuid.New()
	}

	if err := s.templateRepo.Create(ctx, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// GetTemplate fetches a template and confirms it belongs to userID.
func (s *workoutTemplateService) GetTemplate(ctx context.Context, userID, templateID uuid.UUID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrTemplateNotFound
	}
	return template, nil
}

// ListTemplates returns the user's templates, without elements.
func (s *workoutTemplateService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.ListByUser(ctx, userID)
}

// DeleteTemplate removes the template and its elements if userID owns it.
func (s *workoutTemplateService) DeleteTemplate(ctx context.Context, userID, templateID uuid.UUID) error {
	deleted, err := s.templateRepo.Delete(ctx, userID, templateID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
