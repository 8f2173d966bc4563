package service

import (
	"context"
	"testing"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal stubs; only the methods a test exercises matter.

type stubUserRepo struct {
	repository.UserRepository
	createErr error
	user      *domain.User
	getErr    error
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return s.createErr }

func (s *stubUserRepo) GetByID(context.Context, uuid.UUID) (*domain.User, error) {
	return s.user, s.getErr
}

type stubExerciseRepo struct {
	repository.ExerciseRepository
	allExist bool
	seenIDs  []uuid.UUID
}

func (s *stubExerciseRepo) AllExist(_ context.Context, ids []uuid.UUID) (bool, error) {
	s.seenIDs = ids
	return s.allExist, nil
}

type stubTemplateRepo struct {
	repository.WorkoutTemplateRepository
	template  *domain.WorkoutTemplate
	getErr    error
	created   *domain.WorkoutTemplate
	deleted   int64
	deleteErr error
}

func (s *stubTemplateRepo) Create(_ context.Context, template *domain.WorkoutTemplate) error {
	s.created = template
	return nil
}

func (s *stubTemplateRepo) GetByID(context.Context, uuid.UUID) (*domain.WorkoutTemplate, error) {
	return s.template, s.getErr
}

func (s *stubTemplateRepo) Delete(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return s.deleted, s.deleteErr
}

type stubExecutionRepo struct {
	repository.WorkoutExecutionRepository
	execution *domain.WorkoutExecution
	getErr    error
	created   *domain.WorkoutExecution
}

func (s *stubExecutionRepo) Create(_ context.Context, execution *domain.WorkoutExecution) error {
	s.created = execution
	return nil
}

func (s *stubExecutionRepo) GetByID(context.Context, uuid.UUID) (*domain.WorkoutExecution, error) {
	return s.execution, s.getErr
}

func TestCreateUserMapsConflict(t *testing.T) {
	svc := NewUserService(&stubUserRepo{createErr: repository.ErrConflict})
	_, err := svc.CreateUser(context.Background(), domain.User{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestPatchUserMapsNotFound(t *testing.T) {
	repo := &stubUserRepo{}
	svc := NewUserService(&stubUserRepoUpdate{err: repository.ErrNotFound, stubUserRepo: repo})
	_, err := svc.PatchUser(context.Background(), uuid.New(), domain.UserPatch{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type stubUserRepoUpdate struct {
	*stubUserRepo
	err error
}

func (s *stubUserRepoUpdate) Update(context.Context, uuid.UUID, domain.UserPatch) (*domain.User, error) {
	return nil, s.err
}

func TestCheckExerciseRefsDeduplicates(t *testing.T) {
	repo := &stubExerciseRepo{allExist: true}
	id := uuid.New()
	require.NoError(t, checkExerciseRefs(context.Background(), repo, []uuid.UUID{id, id, id}))
	assert.Len(t, repo.seenIDs, 1)
}

func TestCheckExerciseRefsReportsMissing(t *testing.T) {
	repo := &stubExerciseRepo{allExist: false}
	err := checkExerciseRefs(context.Background(), repo, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrExerciseReferenceNotFound)
}

func TestCreateTemplateGeneratesIDs(t *testing.T) {
	userID := uuid.New()
	templates := &stubTemplateRepo{}
	svc := NewWorkoutTemplateService(
		templates,
		&stubExerciseRepo{allExist: true},
		&stubUserRepo{user: &domain.User{ID: userID}},
	)

	created, err := svc.CreateTemplate(context.Background(), userID, domain.WorkoutTemplate{
		Name:     "Legs",
		Elements: []domain.TemplateElement{{ExerciseID: uuid.New()}, {ExerciseID: uuid.New()}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, userID, created.UserID)
	for _, element := range created.Elements {
		assert.NotEqual(t, uuid.Nil, element.ID)
	}
	assert.Same(t, created, templates.created)
}

func TestCreateTemplateRequiresUser(t *testing.T) {
	svc := NewWorkoutTemplateService(
		&stubTemplateRepo{},
		&stubExerciseRepo{allExist: true},
		&stubUserRepo{getErr: repository.ErrNotFound},
	)
	_, err := svc.CreateTemplate(context.Background(), uuid.New(), domain.WorkoutTemplate{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetTemplateHidesForeignOwnership(t *testing.T) {
	svc := NewWorkoutTemplateService(
		&stubTemplateRepo{template: &domain.WorkoutTemplate{ID: uuid.New(), UserID: uuid.New()}},
		&stubExerciseRepo{},
		&stubUserRepo{},
	)
	_, err := svc.GetTemplate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDeleteTemplateNotFoundWhenNothingRemoved(t *testing.T) {
	svc := NewWorkoutTemplateService(&stubTemplateRepo{deleted: 0}, &stubExerciseRepo{}, &stubUserRepo{})
	err := svc.DeleteTemplate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCreateExecutionRequiresOwnedTemplate(t *testing.T) {
	templateID := uuid.New()
	svc := NewWorkoutExecutionService(
		&stubExecutionRepo{},
		&stubTemplateRepo{template: &domain.WorkoutTemplate{ID: templateID, UserID: uuid.New()}},
		&stubExerciseRepo{allExist: true},
	)
	_, err := svc.CreateExecution(context.Background(), uuid.New(), domain.WorkoutExecution{WorkoutTemplateID: templateID})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestGetExecutionDerivesOwnershipThroughTemplate(t *testing.T) {
	templateID := uuid.New()
	ownerID := uuid.New()
	executionID := uuid.New()

	executions := &stubExecutionRepo{execution: &domain.WorkoutExecution{ID: executionID, WorkoutTemplateID: templateID}}
	templates := &stubTemplateRepo{template: &domain.WorkoutTemplate{ID: templateID, UserID: ownerID}}
	svc := NewWorkoutExecutionService(executions, templates, &stubExerciseRepo{})

	got, err := svc.GetExecution(context.Background(), ownerID, executionID)
	require.NoError(t, err)
	assert.Equal(t, executionID, got.ID)

	_, err = svc.GetExecution(context.Background(), uuid.New(), executionID)
	assert.ErrorIs(t, err, ErrExecutionNotFound)
}

func TestGetExecutionWithDanglingTemplate(t *testing.T) {
	executions := &stubExecutionRepo{execution: &domain.WorkoutExecution{ID: uuid.New(), WorkoutTemplateID: uuid.New()}}
	templates := &stubTemplateRepo{getErr: repository.ErrNotFound}
	svc := NewWorkoutExecutionService(executions, templates, &stubExerciseRepo{})

	_, err := svc.GetExecution(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrExecutionNotFound)
}
