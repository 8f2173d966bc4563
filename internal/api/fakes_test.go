package api

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"
	"alcyxob/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const testJWTSecret = "test-secret"

// --- in-memory repositories ---

type fakeUserRepo struct {
	users map[uuid.UUID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; ok {
		return repository.ErrConflict
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) SearchByUsername(_ context.Context, term string) ([]domain.User, error) {
	result := make([]domain.User, 0)
	for _, user := range r.users {
		if strings.Contains(user.Username, term) {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = patch.DateOfBirth
	}
	if patch.Height != nil {
		user.Height = patch.Height
	}
	if patch.Weight != nil {
		user.Weight = patch.Weight
	}
	if patch.Gender != nil {
		user.Gender = patch.Gender
	}
	if patch.FitnessGoal != nil {
		user.FitnessGoal = *patch.FitnessGoal
	}
	if patch.FitnessLevel != nil {
		user.FitnessLevel = *patch.FitnessLevel
	}
	r.users[id] = user
	return &user, nil
}

type fakeExerciseRepo struct {
	exercises map[uuid.UUID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[uuid.UUID]domain.Exercise)}
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *fakeExerciseRepo) SearchByName(_ context.Context, term string) ([]domain.Exercise, error) {
	result := make([]domain.Exercise, 0)
	for _, exercise := range r.exercises {
		if strings.Contains(exercise.Name, term) {
			result = append(result, exercise)
		}
	}
	return result, nil
}

func (r *fakeExerciseRepo) AllExist(_ context.Context, ids []uuid.UUID) (bool, error) {
	for _, id := range ids {
		if _, ok := r.exercises[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeExerciseRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Exercise, error) {
	result := make(map[uuid.UUID]domain.Exercise)
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			result[id] = exercise
		}
	}
	return result, nil
}

type fakeWorkoutTemplateRepo struct {
	templates map[uuid.UUID]domain.WorkoutTemplate
}

func newFakeWorkoutTemplateRepo() *fakeWorkoutTemplateRepo {
	return &fakeWorkoutTemplateRepo{templates: make(map[uuid.UUID]domain.WorkoutTemplate)}
}

func (r *fakeWorkoutTemplateRepo) Create(_ context.Context, template *domain.WorkoutTemplate) error {
	r.templates[template.ID] = *template
	return nil
}

func (r *fakeWorkoutTemplateRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	template, ok := r.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &template, nil
}

func (r *fakeWorkoutTemplateRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.WorkoutTemplate, error) {
	result := make([]domain.WorkoutTemplate, 0)
	for _, template := range r.templates {
		if template.UserID == userID {
			template.Elements = nil
			result = append(result, template)
		}
	}
	return result, nil
}

func (r *fakeWorkoutTemplateRepo) Delete(_ context.Context, userID, templateID uuid.UUID) (int64, error) {
	template, ok := r.templates[templateID]
	if !ok || template.UserID != userID {
		return 0, nil
	}
	delete(r.templates, templateID)
	return 1, nil
}

type fakeWorkoutExecutionRepo struct {
	executions map[uuid.UUID]domain.WorkoutExecution
}

func newFakeWorkoutExecutionRepo() *fakeWorkoutExecutionRepo {
	return &fakeWorkoutExecutionRepo{executions: make(map[uuid.UUID]domain.WorkoutExecution)}
}

func (r *fakeWorkoutExecutionRepo) Create(_ context.Context, execution *domain.WorkoutExecution) error {
	r.executions[execution.ID] = *execution
	return nil
}

func (r *fakeWorkoutExecutionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.WorkoutExecution, error) {
	execution, ok := r.executions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &execution, nil
}

// --- test environment ---

// testEnv wires the real services and router over the in-memory repositories
// so handler tests exercise the full request pipeline.
type testEnv struct {
	router     *gin.Engine
	users      *fakeUserRepo
	exercises  *fakeExerciseRepo
	templates  *fakeWorkoutTemplateRepo
	executions *fakeWorkoutExecutionRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:      newFakeUserRepo(),
		exercises:  newFakeExerciseRepo(),
		templates:  newFakeWorkoutTemplateRepo(),
		executions: newFakeWorkoutExecutionRepo(),
	}
	env.router = SetupRouter(
		testJWTSecret,
		service.NewUserService(env.users),
		service.NewExerciseService(env.exercises),
		service.NewWorkoutTemplateService(env.templates, env.exercises, env.users),
		service.NewWorkoutExecutionService(env.executions, env.templates, env.exercises),
	)
	return env
}

func (env *testEnv) addUser(t *testing.T, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	env.users.users[id] = domain.User{
		ID:          id,
		Username:    username,
		DisplayName: username,
		DateJoined:  domain.NewDate(2024, time.January, 1),
	}
	return id
}

func (env *testEnv) addExercise(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	one := int16(1)
	env.exercises.exercises[id] = domain.Exercise{
		ID:              id,
		Name:            name,
		MainMuscleGroup: &one,
	}
	return id
}

// tokenFor signs a bearer token for the given subject with the test secret.
func tokenFor(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

type request struct {
	method string
	path   string
	body   string
	token  string
}

func (env *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if req.body != "" {
		body = bytes.NewBufferString(req.body)
	} else {
		body = &bytes.Buffer{}
	}
	httpReq := httptest.NewRequest(req.method, req.path, body)
	if req.body != "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httpReq)
	return rec
}
