package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executionsPath(userID uuid.UUID) string {
	return "/users/" + userID.String() + "/workout-executions"
}

func executionBody(templateID uuid.UUID, exerciseIDs ...uuid.UUID) string {
	elements := ""
	for i, id := range exerciseIDs {
		if i > 0 {
			elements += ","
		}
		elements += fmt.Sprintf(
			`{"exercise_id":%q,"position":%d,"exercise_number":%d,"reps":10,"set_number":1,"rest":60,"time":45}`,
			id, i+1, i+1)
	}
	return fmt.Sprintf(`{"workout_template_id":%q,"date":"2024-03-02","survey":3,"elements":[%s]}`, templateID, elements)
}

// seedTemplate creates a template owned by userID through the API so the
// execution tests run against realistic state.
func seedTemplate(t *testing.T, env *testEnv, userID uuid.UUID, exerciseIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	rec := env.do(t, request{
		method: http.MethodPost,
		path:   templatesPath(userID),
		body:   templateBody(exerciseIDs...),
		token:  tokenFor(t, userID.String()),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created WorkoutTemplateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID
}

func TestCreateWorkoutExecution(t *testing.T) {
	t.Run("created with generated ids", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		ex1 := env.addExercise(t, "Squat")
		ex2 := env.addExercise(t, "Leg Press")
		templateID := seedTemplate(t, env, userID, ex1, ex2)

		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   executionBody(templateID, ex1, ex2),
			token:  tokenFor(t, userID.String()),
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var got WorkoutExecutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.NotEqual(t, uuid.Nil, got.ID)
		assert.Equal(t, templateID, got.WorkoutTemplateID)
		assert.Equal(t, int16(3), got.Survey)
		require.Len(t, got.Elements, 2)
		for _, element := range got.Elements {
			assert.NotEqual(t, uuid.Nil, element.ID)
			assert.Equal(t, got.ID, element.WorkoutExecutionID)
		}

		stored, ok := env.executions.executions[got.ID]
		require.True(t, ok)
		assert.Len(t, stored.Elements, 2)
	})

	t.Run("unknown template", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		ex1 := env.addExercise(t, "Squat")

		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   executionBody(uuid.New(), ex1),
			token:  tokenFor(t, userID.String()),
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `"No template exists with the corresponding id"`, rec.Body.String())
		assert.Empty(t, env.executions.executions)
	})

	t.Run("template owned by someone else", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.addUser(t, "hank")
		other := env.addUser(t, "ivan")
		ex1 := env.addExercise(t, "Squat")
		templateID := seedTemplate(t, env, owner, ex1)

		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(other),
			body:   executionBody(templateID, ex1),
			token:  tokenFor(t, other.String()),
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `"No template exists with the corresponding id"`, rec.Body.String())
	})

	t.Run("unknown exercise reference persists nothing", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		ex1 := env.addExercise(t, "Squat")
		templateID := seedTemplate(t, env, userID, ex1)

		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   executionBody(templateID, ex1, uuid.New()),
			token:  tokenFor(t, userID.String()),
		})

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `"One or more exercise IDs do not reference existing exercises"`, rec.Body.String())
		assert.Empty(t, env.executions.executions)
	})

	t.Run("element missing a required field", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		ex1 := env.addExercise(t, "Squat")
		templateID := seedTemplate(t, env, userID, ex1)

		// No rest on the element.
		body := fmt.Sprintf(
			`{"workout_template_id":%q,"date":"2024-03-02","survey":3,"elements":[`+
				`{"exercise_id":%q,"position":1,"exercise_number":1,"reps":10,"set_number":1,"time":45}]}`,
			templateID, ex1)
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   body,
			token:  tokenFor(t, userID.String()),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `"Invalid payload"`, rec.Body.String())
		assert.Empty(t, env.executions.executions)
	})

	t.Run("element missing its exercise reference", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		ex1 := env.addExercise(t, "Squat")
		templateID := seedTemplate(t, env, userID, ex1)

		// No exercise_id on the element: a schema failure, not a dangling
		// reference.
		body := fmt.Sprintf(
			`{"workout_template_id":%q,"date":"2024-03-02","survey":3,"elements":[`+
				`{"position":1,"exercise_number":1,"reps":10,"set_number":1,"rest":60,"time":45}]}`,
			templateID)
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   body,
			token:  tokenFor(t, userID.String()),
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `"Invalid payload"`, rec.Body.String())
	})

	t.Run("date in the future", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		ex1 := env.addExercise(t, "Squat")
		templateID := seedTemplate(t, env, userID, ex1)

		body := fmt.Sprintf(
			`{"workout_template_id":%q,"date":"2099-01-01","survey":3,"elements":[`+
				`{"exercise_id":%q,"position":1,"exercise_number":1,"reps":10,"set_number":1,"rest":60,"time":45}]}`,
			templateID, ex1)
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   body,
			token:  tokenFor(t, userID.String()),
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed user id reads as missing", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   "/users/not-a-uuid/workout-executions",
			body:   `{}`,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no credential", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   `{}`,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("someone else's collection", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "hank")
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   `{}`,
			token:  tokenFor(t, uuid.NewString()),
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestGetWorkoutExecution(t *testing.T) {
	seed := func(t *testing.T, env *testEnv, userID uuid.UUID, exerciseIDs ...uuid.UUID) WorkoutExecutionResponse {
		t.Helper()
		templateID := seedTemplate(t, env, userID, exerciseIDs...)
		rec := env.do(t, request{
			method: http.MethodPost,
			path:   executionsPath(userID),
			body:   executionBody(templateID, exerciseIDs...),
			token:  tokenFor(t, userID.String()),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var created WorkoutExecutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		return created
	}

	t.Run("round trip", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "jane")
		ex1 := env.addExercise(t, "Deadlift")
		created := seed(t, env, userID, ex1)

		rec := env.do(t, request{
			method: http.MethodGet,
			path:   executionsPath(userID) + "/" + created.ID.String(),
			token:  tokenFor(t, userID.String()),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var got WorkoutExecutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.ID)
		require.Len(t, got.Elements, 1)
		assert.Equal(t, ex1, got.Elements[0].ExerciseID)
		assert.Nil(t, got.Elements[0].ExerciseName)
	})

	t.Run("full view resolves exercises", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "jane")
		ex1 := env.addExercise(t, "Deadlift")
		created := seed(t, env, userID, ex1)

		rec := env.do(t, request{
			method: http.MethodGet,
			path:   executionsPath(userID) + "/" + created.ID.String() + "?full=true",
			token:  tokenFor(t, userID.String()),
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var got WorkoutExecutionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Elements, 1)
		require.NotNil(t, got.Elements[0].ExerciseName)
		assert.Equal(t, "Deadlift", *got.Elements[0].ExerciseName)
	})

	t.Run("malformed execution id reads as missing", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "jane")
		rec := env.do(t, request{
			method: http.MethodGet,
			path:   executionsPath(userID) + "/not-a-uuid",
			token:  tokenFor(t, userID.String()),
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown execution", func(t *testing.T) {
		env := newTestEnv(t)
		userID := env.addUser(t, "jane")
		rec := env.do(t, request{
			method: http.MethodGet,
			path:   executionsPath(userID) + "/" + uuid.NewString(),
			token:  tokenFor(t, userID.String()),
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `"No execution exists with the corresponding id"`, rec.Body.String())
	})

	t.Run("someone else's execution looks missing", func(t *testing.T) {
		env := newTestEnv(t)
		owner := env.addUser(t, "jane")
		other := env.addUser(t, "mallory")
		ex1 := env.addExercise(t, "Deadlift")
		created := seed(t, env, owner, ex1)

		rec := env.do(t, request{
			method: http.MethodGet,
			path:   executionsPath(other) + "/" + created.ID.String(),
			token:  tokenFor(t, other.String()),
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
