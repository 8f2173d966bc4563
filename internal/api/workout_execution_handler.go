package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/logger"
	"alcyxob/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WorkoutExecutionHandler handles the nested workout execution routes.
type WorkoutExecutionHandler struct {
	executionService service.WorkoutExecutionService
	exerciseService  service.ExerciseService
}

// NewWorkoutExecutionHandler creates a new WorkoutExecutionHandler.
func NewWorkoutExecutionHandler(executionService service.WorkoutExecutionService, exerciseService service.ExerciseService) *WorkoutExecutionHandler {
	return &WorkoutExecutionHandler{executionService: executionService, exerciseService: exerciseService}
}

// ExecutionElementRequest is one performed set of a workout execution.
type ExecutionElementRequest struct {
	ExerciseID     uuid.UUID `json:"exercise_id" binding:"required"`
	Position       int16     `json:"position" binding:"required"`
	ExerciseNumber int16     `json:"exercise_number" binding:"required"`
	Reps           int16     `json:"reps" binding:"required"`
	SetNumber      int16     `json:"set_number" binding:"required"`
	Weight         *float32  `json:"weight"`
	Rest           *int16    `json:"rest" binding:"required"`
	SuperSet       *int16    `json:"super_set"`
	Time           int32     `json:"time" binding:"required"`
}

// CreateWorkoutExecutionRequest is the composite create payload. The
// referenced template must belong to the user in the path.
type CreateWorkoutExecutionRequest struct {
	WorkoutTemplateID uuid.UUID                 `json:"workout_template_id" binding:"required"`
	Date              domain.Date               `json:"date" binding:"required"`
	Survey            *int16                    `json:"survey" binding:"required"`
	Elements          []ExecutionElementRequest `json:"elements" binding:"required,dive"`
}

// ExecutionElementResponse mirrors a stored execution element.
type ExecutionElementResponse struct {
	ID                 uuid.UUID `json:"id"`
	WorkoutExecutionID uuid.UUID `json:"workout_execution_id"`
	ExerciseID         uuid.UUID `json:"exercise_id"`
	Position           int16     `json:"position"`
	ExerciseNumber     int16     `json:"exercise_number"`
	Reps               int16     `json:"reps"`
	SetNumber          int16     `json:"set_number"`
	Weight             *float32  `json:"weight"`
	Rest               int16     `json:"rest"`
	SuperSet           *int16    `json:"super_set"`
	Time               int32     `json:"time"`
	// Populated only in the full view.
	ExerciseName         *string `json:"exercise_name,omitempty"`
	MainMuscleGroup      *int16  `json:"main_muscle_group,omitempty"`
	SecondaryMuscleGroup *int16  `json:"secondary_muscle_group,omitempty"`
	NecessaryEquipment   *int16  `json:"necessary_equipment,omitempty"`
	ExerciseType         *int16  `json:"exercise_type,omitempty"`
}

// WorkoutExecutionResponse is the aggregate view of an execution.
type WorkoutExecutionResponse struct {
	ID                uuid.UUID                  `json:"id"`
	WorkoutTemplateID uuid.UUID                  `json:"workout_template_id"`
	Date              domain.Date                `json:"date"`
	Survey            int16                      `json:"survey"`
	Elements          []ExecutionElementResponse `json:"elements"`
}

// CreateExecution handles POST /users/:user_id/workout-executions.
func (h *WorkoutExecutionHandler) CreateExecution(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("user_id"))

	var req CreateWorkoutExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if req.Date.After(domain.Today()) {
		message(c, http.StatusBadRequest, msgDateInFuture)
		return
	}
	if err := validateExecutionElements(req.Elements); err != nil {
		message(c, http.StatusBadRequest, err.Error())
		return
	}

	execution := domain.WorkoutExecution{
		WorkoutTemplateID: req.WorkoutTemplateID,
		Date:              req.Date,
		Survey:            *req.Survey,
		Elements:          make([]domain.ExecutionElement, len(req.Elements)),
	}
	for i, e := range req.Elements {
		execution.Elements[i] = domain.ExecutionElement{
			ExerciseID:     e.ExerciseID,
			Position:       e.Position,
			ExerciseNumber: e.ExerciseNumber,
			Reps:           e.Reps,
			SetNumber:      e.SetNumber,
			Weight:         e.Weight,
			Rest:           *e.Rest,
			SuperSet:       e.SuperSet,
			Time:           e.Time,
		}
	}

	created, err := h.executionService.CreateExecution(c.Request.Context(), userID, execution)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			message(c, http.StatusNotFound, msgTemplateNotFound)
		case errors.Is(err, service.ErrExerciseReferenceNotFound):
			message(c, http.StatusNotFound, msgExerciseRefsNotFound)
		default:
			logger.Log.Errorw("create workout execution failed", "userID", userID, "error", err)
			message(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}
	c.JSON(http.StatusCreated, h.executionResponse(c, created, false))
}

// GetExecution handles GET /users/:user_id/workout-executions/:workout_execution_id.
// With ?full=true each element carries the referenced exercise's details.
func (h *WorkoutExecutionHandler) GetExecution(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("user_id"))
	executionID, _ := uuid.Parse(c.Param("workout_execution_id"))
	full := c.Query("full") == "true"

	execution, err := h.executionService.GetExecution(c.Request.Context(), userID, executionID)
	if err != nil {
		if errors.Is(err, service.ErrExecutionNotFound) {
			message(c, http.StatusNotFound, msgExecutionNotFound)
			return
		}
		logger.Log.Errorw("get workout execution failed", "executionID", executionID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, h.executionResponse(c, execution, full))
}

// executionResponse flattens the aggregate, optionally resolving exercise
// details in one batch.
func (h *WorkoutExecutionHandler) executionResponse(c *gin.Context, execution *domain.WorkoutExecution, full bool) WorkoutExecutionResponse {
	resp := WorkoutExecutionResponse{
		ID:                execution.ID,
		WorkoutTemplateID: execution.WorkoutTemplateID,
		Date:              execution.Date,
		Survey:            execution.Survey,
		Elements:          make([]ExecutionElementResponse, 0, len(execution.Elements)),
	}

	var exercises map[uuid.UUID]domain.Exercise
	if full {
		ids := make([]uuid.UUID, len(execution.Elements))
		for i, e := range execution.Elements {
			ids[i] = e.ExerciseID
		}
		var err error
		exercises, err = h.exerciseService.GetExercisesByIDs(c.Request.Context(), ids)
		if err != nil {
			logger.Log.Errorw("resolve exercises for execution failed", "executionID", execution.ID, "error", err)
			exercises = nil
		}
	}

	for _, e := range execution.Elements {
		element := ExecutionElementResponse{
			ID:                 e.ID,
			WorkoutExecutionID: execution.ID,
			ExerciseID:         e.ExerciseID,
			Position:           e.Position,
			ExerciseNumber:     e.ExerciseNumber,
			Reps:               e.Reps,
			SetNumber:          e.SetNumber,
			Weight:             e.Weight,
			Rest:               e.Rest,
			SuperSet:           e.SuperSet,
			Time:               e.Time,
		}
		if exercise, ok := exercises[e.ExerciseID]; ok {
			name := exercise.Name
			element.ExerciseName = &name
			element.MainMuscleGroup = exercise.MainMuscleGroup
			element.SecondaryMuscleGroup = exercise.SecondaryMuscleGroup
			element.NecessaryEquipment = exercise.NecessaryEquipment
			element.ExerciseType = exercise.ExerciseType
		}
		resp.Elements = append(resp.Elements, element)
	}
	return resp
}
