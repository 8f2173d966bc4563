package api

import (
	"errors"
	"net/http"

	"alcyxob/fitness-api/internal/logger"
	"alcyxob/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExerciseHandler serves the read-only exercise library.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// SearchExercisesResponse wraps search results.
type SearchExercisesResponse struct {
	Exercises []ExerciseInfo `json:"exercises"`
}

// ExerciseInfo is the shape returned by exercise search.
type ExerciseInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// GetExercise handles GET /exercises/:exercise_id.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, err := uuid.Parse(c.Param("exercise_id"))
	if err != nil {
		message(c, http.StatusBadRequest, "Invalid exercise_id")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			message(c, http.StatusNotFound, msgExerciseNotFound)
			return
		}
		logger.Log.Errorw("get exercise failed", "exerciseID", exerciseID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// SearchExercises handles GET /exercises?name=term. The single recognized
// query key is "name". An empty term matches every exercise.
func (h *ExerciseHandler) SearchExercises(c *gin.Context) {
	query := c.Request.URL.Query()
	terms, ok := query["name"]
	if !ok || len(query) != 1 {
		message(c, http.StatusBadRequest, msgIncorrectQueryParams)
		return
	}

	exercises, err := h.exerciseService.SearchExercises(c.Request.Context(), terms[0])
	if err != nil {
		logger.Log.Errorw("search exercises failed", "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	resp := SearchExercisesResponse{Exercises: make([]ExerciseInfo, 0, len(exercises))}
	for _, e := range exercises {
		resp.Exercises = append(resp.Exercises, ExerciseInfo{ID: e.ID, Name: e.Name})
	}
	c.JSON(http.StatusOK, resp)
}
