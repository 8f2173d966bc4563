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

// WorkoutTemplateHandler handles the nested workout template routes. Path
// validation, authentication and ownership are enforced by route middleware;
// handlers only deal with bodies and service errors.
type WorkoutTemplateHandler struct {
	templateService service.WorkoutTemplateService
	exerciseService service.ExerciseService
}

// NewWorkoutTemplateHandler creates a new WorkoutTemplateHandler.
func NewWorkoutTemplateHandler(templateService service.WorkoutTemplateService, exerciseService service.ExerciseService) *WorkoutTemplateHandler {
	return &WorkoutTemplateHandler{templateService: templateService, exerciseService: exerciseService}
}

// TemplateElementRequest is one planned element of a workout template.
type TemplateElementRequest struct {
	ExerciseID uuid.UUID `json:"exercise_id" binding:"required"`
	Position   int16     `json:"position" binding:"required"`
	Reps       int16     `json:"reps" binding:"required"`
	Sets       int16     `json:"sets" binding:"required"`
	Weight     *float32  `json:"weight"`
	Rest       *int16    `json:"rest" binding:"required"`
	SuperSet   *int16    `json:"super_set"`
}

// CreateWorkoutTemplateRequest is the composite create payload.
type CreateWorkoutTemplateRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description *string                  `json:"description"`
	DateCreated domain.Date              `json:"date_created" binding:"required"`
	Elements    []TemplateElementRequest `json:"elements" binding:"required,dive"`
}

// TemplateElementResponse mirrors a stored template element.
type TemplateElementResponse struct {
	ID                uuid.UUID `json:"id"`
	WorkoutTemplateID uuid.UUID `json:"workout_template_id"`
	ExerciseID        uuid.UUID `json:"exercise_id"`
	Position          int16     `json:"position"`
	Reps              int16     `json:"reps"`
	Sets              int16     `json:"sets"`
	Weight            *float32  `json:"weight"`
	Rest              int16     `json:"rest"`
	SuperSet          *int16    `json:"super_set"`
	// Populated only in the full view.
	ExerciseName         *string `json:"exercise_name,omitempty"`
	MainMuscleGroup      *int16  `json:"main_muscle_group,omitempty"`
	SecondaryMuscleGroup *int16  `json:"secondary_muscle_group,omitempty"`
	NecessaryEquipment   *int16  `json:"necessary_equipment,omitempty"`
	ExerciseType         *int16  `json:"exercise_type,omitempty"`
}

// WorkoutTemplateResponse is the aggregate view of a template.
type WorkoutTemplateResponse struct {
	ID          uuid.UUID                 `json:"id"`
	UserID      uuid.UUID                 `json:"user_id"`
	Name        string                    `json:"name"`
	Description *string                   `json:"description"`
	DateCreated domain.Date               `json:"date_created"`
	Elements    []TemplateElementResponse `json:"elements"`
}

// workoutTemplateMeta is the element-free shape used by the list view.
type workoutTemplateMeta struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	DateCreated domain.Date `json:"date_created"`
}

// ListWorkoutTemplatesResponse wraps the list view.
type ListWorkoutTemplatesResponse struct {
	Count     int                   `json:"count"`
	Templates []workoutTemplateMeta `json:"templates"`
}

// CreateTemplate handles POST /users/:user_id/workout-templates.
func (h *WorkoutTemplateHandler) CreateTemplate(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("user_id"))

	var req CreateWorkoutTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if req.DateCreated.After(domain.Today()) {
		message(c, http.StatusBadRequest, msgDateInFuture)
		return
	}
	if err := validateTemplateElements(req.Elements); err != nil {
		message(c, http.StatusBadRequest, err.Error())
		return
	}

	template := domain.WorkoutTemplate{
		Name:        req.Name,
		Description: req.Description,
		DateCreated: req.DateCreated,
		Elements:    make([]domain.TemplateElement, len(req.Elements)),
	}
	for i, e := range req.Elements {
		template.Elements[i] = domain.TemplateElement{
			ExerciseID: e.ExerciseID,
			Position:   e.Position,
			Reps:       e.Reps,
			Sets:       e.Sets,
			Weight:     e.Weight,
			Rest:       *e.Rest,
			SuperSet:   e.SuperSet,
		}
	}

	created, err := h.templateService.CreateTemplate(c.Request.Context(), userID, template)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			message(c, http.StatusNotFound, msgUserNotFound)
		case errors.Is(err, service.ErrExerciseReferenceNotFound):
			message(c, http.StatusNotFound, msgExerciseRefsNotFound)
		default:
			logger.Log.Errorw("create workout template failed", "userID", userID, "error", err)
			message(c, http.StatusInternalServerError, msgInternalError)
		}
		return
	}
	c.JSON(http.StatusCreated, h.templateResponse(c, created, false))
}

// GetTemplate handles GET /users/:user_id/workout-templates/:workout_template_id.
// With ?full=true each element carries the referenced exercise's details.
func (h *WorkoutTemplateHandler) GetTemplate(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("user_id"))
	templateID, _ := uuid.Parse(c.Param("workout_template_id"))
	full := c.Query("full") == "true"

	template, err := h.templateService.GetTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			message(c, http.StatusNotFound, msgTemplateNotFound)
			return
		}
		logger.Log.Errorw("get workout template failed", "templateID", templateID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, h.templateResponse(c, template, full))
}

// ListTemplates handles GET /users/:user_id/workout-templates. Elements are
// omitted from the list view.
func (h *WorkoutTemplateHandler) ListTemplates(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("user_id"))

	templates, err := h.templateService.ListTemplates(c.Request.Context(), userID)
	if err != nil {
		logger.Log.Errorw("list workout templates failed", "userID", userID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	resp := ListWorkoutTemplatesResponse{
		Count:     len(templates),
		Templates: make([]workoutTemplateMeta, 0, len(templates)),
	}
	for _, t := range templates {
		resp.Templates = append(resp.Templates, workoutTemplateMeta{
			ID:          t.ID,
			UserID:      t.UserID,
			Name:        t.Name,
			Description: t.Description,
			DateCreated: t.DateCreated,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteTemplate handles DELETE /users/:user_id/workout-templates/:workout_template_id.
// The elements go with the template.
func (h *WorkoutTemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, _ := uuid.Parse(c.Param("user_id"))
	templateID, _ := uuid.Parse(c.Param("workout_template_id"))

	err := h.templateService.DeleteTemplate(c.Request.Context(), userID, templateID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			message(c, http.StatusNotFound, msgTemplateNotFound)
			return
		}
		logger.Log.Errorw("delete workout template failed", "templateID", templateID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.Status(http.StatusNoContent)
}

// templateResponse flattens the aggregate. When full is set, exercise details
// are resolved in one batch; resolution failures degrade to the plain view
// rather than failing the request.
func (h *WorkoutTemplateHandler) templateResponse(c *gin.Context, template *domain.WorkoutTemplate, full bool) WorkoutTemplateResponse {
	resp := WorkoutTemplateResponse{
		ID:          template.ID,
		UserID:      template.UserID,
		Name:        template.Name,
		Description: template.Description,
		DateCreated: template.DateCreated,
		Elements:    make([]TemplateElementResponse, 0, len(template.Elements)),
	}

	var exercises map[uuid.UUID]domain.Exercise
	if full {
		ids := make([]uuid.UUID, len(template.Elements))
		for i, e := range template.Elements {
			ids[i] = e.ExerciseID
		}
		var err error
		exercises, err = h.exerciseService.GetExercisesByIDs(c.Request.Context(), ids)
		if err != nil {
			logger.Log.Errorw("resolve exercises for template failed", "templateID", template.ID, "error", err)
			exercises = nil
		}
	}

	for _, e := range template.Elements {
		element := TemplateElementResponse{
			ID:                e.ID,
			WorkoutTemplateID: template.ID,
			ExerciseID:        e.ExerciseID,
			Position:          e.Position,
			Reps:              e.Reps,
			Sets:              e.Sets,
			Weight:            e.Weight,
			Rest:              e.Rest,
			SuperSet:          e.SuperSet,
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
