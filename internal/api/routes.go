package api

import (
	"net/http"

	"alcyxob/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all application routes.
//
// The nested workout route families share a middleware chain: path ids are
// validated first, then the bearer token, then ownership of the user in the
// path. The two families disagree on how a malformed id is reported, which
// is why the status is a parameter. User creation and patching bind the body
// before checking credentials, so those two verify the token in-handler.
func SetupRouter(
	jwtSecret string,
	userService service.UserService,
	exerciseService service.ExerciseService,
	templateService service.WorkoutTemplateService,
	executionService service.WorkoutExecutionService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	userHandler := NewUserHandler(userService, jwtSecret)
	exerciseHandler := NewExerciseHandler(exerciseService)
	templateHandler := NewWorkoutTemplateHandler(templateService, exerciseService)
	executionHandler := NewWorkoutExecutionHandler(executionService, exerciseService)

	users := router.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.SearchUsers)
		users.GET("/:user_id", userHandler.GetUser)
		users.PATCH("/:user_id", userHandler.PatchUser)
	}

	exercises := router.Group("/exercises")
	{
		exercises.GET("", exerciseHandler.SearchExercises)
		exercises.GET("/:exercise_id", exerciseHandler.GetExercise)
	}

	templates := router.Group("/users/:user_id/workout-templates",
		RequireUUIDParams(http.StatusBadRequest, "user_id"),
		AuthMiddleware(jwtSecret),
		OwnerGuard("user_id"),
	)
	{
		templates.POST("", templateHandler.CreateTemplate)
		templates.GET("", templateHandler.ListTemplates)
		templates.GET("/:workout_template_id",
			RequireUUIDParams(http.StatusBadRequest, "workout_template_id"),
			templateHandler.GetTemplate)
		templates.DELETE("/:workout_template_id",
			RequireUUIDParams(http.StatusBadRequest, "workout_template_id"),
			templateHandler.DeleteTemplate)
	}

	executions := router.Group("/users/:user_id/workout-executions",
		RequireUUIDParams(http.StatusNotFound, "user_id"),
		AuthMiddleware(jwtSecret),
		OwnerGuard("user_id"),
	)
	{
		executions.POST("", executionHandler.CreateExecution)
		executions.GET("/:workout_execution_id",
			RequireUUIDParams(http.StatusNotFound, "workout_execution_id"),
			executionHandler.GetExecution)
	}

	return router
}
