package api

import "github.com/gin-gonic/gin"

// Error bodies are plain JSON strings, matching what clients already parse.
const (
	msgInvalidPayload       = "Invalid payload"
	msgIncorrectQueryParams = "Incorrect query parameters"
	msgDateInFuture         = "Invalid payload. The date can't be in the future"
	msgUserNotFound         = "No user exists with the corresponding id"
	msgExerciseNotFound     = "No exercise exists with the corresponding id"
	msgTemplateNotFound     = "No template exists with the corresponding id"
	msgExecutionNotFound    = "No execution exists with the corresponding id"
	msgExerciseRefsNotFound = "One or more exercise IDs do not reference existing exercises"
	msgUserConflict         = "User already exists"
	msgInternalError        = "Internal server error"
)

// message writes a JSON-encoded string body with the given status.
func message(c *gin.Context, status int, msg string) {
	c.JSON(status, msg)
}
