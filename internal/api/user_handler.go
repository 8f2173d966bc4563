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

// UserHandler handles HTTP requests related to users. Creation and patching
// verify the bearer token themselves, after body binding, so a malformed
// body is reported before a missing credential.
type UserHandler struct {
	userService service.UserService
	jwtSecret   string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, jwtSecret string) *UserHandler {
	return &UserHandler{userService: userService, jwtSecret: jwtSecret}
}

// CreateUserRequest carries the caller-supplied identity. The uuid must match
// the authenticated subject.
type CreateUserRequest struct {
	UUID       uuid.UUID   `json:"uuid" binding:"required"`
	Username   string      `json:"username" binding:"required"`
	DateJoined domain.Date `json:"date_joined" binding:"required"`
}

// UserInfo is the shape returned by user search.
type UserInfo struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
}

// SearchUsersResponse wraps search results.
type SearchUsersResponse struct {
	Users []UserInfo `json:"users"`
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if req.DateJoined.After(domain.Today()) {
		message(c, http.StatusBadRequest, msgDateInFuture)
		return
	}

	subject, err := parseBearerSubject(c.GetHeader("Authorization"), h.jwtSecret)
	if err != nil {
		message(c, http.StatusUnauthorized, err.Error())
		return
	}
	if subject != req.UUID {
		message(c, http.StatusForbidden, "Forbidden")
		return
	}

	user := domain.User{
		ID:          req.UUID,
		Username:    req.Username,
		DisplayName: req.Username,
		DateJoined:  req.DateJoined,
	}
	created, err := h.userService.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			message(c, http.StatusConflict, msgUserConflict)
			return
		}
		logger.Log.Errorw("create user failed", "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetUser handles GET /users/:user_id. The parameter format is validated by
// route middleware.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		message(c, http.StatusBadRequest, "Invalid user_id")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			message(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		logger.Log.Errorw("get user failed", "userID", userID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SearchUsers handles GET /users?username=term. The single recognized query
// key is "username"; anything else is a bad request. An empty term matches
// every user.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Request.URL.Query()
	terms, ok := query["username"]
	if !ok || len(query) != 1 {
		message(c, http.StatusBadRequest, msgIncorrectQueryParams)
		return
	}

	users, err := h.userService.SearchUsers(c.Request.Context(), terms[0])
	if err != nil {
		logger.Log.Errorw("search users failed", "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}

	resp := SearchUsersResponse{Users: make([]UserInfo, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, UserInfo{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName})
	}
	c.JSON(http.StatusOK, resp)
}

// PatchUser handles PATCH /users/:user_id.
func (h *UserHandler) PatchUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		message(c, http.StatusNotFound, "Not found")
		return
	}

	var patch domain.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		message(c, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if patch.DateOfBirth != nil && patch.DateOfBirth.After(domain.Today()) {
		message(c, http.StatusBadRequest, msgDateInFuture)
		return
	}

	subject, err := parseBearerSubject(c.GetHeader("Authorization"), h.jwtSecret)
	if err != nil {
		message(c, http.StatusUnauthorized, err.Error())
		return
	}
	if subject != userID {
		message(c, http.StatusForbidden, "Forbidden")
		return
	}

	user, err := h.userService.PatchUser(c.Request.Context(), userID, patch)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			message(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		logger.Log.Errorw("patch user failed", "userID", userID, "error", err)
		message(c, http.StatusInternalServerError, msgInternalError)
		return
	}
	c.JSON(http.StatusOK, user)
}
