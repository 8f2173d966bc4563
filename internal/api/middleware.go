package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Context key for the authenticated subject.
const ContextSubjectKey = "subject"

var (
	errMissingAuthHeader = errors.New("Missing Authorization header")
	errInvalidAuthHeader = errors.New("Invalid Authorization header format")
	errInvalidToken      = errors.New("Invalid token")
	errInvalidSubject    = errors.New("Invalid UUID in token")
)

// parseBearerSubject verifies the bearer token and returns its subject claim.
// Token issuance happens elsewhere; only the HMAC signature, the standard
// time claims and the subject format are checked here.
func parseBearerSubject(authHeader, jwtSecret string) (uuid.UUID, error) {
	if authHeader == "" {
		return uuid.Nil, errMissingAuthHeader
	}
	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return uuid.Nil, errInvalidAuthHeader
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errInvalidToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errInvalidSubject
	}
	return subject, nil
}

// AuthMiddleware rejects requests without a verifiable bearer credential and
// stores the subject for downstream ownership checks. Absence of a credential
// is unauthenticated (401); ownership mismatches are handled separately.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := parseBearerSubject(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, err.Error())
			return
		}
		c.Set(ContextSubjectKey, subject)
		c.Next()
	}
}

// OwnerGuard requires the authenticated subject to match the user id named
// by the given path parameter. Must run after AuthMiddleware and after the
// parameter has been validated as a UUID.
func OwnerGuard(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := subjectFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, "Subject missing from context")
			return
		}
		owner, err := uuid.Parse(c.Param(param))
		if err != nil || subject != owner {
			c.AbortWithStatusJSON(http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}

// RequireUUIDParams validates that each named path parameter is a well formed
// UUID, aborting with failStatus otherwise. The status differs per resource
// family: some report a malformed identifier as a bad request, others treat
// it as an unresolvable route.
func RequireUUIDParams(failStatus int, names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			if _, err := uuid.Parse(c.Param(name)); err != nil {
				body := "Not found"
				if failStatus == http.StatusBadRequest {
					body = "Invalid " + name
				}
				c.AbortWithStatusJSON(failStatus, body)
				return
			}
		}
		c.Next()
	}
}

// subjectFromContext returns the subject set by AuthMiddleware.
func subjectFromContext(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(ContextSubjectKey)
	if !exists {
		return uuid.Nil, errors.New("subject not found in context")
	}
	subject, ok := raw.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid subject type in context")
	}
	return subject, nil
}
