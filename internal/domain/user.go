package domain

import (
	"github.com/google/uuid"
)

// User represents an account in the system. The id is supplied by the caller
// at creation time and must match the authenticated subject, since identity
// registration happens in the external identity provider.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	DateJoined   Date      `json:"date_joined"`
	DateOfBirth  *Date     `json:"date_of_birth"`
	Height       *int      `json:"height"`
	Weight       *float32  `json:"weight"`
	Gender       *int      `json:"gender"`
	FitnessGoal  int       `json:"fitness_goal"`
	FitnessLevel int       `json:"fitness_level"`
}

// UserPatch carries the mutable subset of User fields. Nil fields are left
// untouched by an update.
type UserPatch struct {
	DisplayName  *string  `json:"display_name"`
	DateOfBirth  *Date    `json:"date_of_birth"`
	Height       *int     `json:"height"`
	Weight       *float32 `json:"weight"`
	Gender       *int     `json:"gender"`
	FitnessGoal  *int     `json:"fitness_goal"`
	FitnessLevel *int     `json:"fitness_level"`
}
