package domain

import (
	"github.com/google/uuid"
)

// WorkoutTemplate is a reusable workout definition owned by a single user.
// Its elements are a composition: they are created and deleted atomically
// with the template and have no independent lifecycle.
type WorkoutTemplate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	DateCreated Date
	Elements    []TemplateElement
}

// TemplateElement is one line of a workout template, referencing an exercise
// from the library plus set/rep metadata.
type TemplateElement struct {
	ID         uuid.UUID
	ExerciseID uuid.UUID
	Position   int16
	Reps       int16
	Sets       int16
	Weight     *float32
	Rest       int16
	SuperSet   *int16
}
