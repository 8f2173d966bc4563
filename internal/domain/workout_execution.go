package domain

import (
	"github.com/google/uuid"
)

// WorkoutExecution records one performed session of a workout template.
// Ownership is indirect: the execution belongs to whoever owns its template.
type WorkoutExecution struct {
	ID                uuid.UUID
	WorkoutTemplateID uuid.UUID
	Date              Date
	Survey            int16
	Elements          []ExecutionElement
}

// ExecutionElement is one performed set, referencing an exercise from the
// library.
type ExecutionElement struct {
	ID             uuid.UUID
	ExerciseID     uuid.UUID
	Position       int16
	ExerciseNumber int16
	Reps           int16
	SetNumber      int16
	Weight         *float32
	Rest           int16
	SuperSet       *int16
	Time           int32
}
