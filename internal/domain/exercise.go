package domain

import (
	"github.com/google/uuid"
)

// Exercise is a single entry in the exercise library. The API surface is
// read-only; the library is seeded out of band.
type Exercise struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	MainMuscleGroup      *int16    `json:"main_muscle_group"`
	SecondaryMuscleGroup *int16    `json:"secondary_muscle_group"`
	NecessaryEquipment   *int16    `json:"necessary_equipment"`
	ExerciseType         *int16    `json:"exercise_type"`
}
