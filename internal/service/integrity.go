package service

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
)

// ErrExerciseReferenceNotFound marks a composite create whose elements point
// at at least one exercise id that does not exist.
var ErrExerciseReferenceNotFound = errors.New("one or more exercise ids do not reference existing exercises")

// checkExerciseRefs verifies every referenced exercise id exists. It runs
// after schema validation and authorization and before any persistence, so a
// failing reference never leaves a partial aggregate behind.
func checkExerciseRefs(ctx context.Context, exerciseRepo repository.ExerciseRepository, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	ok, err := exerciseRepo.AllExist(ctx, unique)
	if err != nil {
		return err
	}
	if !ok {
		return ErrExerciseReferenceNotFound
	}
	return nil
}
