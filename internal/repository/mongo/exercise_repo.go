package mongo

import (
	"context"
	"errors"
	"regexp"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const exerciseCollectionName = "exercises"

type exerciseDoc struct {
	ID                   string `bson:"_id"`
	Name                 string `bson:"name"`
	MainMuscleGroup      *int16 `bson:"mainMuscleGroup,omitempty"`
	SecondaryMuscleGroup *int16 `bson:"secondaryMuscleGroup,omitempty"`
	NecessaryEquipment   *int16 `bson:"necessaryEquipment,omitempty"`
	ExerciseType         *int16 `bson:"exerciseType,omitempty"`
}

func (d exerciseDoc) toDomain() (*domain.Exercise, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Exercise{
		ID:                   id,
		Name:                 d.Name,
		MainMuscleGroup:      d.MainMuscleGroup,
		SecondaryMuscleGroup: d.SecondaryMuscleGroup,
		NecessaryEquipment:   d.NecessaryEquipment,
		ExerciseType:         d.ExerciseType,
	}, nil
}

// mongoExerciseRepository implements repository.ExerciseRepository using
// MongoDB. The collection is seeded out of band; this repository only reads.
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new instance of mongoExerciseRepository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// GetByID retrieves an exercise by its UUID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exercise, error) {
	var doc exerciseDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// SearchByName returns all exercises whose name contains term. An empty term
// matches everything.
func (r *mongoExerciseRepository) SearchByName(ctx context.Context, term string) ([]domain.Exercise, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(term)}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []exerciseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercise, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *exercise)
	}
	return exercises, nil
}

// AllExist reports whether every id references a stored exercise. The caller
// is expected to have deduplicated ids.
func (r *mongoExerciseRepository) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}

// GetByIDs fetches the exercises for the given ids, keyed by id.
func (r *mongoExerciseRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Exercise, error) {
	result := make(map[uuid.UUID]domain.Exercise, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": keys}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []exerciseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		exercise, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		result[exercise.ID] = *exercise
	}
	return result, nil
}
