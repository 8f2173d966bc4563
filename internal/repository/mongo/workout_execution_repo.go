package mongo

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const workoutExecutionCollectionName = "workout_executions"

// workoutExecutionDoc embeds the element array for the same atomicity reasons
// as workoutTemplateDoc.
type workoutExecutionDoc struct {
	ID                string                `bson:"_id"`
	WorkoutTemplateID string                `bson:"workoutTemplateId"`
	Date              string                `bson:"date"`
	Survey            int16                 `bson:"survey"`
	Elements          []executionElementDoc `bson:"elements"`
}

type executionElementDoc struct {
	ID             string   `bson:"id"`
	ExerciseID     string   `bson:"exerciseId"`
	Position       int16    `bson:"position"`
	ExerciseNumber int16    `bson:"exerciseNumber"`
	Reps           int16    `bson:"reps"`
	SetNumber      int16    `bson:"setNumber"`
	Weight         *float32 `bson:"weight,omitempty"`
	Rest           int16    `bson:"rest"`
	SuperSet       *int16   `bson:"superSet,omitempty"`
	Time           int32    `bson:"time"`
}

func newWorkoutExecutionDoc(execution *domain.WorkoutExecution) workoutExecutionDoc {
	doc := workoutExecutionDoc{
		ID:                execution.ID.String(),
		WorkoutTemplateID: execution.WorkoutTemplateID.String(),
		Date:              execution.Date.String(),
		Survey:            execution.Survey,
		Elements:          make([]executionElementDoc, len(execution.Elements)),
	}
	for i, element := range execution.Elements {
		doc.Elements[i] = executionElementDoc{
			ID:             element.ID.String(),
			ExerciseID:     element.ExerciseID.String(),
			Position:       element.Position,
			ExerciseNumber: element.ExerciseNumber,
			Reps:           element.Reps,
			SetNumber:      element.SetNumber,
			Weight:         element.Weight,
			Rest:           element.Rest,
			SuperSet:       element.SuperSet,
			Time:           element.Time,
		}
	}
	return doc
}

func (d workoutExecutionDoc) toDomain() (*domain.WorkoutExecution, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	templateID, err := uuid.Parse(d.WorkoutTemplateID)
	if err != nil {
		return nil, err
	}
	date, err := domain.ParseDate(d.Date)
	if err != nil {
		return nil, err
	}
	execution := &domain.WorkoutExecution{
		ID:                id,
		WorkoutTemplateID: templateID,
		Date:              date,
		Survey:            d.Survey,
		Elements:          make([]domain.ExecutionElement, len(d.Elements)),
	}
	for i, element := range d.Elements {
		elementID, err := uuid.Parse(element.ID)
		if err != nil {
			return nil, err
		}
		exerciseID, err := uuid.Parse(element.ExerciseID)
		if err != nil {
			return nil, err
		}
		execution.Elements[i] = domain.ExecutionElement{
			ID:             elementID,
			ExerciseID:     exerciseID,
			Position:       element.Position,
			ExerciseNumber: element.ExerciseNumber,
			Reps:           element.Reps,
			SetNumber:      element.SetNumber,
			Weight:         element.Weight,
			Rest:           element.Rest,
			SuperSet:       element.SuperSet,
			Time:           element.Time,
		}
	}
	return execution, nil
}

// mongoWorkoutExecutionRepository implements
// repository.WorkoutExecutionRepository using MongoDB.
type mongoWorkoutExecutionRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutExecutionRepository creates a new instance of
// mongoWorkoutExecutionRepository.
func NewMongoWorkoutExecutionRepository(db *mongo.Database) repository.WorkoutExecutionRepository {
	return &mongoWorkoutExecutionRepository{
		collection: db.Collection(workoutExecutionCollectionName),
	}
}

// Create persists the execution aggregate, elements included, as one document.
func (r *mongoWorkoutExecutionRepository) Create(ctx context.Context, execution *domain.WorkoutExecution) error {
	_, err := r.collection.InsertOne(ctx, newWorkoutExecutionDoc(execution))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID retrieves the full execution aggregate.
func (r *mongoWorkoutExecutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutExecution, error) {
	var doc workoutExecutionDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// EnsureWorkoutExecutionIndexes creates the indexes for the workout execution
// collection.
func EnsureWorkoutExecutionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "workoutTemplateId", Value: 1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
