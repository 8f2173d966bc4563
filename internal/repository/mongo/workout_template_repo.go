package mongo

import (
	"context"
	"errors"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutTemplateCollectionName = "workout_templates"

// workoutTemplateDoc stores the full aggregate: the element array is embedded
// so parent and elements are persisted and removed in one atomic write.
type workoutTemplateDoc struct {
	ID          string               `bson:"_id"`
	UserID      string               `bson:"userId"`
	Name        string               `bson:"name"`
	Description *string              `bson:"description,omitempty"`
	DateCreated string               `bson:"dateCreated"`
	Elements    []templateElementDoc `bson:"elements"`
}

type templateElementDoc struct {
	ID         string   `bson:"id"`
	ExerciseID string   `bson:"exerciseId"`
	Position   int16    `bson:"position"`
	Reps       int16    `bson:"reps"`
	Sets       int16    `bson:"sets"`
	Weight     *float32 `bson:"weight,omitempty"`
	Rest       int16    `bson:"rest"`
	SuperSet   *int16   `bson:"superSet,omitempty"`
}

func newWorkoutTemplateDoc(template *domain.WorkoutTemplate) workoutTemplateDoc {
	doc := workoutTemplateDoc{
		ID:          template.ID.String(),
		UserID:      template.UserID.String(),
		Name:        template.Name,
		Description: template.Description,
		DateCreated: template.DateCreated.String(),
		Elements:    make([]templateElementDoc, len(template.Elements)),
	}
	for i, element := range template.Elements {
		doc.Elements[i] = templateElementDoc{
			ID:         element.ID.String(),
			ExerciseID: element.ExerciseID.String(),
			Position:   element.Position,
			Reps:       element.Reps,
			Sets:       element.Sets,
			Weight:     element.Weight,
			Rest:       element.Rest,
			SuperSet:   element.SuperSet,
		}
	}
	return doc
}

func (d workoutTemplateDoc) toDomain() (*domain.WorkoutTemplate, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}
	created, err := domain.ParseDate(d.DateCreated)
	if err != nil {
		return nil, err
	}
	template := &domain.WorkoutTemplate{
		ID:          id,
		UserID:      userID,
		Name:        d.Name,
		Description: d.Description,
		DateCreated: created,
		Elements:    make([]domain.TemplateElement, len(d.Elements)),
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
		template.Elements[i] = domain.TemplateElement{
			ID:         elementID,
			ExerciseID: exerciseID,
			Position:   element.Position,
			Reps:       element.Reps,
			Sets:       element.Sets,
			Weight:     element.Weight,
			Rest:       element.Rest,
			SuperSet:   element.SuperSet,
		}
	}
	return template, nil
}

// mongoWorkoutTemplateRepository implements
// repository.WorkoutTemplateRepository using MongoDB.
type mongoWorkoutTemplateRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutTemplateRepository creates a new instance of
// mongoWorkoutTemplateRepository.
func NewMongoWorkoutTemplateRepository(db *mongo.Database) repository.WorkoutTemplateRepository {
	return &mongoWorkoutTemplateRepository{
		collection: db.Collection(workoutTemplateCollectionName),
	}
}

// Create persists the template aggregate, elements included, as one document.
func (r *mongoWorkoutTemplateRepository) Create(ctx context.Context, template *domain.WorkoutTemplate) error {
	_, err := r.collection.InsertOne(ctx, newWorkoutTemplateDoc(template))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID retrieves the full template aggregate.
func (r *mongoWorkoutTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutTemplate, error) {
	var doc workoutTemplateDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// ListByUser returns the user's templates without their elements.
func (r *mongoWorkoutTemplateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WorkoutTemplate, error) {
	opts := options.Find().SetProjection(bson.M{"elements": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []workoutTemplateDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	templates := make([]domain.WorkoutTemplate, 0, len(docs))
	for _, doc := range docs {
		template, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}
	return templates, nil
}

// Delete removes the template if it belongs to userID. Elements are embedded,
// so they vanish with the document.
func (r *mongoWorkoutTemplateRepository) Delete(ctx context.Context, userID, templateID uuid.UUID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":    templateID.String(),
		"userId": userID.String(),
	})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureWorkoutTemplateIndexes creates the indexes for the workout template
// collection.
func EnsureWorkoutTemplateIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
