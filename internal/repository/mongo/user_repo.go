package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"alcyxob/fitness-api/internal/domain"
	"alcyxob/fitness-api/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// userDoc is the stored shape of a domain.User. Ids are kept as canonical
// UUID strings and dates as "YYYY-MM-DD" strings.
type userDoc struct {
	ID           string   `bson:"_id"`
	Username     string   `bson:"username"`
	DisplayName  string   `bson:"displayName"`
	DateJoined   string   `bson:"dateJoined"`
	DateOfBirth  *string  `bson:"dateOfBirth,omitempty"`
	Height       *int     `bson:"height,omitempty"`
	Weight       *float32 `bson:"weight,omitempty"`
	Gender       *int     `bson:"gender,omitempty"`
	FitnessGoal  int      `bson:"fitnessGoal"`
	FitnessLevel int      `bson:"fitnessLevel"`
}

func newUserDoc(user *domain.User) userDoc {
	doc := userDoc{
		ID:           user.ID.String(),
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		DateJoined:   user.DateJoined.String(),
		Height:       user.Height,
		Weight:       user.Weight,
		Gender:       user.Gender,
		FitnessGoal:  user.FitnessGoal,
		FitnessLevel: user.FitnessLevel,
	}
	if user.DateOfBirth != nil {
		dob := user.DateOfBirth.String()
		doc.DateOfBirth = &dob
	}
	return doc
}

func (d userDoc) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	joined, err := domain.ParseDate(d.DateJoined)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           id,
		Username:     d.Username,
		DisplayName:  d.DisplayName,
		DateJoined:   joined,
		Height:       d.Height,
		Weight:       d.Weight,
		Gender:       d.Gender,
		FitnessGoal:  d.FitnessGoal,
		FitnessLevel: d.FitnessLevel,
	}
	if d.DateOfBirth != nil {
		dob, err := domain.ParseDate(*d.DateOfBirth)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = &dob
	}
	return user, nil
}

// mongoUserRepository implements repository.UserRepository using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user with its caller-supplied id. A duplicate key
// (same id or username) maps to repository.ErrConflict, so the uniqueness
// constraint itself arbitrates concurrent creates.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.collection.InsertOne(ctx, newUserDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID retrieves a user by its UUID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// SearchByUsername returns all users whose username contains term. The term
// is quoted so user input never acts as a regex; an empty term matches all.
func (r *mongoUserRepository) SearchByUsername(ctx context.Context, term string) ([]domain.User, error) {
	filter := bson.M{"username": bson.M{"$regex": regexp.QuoteMeta(term)}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		user, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

// Update applies the non-nil fields of patch to the stored user and returns
// the updated document.
func (r *mongoUserRepository) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	set := bson.M{}
	if patch.DisplayName != nil {
		set["displayName"] = *patch.DisplayName
	}
	if patch.DateOfBirth != nil {
		set["dateOfBirth"] = patch.DateOfBirth.String()
	}
	if patch.Height != nil {
		set["height"] = *patch.Height
	}
	if patch.Weight != nil {
		set["weight"] = *patch.Weight
	}
	if patch.Gender != nil {
		set["gender"] = *patch.Gender
	}
	if patch.FitnessGoal != nil {
		set["fitnessGoal"] = *patch.FitnessGoal
	}
	if patch.FitnessLevel != nil {
		set["fitnessLevel"] = *patch.FitnessLevel
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}
	if len(set) == 0 {
		// FindOneAndUpdate rejects an empty $set document.
		update = bson.M{"$currentDate": bson.M{"touchedAt": true}}
	}

	var doc userDoc
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

// EnsureUserIndexes creates the indexes for the users collection. Call once
// during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
