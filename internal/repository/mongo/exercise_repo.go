package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise. Movement and contraindication tags are stored lower-case.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || len(exercise.Disciplines) == 0 || exercise.Difficulty == "" {
		return primitive.NilObjectID, errors.New("exercise name, disciplines and difficulty are required")
	}

	exercise.ID = primitive.NewObjectID()
	exercise.MovementPatterns = normalizeTags(exercise.MovementPatterns)
	exercise.Contraindications = normalizeTags(exercise.Contraindications)
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("insert exercise: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// Find lists exercises matching the query, sorted by name.
func (r *mongoExerciseRepository) Find(ctx context.Context, q repository.ExerciseQuery) ([]domain.Exercise, error) {
	return r.find(ctx, exerciseFilter(q))
}

// FindSafeFor lists matching exercises that no injury tag contraindicates.
func (r *mongoExerciseRepository) FindSafeFor(ctx context.Context, injuryTags []string, q repository.ExerciseQuery) ([]domain.Exercise, error) {
	return r.find(ctx, safeExerciseFilter(injuryTags, q))
}

// ListByDisciplines loads the catalog slice a plan generation needs.
func (r *mongoExerciseRepository) ListByDisciplines(ctx context.Context, disciplines []domain.Discipline) ([]domain.Exercise, error) {
	if len(disciplines) == 0 {
		return []domain.Exercise{}, nil
	}
	return r.find(ctx, bson.M{"disciplines": bson.M{"$in": disciplines}})
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.Exercise, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func exerciseFilter(q repository.ExerciseQuery) bson.M {
	filter := bson.M{}
	if q.Discipline != "" {
		filter["disciplines"] = q.Discipline
	}
	if q.Difficulty != "" {
		filter["difficulty"] = q.Difficulty
	}
	if q.SessionType != "" {
		filter["sessionTypes"] = q.SessionType
	}
	return filter
}

func safeExerciseFilter(injuryTags []string, q repository.ExerciseQuery) bson.M {
	filter := exerciseFilter(q)
	if tags := normalizeTags(injuryTags); len(tags) > 0 {
		filter["contraindications"] = bson.M{"$nin": tags}
		filter["movementPatterns"] = bson.M{"$nin": tags}
	}
	return filter
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// main generation query
			Keys:    bson.D{{Key: "disciplines", Value: 1}, {Key: "difficulty", Value: 1}, {Key: "sessionTypes", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
