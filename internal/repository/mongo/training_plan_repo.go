// internal/repository/mongo/training_plan_repo.go
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainingPlanCollectionName = "training_plans"

// mongoTrainingPlanRepository implements repository.TrainingPlanRepository
type mongoTrainingPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingPlanRepository creates a new TrainingPlan repository.
func NewMongoTrainingPlanRepository(db *mongo.Database) repository.TrainingPlanRepository {
	return &mongoTrainingPlanRepository{
		collection: db.Collection(trainingPlanCollectionName),
	}
}

// Create inserts a new training plan with its full week/workout tree.
// The partial unique index on (userId, status=active) rejects a second active plan.
func (r *mongoTrainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires userId and name")
	}
	if plan.ID == primitive.NilObjectID {
		plan.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	plan.Version = 1

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("insert training plan: %w", err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single training plan by its ID.
func (r *mongoTrainingPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetActiveByUserID retrieves the user's single active plan.
func (r *mongoTrainingPlanRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "status": domain.PlanActive})
}

func (r *mongoTrainingPlanRepository) findOne(ctx context.Context, filter bson.M) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	if err := r.collection.FindOne(ctx, filter).Decode(&plan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Update writes the mutable plan fields guarded by the version token.
func (r *mongoTrainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("training plan ID is required for update")
	}

	now := time.Now().UTC()
	filter := bson.M{"_id": plan.ID, "version": plan.Version}
	update := bson.M{
		"$set": bson.M{
			"endDate":      plan.EndDate,
			"totalWeeks":   plan.TotalWeeks,
			"availability": plan.Availability,
			"status":       plan.Status,
			"currentWeek":  plan.CurrentWeek,
			"weeks":        plan.Weeks,
			"updatedAt":    now,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update training plan: %w", err)
	}
	if result.MatchedCount == 0 {
		// Either the plan is gone or someone else wrote first.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": plan.ID})
		if err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	plan.Version++
	plan.UpdatedAt = now
	return nil
}

// SetStatus moves a plan to a new lifecycle status.
func (r *mongoTrainingPlanRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	update := bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListActive returns every active plan without its workout tree.
func (r *mongoTrainingPlanRepository) ListActive(ctx context.Context) ([]domain.TrainingPlan, error) {
	findOptions := options.Find().SetProjection(bson.M{"weeks": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"status": domain.PlanActive}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plans := []domain.TrainingPlan{}
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// UpdateProgress sets the current-week pointer.
func (r *mongoTrainingPlanRepository) UpdateProgress(ctx context.Context, id primitive.ObjectID, currentWeek int) error {
	update := bson.M{"$set": bson.M{"currentWeek": currentWeek, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "status": domain.PlanActive}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingPlanIndexes creates necessary indexes. Call during startup.
func EnsureTrainingPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// at most one active plan per user
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetName("one_active_plan_per_user").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": domain.PlanActive}),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
