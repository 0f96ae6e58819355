package mongo

import (
	"context"
	"errors"
	"fmt"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const adaptationCollectionName = "plan_adaptations"

// mongoAdaptationRepository implements repository.AdaptationRepository. Records are never updated.
type mongoAdaptationRepository struct {
	collection *mongo.Collection
}

// NewMongoAdaptationRepository creates the adaptation audit log.
func NewMongoAdaptationRepository(db *mongo.Database) repository.AdaptationRepository {
	return &mongoAdaptationRepository{
		collection: db.Collection(adaptationCollectionName),
	}
}

// Create appends an adaptation record. A preset ID is kept.
func (r *mongoAdaptationRepository) Create(ctx context.Context, adaptation *domain.PlanAdaptation) (primitive.ObjectID, error) {
	if adaptation.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("adaptation requires a plan ID")
	}
	if adaptation.ID == primitive.NilObjectID {
		adaptation.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, adaptation); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert adaptation: %w", err)
	}
	return adaptation.ID, nil
}

// GetLatestByPlanID returns the most recent adaptation of a plan.
func (r *mongoAdaptationRepository) GetLatestByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanAdaptation, error) {
	filter := bson.M{"planId": planID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "appliedAt", Value: -1}})

	var adaptation domain.PlanAdaptation
	if err := r.collection.FindOne(ctx, filter, findOptions).Decode(&adaptation); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &adaptation, nil
}

// ListByPlanID returns a plan's adaptation history, newest first.
func (r *mongoAdaptationRepository) ListByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanAdaptation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	adaptations := []domain.PlanAdaptation{}
	if err = cursor.All(ctx, &adaptations); err != nil {
		return nil, err
	}
	return adaptations, nil
}

// EnsureAdaptationIndexes creates the history index.
func EnsureAdaptationIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "appliedAt", Value: -1}},
		Options: options.Index(),
	})
	if err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
