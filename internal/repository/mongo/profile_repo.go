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

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a profile repository backed by MongoDB.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// GetByUserID retrieves the profile owned by a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces the user's profile, creating it on first write.
// CreatedAt is kept from the stored document.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile requires a user ID")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now
	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"fitnessLevels":      profile.FitnessLevels,
			"availability":       profile.Availability,
			"minSessionsPerWeek": profile.MinSessionsPerWeek,
			"maxSessionsPerWeek": profile.MaxSessionsPerWeek,
			"goals":              profile.Goals,
			"injuries":           profile.Injuries,
			"updatedAt":          now,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored domain.UserProfile
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	profile.ID = stored.ID
	profile.CreatedAt = stored.CreatedAt
	return nil
}

// EnsureProfileIndexes makes userId unique so each user has one profile.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create indexes for %s: %w", collection.Name(), err)
	}
	return nil
}
