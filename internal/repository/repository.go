package repository

import (
	"context"

	"alcyxob/fitness-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicate       = RepositoryError("already exists")
	ErrUpdateFailed    = RepositoryError("update failed")
	ErrVersionConflict = RepositoryError("version conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores one fitness profile per user.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	// Upsert creates or replaces the profile of profile.UserID.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

// ExerciseQuery filters the catalog. Zero values match everything.
type ExerciseQuery struct {
	Discipline  domain.Discipline
	Difficulty  domain.Difficulty
	SessionType domain.SessionType
}

// ExerciseRepository defines the interface for interacting with the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Find(ctx context.Context, q ExerciseQuery) ([]domain.Exercise, error)
	// FindSafeFor excludes exercises whose contraindications or movement patterns match any tag.
	FindSafeFor(ctx context.Context, injuryTags []string, q ExerciseQuery) ([]domain.Exercise, error)
	// ListByDisciplines returns every exercise tagged with at least one of the disciplines.
	ListByDisciplines(ctx context.Context, disciplines []domain.Discipline) ([]domain.Exercise, error)
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
// The week/workout tree is stored inside the plan document.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	// Update replaces the plan if its stored version still equals plan.Version and
	// then increments plan.Version. A stale version returns ErrVersionConflict.
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error
	ListActive(ctx context.Context) ([]domain.TrainingPlan, error)
	UpdateProgress(ctx context.Context, id primitive.ObjectID, currentWeek int) error
}

// AdaptationRepository is the append-only audit log of plan adaptations.
type AdaptationRepository interface {
	Create(ctx context.Context, adaptation *domain.PlanAdaptation) (primitive.ObjectID, error)
	// GetLatestByPlanID returns the newest adaptation of any trigger.
	GetLatestByPlanID(ctx context.Context, planID primitive.ObjectID) (*domain.PlanAdaptation, error)
	ListByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.PlanAdaptation, error)
}
