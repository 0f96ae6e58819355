package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound      = errors.New("exercise not found")
	ErrExerciseAlreadyExists = errors.New("exercise with this name already exists")
)

// ExerciseService exposes the exercise catalog the planner draws from.
type ExerciseService interface {
	CreateExercise(ctx context.Context, coachID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, q repository.ExerciseQuery) ([]domain.Exercise, error)
	// ListSafeExercises drops exercises contraindicated for any of the injury tags.
	ListSafeExercises(ctx context.Context, injuryTags []string, q repository.ExerciseQuery) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// CreateExercise adds a catalog entry on behalf of a coach.
func (s *exerciseService) CreateExercise(ctx context.Context, coachID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	if coachID == primitive.NilObjectID {
		return nil, errors.New("coach ID is required to create an exercise")
	}
	if err := validateExercise(exercise); err != nil {
		return nil, err
	}
	exercise.ID = primitive.NilObjectID
	exercise.CreatedBy = coachID

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseAlreadyExists
		}
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

func validateExercise(ex *domain.Exercise) error {
	if ex == nil || strings.TrimSpace(ex.Name) == "" {
		return fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if len(ex.Disciplines) == 0 {
		return fmt.Errorf("%w: at least one discipline is required", ErrValidation)
	}
	for _, d := range ex.Disciplines {
		switch d {
		case domain.DisciplineEndurance, domain.DisciplineStrength, domain.DisciplineHybrid:
		default:
			return fmt.Errorf("%w: unknown discipline %q", ErrValidation, d)
		}
	}
	switch ex.Difficulty {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrValidation, ex.Difficulty)
	}
	return nil
}

func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListExercises(ctx context.Context, q repository.ExerciseQuery) ([]domain.Exercise, error) {
	return s.exerciseRepo.Find(ctx, q)
}

func (s *exerciseService) ListSafeExercises(ctx context.Context, injuryTags []string, q repository.ExerciseQuery) ([]domain.Exercise, error) {
	if len(injuryTags) == 0 {
		return nil, fmt.Errorf("%w: at least one injury tag is required", ErrValidation)
	}
	return s.exerciseRepo.FindSafeFor(ctx, injuryTags, q)
}
