package service

import (
	"context"
	"errors"
	"testing"

	"alcyxob/fitness-coach/internal/domain"
	"alcyxob/fitness-coach/internal/repository"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func names(exercises []domain.Exercise) []string {
	out := make([]string, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, e.Name)
	}
	return out
}

func TestListExercises(t *testing.T) {
	ctx := context.Background()
	svc := NewExerciseService(testCatalog())

	got, err := svc.ListExercises(ctx, repository.ExerciseQuery{Discipline: domain.DisciplineStrength})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Back Squat", "Pull-Up"}, names(got)); diff != "" {
		t.Errorf("strength exercises mismatch (-want +got):\n%s", diff)
	}

	safe, err := svc.ListSafeExercises(ctx, []string{"knee"}, repository.ExerciseQuery{Discipline: domain.DisciplineHybrid})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Sled Push", "Farmer Carry", "Plank"}, names(safe)); diff != "" {
		t.Errorf("knee-safe hybrid exercises mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.ListSafeExercises(ctx, nil, repository.ExerciseQuery{}); !errors.Is(err, ErrValidation) {
		t.Errorf("ListSafeExercises(no tags) error = %v, want ErrValidation", err)
	}
}

func TestCreateExercise(t *testing.T) {
	ctx := context.Background()
	coachID := primitive.NewObjectID()
	valid := func() *domain.Exercise {
		return &domain.Exercise{
			Name:        "Ski Erg",
			Disciplines: []domain.Discipline{domain.DisciplineHybrid},
			Difficulty:  domain.DifficultyBeginner,
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *domain.Exercise)
		wantErr error
	}{
		{"valid", func(*domain.Exercise) {}, nil},
		{"duplicate name", func(e *domain.Exercise) { e.Name = "plank" }, ErrExerciseAlreadyExists},
		{"missing name", func(e *domain.Exercise) { e.Name = "" }, ErrValidation},
		{"no discipline", func(e *domain.Exercise) { e.Disciplines = nil }, ErrValidation},
		{"bad discipline", func(e *domain.Exercise) { e.Disciplines = []domain.Discipline{"yoga"} }, ErrValidation},
		{"bad difficulty", func(e *domain.Exercise) { e.Difficulty = "elite" }, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewExerciseService(testCatalog())
			ex := valid()
			tt.mutate(ex)

			created, err := svc.CreateExercise(ctx, coachID, ex)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateExercise() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if created.CreatedBy != coachID || created.ID.IsZero() {
				t.Errorf("created = %+v", created)
			}
			if _, err := svc.GetExerciseByID(ctx, created.ID); err != nil {
				t.Errorf("GetExerciseByID() error = %v", err)
			}
		})
	}

	if _, err := NewExerciseService(testCatalog()).GetExerciseByID(ctx, primitive.NewObjectID()); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("GetExerciseByID(unknown) error = %v, want ErrExerciseNotFound", err)
	}
}
