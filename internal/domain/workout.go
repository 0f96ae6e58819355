package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout represents a single scheduled session within a TrainingPlan.
// After generation only ScheduledDate, Day, Intensity, Description and Status change.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	ScheduledDate   time.Time          `bson:"scheduledDate" json:"scheduledDate"`
	Day             WorkoutDay         `bson:"day" json:"day"`
	Discipline      Discipline         `bson:"discipline" json:"discipline"`
	SessionType     SessionType        `bson:"sessionType" json:"sessionType"`
	Intensity       Intensity          `bson:"intensity" json:"intensity"`
	IsKeyWorkout    bool               `bson:"isKeyWorkout" json:"isKeyWorkout"`
	Status          CompletionStatus   `bson:"status" json:"status"`
	Name            string             `bson:"name" json:"name"` // e.g. "Week 3 Tempo"
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	CompletedAt     *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Exercises       []WorkoutExercise  `bson:"exercises" json:"exercises"`
}

// WorkoutExercise is a catalog exercise prescribed inside a workout. Either
// Sets/Reps/RestSeconds or DurationSeconds is set.
type WorkoutExercise struct {
	ExerciseID        primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	ExerciseName      string             `bson:"exerciseName" json:"exerciseName"`
	Order             int                `bson:"order" json:"order"`
	Sets              int                `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps              int                `bson:"reps,omitempty" json:"reps,omitempty"`
	RestSeconds       int                `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
	DurationSeconds   int                `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	IntensityGuidance string             `bson:"intensityGuidance" json:"intensityGuidance"`

	// Snapshot of the catalog entry used for injury review.
	MovementPatterns  []string `bson:"movementPatterns,omitempty" json:"movementPatterns,omitempty"`
	Contraindications []string `bson:"contraindications,omitempty" json:"contraindications,omitempty"`
	NeedsReview       bool     `bson:"needsReview,omitempty" json:"needsReview,omitempty"`
}

// IsEditable reports whether adaptation may still touch the workout on the given day.
func (w *Workout) IsEditable(today time.Time) bool {
	return w.Status != StatusCompleted && !w.ScheduledDate.Before(today)
}
