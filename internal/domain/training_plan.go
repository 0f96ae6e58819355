// internal/domain/training_plan.go
package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is a multi-week schedule owned by one user. The whole
// week/workout/exercise tree is stored inside the plan document.
type TrainingPlan struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	EndDate         time.Time          `bson:"endDate" json:"endDate"`
	TotalWeeks      int                `bson:"totalWeeks" json:"totalWeeks"`
	SessionsPerWeek int                `bson:"sessionsPerWeek" json:"sessionsPerWeek"`
	Availability    Availability       `bson:"availability" json:"availability"`
	Status          PlanStatus         `bson:"status" json:"status"`
	CurrentWeek     int                `bson:"currentWeek" json:"currentWeek"`
	Weeks           []TrainingWeek     `bson:"weeks" json:"weeks"`
	Version         int64              `bson:"version" json:"version"` // optimistic concurrency token
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrainingWeek groups the workouts of one plan week.
type TrainingWeek struct {
	WeekNumber    int       `bson:"weekNumber" json:"weekNumber"`
	Phase         Phase     `bson:"phase" json:"phase"`
	Intensity     Intensity `bson:"intensity" json:"intensity"`
	IsDeload      bool      `bson:"isDeload" json:"isDeload"`
	VolumeMinutes int       `bson:"volumeMinutes" json:"volumeMinutes"`
	Workouts      []Workout `bson:"workouts" json:"workouts"`
}

// Workouts returns pointers to every workout ordered by scheduled date.
func (p *TrainingPlan) Workouts() []*Workout {
	var out []*Workout
	for wi := range p.Weeks {
		for i := range p.Weeks[wi].Workouts {
			out = append(out, &p.Weeks[wi].Workouts[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDate.Before(out[j].ScheduledDate)
	})
	return out
}

// FindWorkout returns the workout with the given ID or nil.
func (p *TrainingPlan) FindWorkout(id primitive.ObjectID) *Workout {
	for wi := range p.Weeks {
		for i := range p.Weeks[wi].Workouts {
			if p.Weeks[wi].Workouts[i].ID == id {
				return &p.Weeks[wi].Workouts[i]
			}
		}
	}
	return nil
}

// SortWorkouts restores date order inside every week.
func (p *TrainingPlan) SortWorkouts() {
	for wi := range p.Weeks {
		ws := p.Weeks[wi].Workouts
		sort.SliceStable(ws, func(i, j int) bool {
			return ws[i].ScheduledDate.Before(ws[j].ScheduledDate)
		})
	}
}
