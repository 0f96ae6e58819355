package planning

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"alcyxob/fitness-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 2026-01-05 is a Monday.
var testStart = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newExercise(name string, disciplines []domain.Discipline, difficulty domain.Difficulty, sessionTypes []domain.SessionType, patterns, contraindications []string) domain.Exercise {
	return domain.Exercise{
		ID:                primitive.NewObjectID(),
		Name:              name,
		Disciplines:       disciplines,
		Difficulty:        difficulty,
		SessionTypes:      sessionTypes,
		MovementPatterns:  patterns,
		Contraindications: contraindications,
	}
}

// testPool has enough intermediate hybrid, endurance and strength work for any session.
func testPool() ExercisePool {
	hybrid := []domain.Discipline{domain.DisciplineHybrid}
	endurance := []domain.Discipline{domain.DisciplineEndurance}
	strength := []domain.Discipline{domain.DisciplineStrength, domain.DisciplineHybrid}
	mid := domain.DifficultyIntermediate

	pool := ExercisePool{
		newExercise("Thruster", hybrid, mid, []domain.SessionType{domain.SessionHybridCircuit, domain.SessionFullBody}, []string{"squat", "press"}, []string{"shoulder"}),
		newExercise("Burpee", hybrid, mid, []domain.SessionType{domain.SessionHybridCircuit, domain.SessionIntervals}, []string{"jump", "push", "impact"}, []string{"knee", "wrist"}),
		newExercise("Wall Ball", hybrid, mid, []domain.SessionType{domain.SessionHybridCircuit, domain.SessionRaceSimulation}, []string{"squat", "throw"}, []string{"knee"}),
		newExercise("Sled Push", hybrid, mid, []domain.SessionType{domain.SessionRaceSimulation}, []string{"push", "carry"}, nil),
		newExercise("Farmer Carry", hybrid, mid, []domain.SessionType{domain.SessionRaceSimulation, domain.SessionFullBody}, []string{"carry", "grip"}, nil),
		newExercise("Rowing", hybrid, mid, []domain.SessionType{domain.SessionRaceSimulation, domain.SessionIntervals}, []string{"pull", "hinge"}, []string{"lower back"}),
		newExercise("Plank", hybrid, mid, []domain.SessionType{domain.SessionMobility, domain.SessionFullBody}, []string{"core"}, nil),
		newExercise("Hip Flow", hybrid, mid, []domain.SessionType{domain.SessionMobility}, []string{"mobility"}, nil),
		newExercise("Easy Jog", append(hybrid, domain.DisciplineEndurance), mid, []domain.SessionType{domain.SessionEasyRun, domain.SessionTempo, domain.SessionLongRun}, []string{"run"}, []string{"knee", "impact"}),
		newExercise("Tempo Run", endurance, mid, []domain.SessionType{domain.SessionTempo}, []string{"run"}, []string{"knee", "impact"}),
		newExercise("Track Repeats", endurance, mid, []domain.SessionType{domain.SessionIntervals}, []string{"run", "sprint"}, []string{"knee", "hamstring"}),
		newExercise("Bike Intervals", endurance, mid, []domain.SessionType{domain.SessionIntervals, domain.SessionRecoveryRun}, []string{"cycle"}, nil),
		newExercise("Back Squat", strength, mid, []domain.SessionType{domain.SessionLegs, domain.SessionFullBody}, []string{"squat", "hinge"}, []string{"knee", "lower back"}),
		newExercise("Bench Press", strength, mid, []domain.SessionType{domain.SessionPush, domain.SessionFullBody}, []string{"press", "push"}, []string{"shoulder"}),
		newExercise("Pull-Up", strength, mid, []domain.SessionType{domain.SessionPull, domain.SessionFullBody}, []string{"pull", "grip"}, nil),
		newExercise("Tricep Pushdown", strength, mid, []domain.SessionType{domain.SessionPush}, []string{"push"}, nil),
		newExercise("Bicep Curl", strength, mid, []domain.SessionType{domain.SessionPull}, []string{"pull"}, nil),
		newExercise("Leg Extension", strength, mid, []domain.SessionType{domain.SessionLegs}, []string{"knee extension"}, []string{"knee"}),
	}
	for i := range pool {
		if pool[i].Name == "Plank" || pool[i].Name == "Hip Flow" || pool[i].Name == "Easy Jog" {
			pool[i].DurationBased = true
		}
	}
	return pool
}

func threeDayProfile() *domain.UserProfile {
	target := date(time.March, 30)
	return &domain.UserProfile{
		UserID: primitive.NewObjectID(),
		FitnessLevels: map[domain.Discipline]domain.FitnessLevel{
			domain.DisciplineHybrid:    domain.LevelIntermediate,
			domain.DisciplineEndurance: domain.LevelIntermediate,
			domain.DisciplineStrength:  domain.LevelIntermediate,
		},
		Availability:       domain.NewAvailability(domain.Monday, domain.Wednesday, domain.Friday),
		MinSessionsPerWeek: 2,
		MaxSessionsPerWeek: 3,
		Goals: []domain.TrainingGoal{
			{Type: domain.GoalRace, Description: "Spring hybrid race", TargetDate: &target, Priority: 1, Status: domain.GoalActive},
		},
	}
}

// buildPlan makes an active plan with Mon/Wed/Fri sessions at one intensity.
func buildPlan(weeks int, intensity domain.Intensity) *domain.TrainingPlan {
	days := []domain.WorkoutDay{domain.Monday, domain.Wednesday, domain.Friday}
	plan := &domain.TrainingPlan{
		ID:              primitive.NewObjectID(),
		UserID:          primitive.NewObjectID(),
		Name:            "test plan",
		StartDate:       testStart,
		EndDate:         testStart.AddDate(0, 0, 7*weeks),
		TotalWeeks:      weeks,
		SessionsPerWeek: len(days),
		Availability:    domain.NewAvailability(days...),
		Status:          domain.PlanActive,
		CurrentWeek:     1,
	}
	for week := 1; week <= weeks; week++ {
		tw := domain.TrainingWeek{WeekNumber: week, Phase: domain.PhaseBuild, Intensity: intensity}
		for _, sd := range weekSchedule(testStart, week, days) {
			tw.Workouts = append(tw.Workouts, domain.Workout{
				ID:              primitive.NewObjectID(),
				ScheduledDate:   sd.date,
				Day:             sd.day,
				Discipline:      domain.DisciplineHybrid,
				SessionType:     domain.SessionHybridCircuit,
				Intensity:       intensity,
				Status:          domain.StatusNotStarted,
				Name:            "session",
				Description:     "Build hybrid session.",
				DurationMinutes: 50,
				Exercises: []domain.WorkoutExercise{
					{ExerciseID: primitive.NewObjectID(), ExerciseName: "Back Squat", Order: 1, MovementPatterns: []string{"squat"}, Contraindications: []string{"knee"}},
					{ExerciseID: primitive.NewObjectID(), ExerciseName: "Burpee", Order: 2, MovementPatterns: []string{"jump", "impact"}},
					{ExerciseID: primitive.NewObjectID(), ExerciseName: "Pull-Up", Order: 3, MovementPatterns: []string{"pull"}},
				},
			})
			tw.VolumeMinutes += 50
		}
		plan.Weeks = append(plan.Weeks, tw)
	}
	return plan
}

// workoutOn returns the plan workout scheduled on d.
func workoutOn(plan *domain.TrainingPlan, d time.Time) *domain.Workout {
	for _, w := range plan.Workouts() {
		if w.ScheduledDate.Equal(d) {
			return w
		}
	}
	return nil
}
