package planning

import (
	"strings"
	"testing"

	"alcyxob/fitness-coach/internal/domain"
)

func TestCheckCoherence(t *testing.T) {
	week := func(n, volume int, deload bool) domain.TrainingWeek {
		return domain.TrainingWeek{
			WeekNumber:    n,
			IsDeload:      deload,
			VolumeMinutes: volume,
			Workouts:      []domain.Workout{{DurationMinutes: volume}},
		}
	}

	tests := []struct {
		name      string
		weeks     []domain.TrainingWeek
		wantWarns int
	}{
		{"steady volume", []domain.TrainingWeek{week(1, 150, false), week(2, 160, false)}, 0},
		{"drop of exactly twenty percent", []domain.TrainingWeek{week(1, 100, false), week(2, 80, false)}, 0},
		{"regression", []domain.TrainingWeek{week(1, 100, false), week(2, 70, false)}, 1},
		{"drop into deload", []domain.TrainingWeek{week(1, 100, false), week(2, 40, true)}, 0},
		{"drop after deload", []domain.TrainingWeek{week(1, 100, true), week(2, 40, false)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := CheckCoherence(&domain.TrainingPlan{Weeks: tt.weeks})
			if err != nil {
				t.Fatalf("CheckCoherence() error = %v", err)
			}
			if len(warnings) != tt.wantWarns {
				t.Errorf("got %d warnings %q, want %d", len(warnings), warnings, tt.wantWarns)
			}
		})
	}
}

func TestCheckCoherenceEmptyWeek(t *testing.T) {
	plan := &domain.TrainingPlan{Weeks: []domain.TrainingWeek{
		{WeekNumber: 1, Workouts: []domain.Workout{{DurationMinutes: 40}}},
		{WeekNumber: 2},
	}}
	_, err := CheckCoherence(plan)
	if err == nil || !strings.Contains(err.Error(), "week 2") {
		t.Fatalf("CheckCoherence() error = %v, want week 2 failure", err)
	}
}
