package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestIntensityStep(t *testing.T) {
	tests := []struct {
		from  Intensity
		delta int
		want  Intensity
	}{
		{IntensityLow, 1, IntensityModerate},
		{IntensityModerate, -1, IntensityLow},
		{IntensityLow, -1, IntensityLow},
		{IntensityMaximum, 1, IntensityMaximum},
		{IntensityModerate, 5, IntensityMaximum},
	}
	for _, tt := range tests {
		if got := tt.from.Step(tt.delta); got != tt.want {
			t.Errorf("%s.Step(%d) = %s, want %s", tt.from, tt.delta, got, tt.want)
		}
	}
}

func TestWorkoutDayOf(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range 7 {
		day := WorkoutDayOf(monday.AddDate(0, 0, i))
		if day != WorkoutDay(i) {
			t.Errorf("WorkoutDayOf(+%d) = %s, want %s", i, day, WorkoutDay(i))
		}
		if day.Weekday() != monday.AddDate(0, 0, i).Weekday() {
			t.Errorf("%s.Weekday() = %s", day, day.Weekday())
		}
	}
}

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []WorkoutDay
		wantErr bool
	}{
		{name: "full names", in: []string{"monday", "Friday"}, want: []WorkoutDay{Monday, Friday}},
		{name: "abbreviations", in: []string{" sat ", "tue"}, want: []WorkoutDay{Tuesday, Saturday}},
		{name: "duplicates collapse", in: []string{"sun", "sunday"}, want: []WorkoutDay{Sunday}},
		{name: "unknown day", in: []string{"mon", "funday"}, wantErr: true},
		{name: "ambiguous prefix", in: []string{"th"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAvailability(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAvailability(%v) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got.Days()); diff != "" {
				t.Errorf("days mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAvailabilityJSON(t *testing.T) {
	a := NewAvailability(Wednesday, Monday, Saturday)
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `["monday","wednesday","saturday"]`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}

	var back Availability
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != a || back.Count() != 3 {
		t.Errorf("Unmarshal = %v, want %v", back.Days(), a.Days())
	}
	if err := json.Unmarshal([]byte(`["someday"]`), &back); err == nil {
		t.Error("Unmarshal of unknown day error = nil")
	}
}

func TestInjuryStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to InjuryStatus
		want     bool
	}{
		{InjuryActive, InjuryImproving, true},
		{InjuryActive, InjuryResolved, true},
		{InjuryImproving, InjuryImproving, true},
		{InjuryImproving, InjuryActive, false},
		{InjuryResolved, InjuryImproving, false},
		{InjuryActive, "healed", false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestExerciseSafeFor(t *testing.T) {
	squat := Exercise{Name: "Back Squat", MovementPatterns: []string{"squat", "hinge"}, Contraindications: []string{"Knee"}}
	tests := []struct {
		tags []string
		want bool
	}{
		{nil, true},
		{[]string{"shoulder"}, true},
		{[]string{"knee"}, false},
		{[]string{"shoulder", "hinge"}, false},
	}
	for _, tt := range tests {
		if got := squat.SafeFor(tt.tags); got != tt.want {
			t.Errorf("SafeFor(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
	if !squat.IsCompound() {
		t.Error("two movement patterns should be compound")
	}
}
