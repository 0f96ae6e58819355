package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Discipline is the kind of training a session belongs to.
type Discipline string

const (
	DisciplineEndurance Discipline = "endurance"
	DisciplineStrength  Discipline = "strength"
	DisciplineHybrid    Discipline = "hybrid"
)

// FitnessLevel is the user's self-assessed level in a discipline.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// Difficulty is the catalog tier of an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulty maps a fitness level 1:1 onto an exercise difficulty tier.
func (l FitnessLevel) Difficulty() Difficulty {
	switch l {
	case LevelIntermediate:
		return DifficultyIntermediate
	case LevelAdvanced:
		return DifficultyAdvanced
	default:
		return DifficultyBeginner
	}
}

// Phase is a periodization block.
type Phase string

const (
	PhaseFoundation Phase = "foundation"
	PhaseBuild      Phase = "build"
	PhaseIntensity  Phase = "intensity"
	PhasePeak       Phase = "peak"
	PhaseTaper      Phase = "taper"
	PhaseRecovery   Phase = "recovery"
)

// SessionType describes what a single workout trains.
type SessionType string

const (
	SessionEasyRun        SessionType = "easy_run"
	SessionLongRun        SessionType = "long_run"
	SessionTempo          SessionType = "tempo"
	SessionIntervals      SessionType = "intervals"
	SessionRecoveryRun    SessionType = "recovery_run"
	SessionFullBody       SessionType = "full_body"
	SessionPush           SessionType = "push"
	SessionPull           SessionType = "pull"
	SessionLegs           SessionType = "legs"
	SessionHybridCircuit  SessionType = "hybrid_circuit"
	SessionRaceSimulation SessionType = "race_simulation"
	SessionMobility       SessionType = "mobility"
)

// Intensity is an ordinal scale. Deload weeks use IntensityLow.
type Intensity int

const (
	IntensityLow Intensity = iota + 1
	IntensityModerate
	IntensityHigh
	IntensityMaximum
)

var intensityNames = map[Intensity]string{
	IntensityLow:      "low",
	IntensityModerate: "moderate",
	IntensityHigh:     "high",
	IntensityMaximum:  "maximum",
}

func (i Intensity) String() string {
	if name, ok := intensityNames[i]; ok {
		return name
	}
	return fmt.Sprintf("intensity(%d)", int(i))
}

// Step moves the intensity by delta ordinal steps, clamped to [Low, Maximum].
func (i Intensity) Step(delta int) Intensity {
	next := i + Intensity(delta)
	if next < IntensityLow {
		return IntensityLow
	}
	if next > IntensityMaximum {
		return IntensityMaximum
	}
	return next
}

// ParseIntensity accepts the lower-case names produced by String.
func ParseIntensity(s string) (Intensity, error) {
	for i, name := range intensityNames {
		if strings.EqualFold(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown intensity %q", s)
}

func (i Intensity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Intensity) UnmarshalText(b []byte) error {
	parsed, err := ParseIntensity(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// WorkoutDay is a weekday with Monday as day 0.
type WorkoutDay int

const (
	Monday WorkoutDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var workoutDayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func (d WorkoutDay) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return workoutDayNames[d]
}

func (d WorkoutDay) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *WorkoutDay) UnmarshalText(b []byte) error {
	parsed, err := ParseWorkoutDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Weekday converts to the standard library representation.
func (d WorkoutDay) Weekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// WorkoutDayOf returns the WorkoutDay a date falls on.
func WorkoutDayOf(t time.Time) WorkoutDay {
	return WorkoutDay((int(t.Weekday()) + 6) % 7)
}

// ParseWorkoutDay accepts full names ("monday") and three letter abbreviations ("mon").
func ParseWorkoutDay(s string) (WorkoutDay, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range workoutDayNames {
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return WorkoutDay(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Availability is a 7-bit set of weekdays, bit 0 = Monday.
type Availability uint8

// NewAvailability builds a set from individual days.
func NewAvailability(days ...WorkoutDay) Availability {
	var a Availability
	for _, d := range days {
		if d >= Monday && d <= Sunday {
			a |= 1 << uint(d)
		}
	}
	return a
}

// Has reports whether day d is available.
func (a Availability) Has(d WorkoutDay) bool {
	if d < Monday || d > Sunday {
		return false
	}
	return a&(1<<uint(d)) != 0
}

// Days lists available days Monday first.
func (a Availability) Days() []WorkoutDay {
	days := make([]WorkoutDay, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		if a.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Count returns the number of available days.
func (a Availability) Count() int {
	return len(a.Days())
}

// ParseAvailability builds a set from day names; duplicates are ignored.
func ParseAvailability(names []string) (Availability, error) {
	var a Availability
	for _, n := range names {
		d, err := ParseWorkoutDay(n)
		if err != nil {
			return 0, err
		}
		a |= NewAvailability(d)
	}
	return a, nil
}

// MarshalJSON encodes the set as a list of day names.
func (a Availability) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 7)
	for _, d := range a.Days() {
		names = append(names, d.String())
	}
	return json.Marshal(names)
}

func (a *Availability) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	parsed, err := ParseAvailability(names)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// CompletionStatus tracks whether a workout was done.
type CompletionStatus string

const (
	StatusNotStarted CompletionStatus = "not_started"
	StatusCompleted  CompletionStatus = "completed"
	StatusSkipped    CompletionStatus = "skipped"
)

// PlanStatus is the lifecycle state of a training plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanAbandoned PlanStatus = "abandoned"
	PlanCompleted PlanStatus = "completed"
)

// AdaptationTrigger is the event category that caused a plan mutation.
type AdaptationTrigger string

const (
	TriggerMissedWorkouts      AdaptationTrigger = "missed_workouts"
	TriggerIntensityChange     AdaptationTrigger = "intensity_change"
	TriggerScheduleChange      AdaptationTrigger = "schedule_change"
	TriggerInjury              AdaptationTrigger = "injury"
	TriggerTimelineChange      AdaptationTrigger = "timeline_change"
	TriggerPerceivedDifficulty AdaptationTrigger = "perceived_difficulty"
)

// AdaptationType classifies what an adaptation changed.
type AdaptationType string

const (
	AdaptationRecovery  AdaptationType = "recovery"
	AdaptationIntensity AdaptationType = "intensity"
	AdaptationSchedule  AdaptationType = "schedule"
	AdaptationInjury    AdaptationType = "injury"
	AdaptationTimeline  AdaptationType = "timeline"
)
