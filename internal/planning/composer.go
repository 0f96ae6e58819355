package planning

import (
	"fmt"
	"math"
	"time"

	"alcyxob/fitness-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Progressive overload parameters.
const (
	OverloadPerWeek     = 0.10
	BaseReps            = 10
	BaseDurationSeconds = 300
	StandardSets        = 3
)

// Shuffler is the randomness the composer needs. *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Slot describes one session to compose.
type Slot struct {
	Week            int
	Phase           domain.Phase
	Intensity       domain.Intensity
	Discipline      domain.Discipline
	Day             domain.WorkoutDay
	Date            time.Time
	DayIndex        int // position within the week, 0-based
	SessionsPerWeek int
}

// WorkoutComposer builds single workouts from a slot and a profile.
type WorkoutComposer struct {
	catalog Catalog
	rnd     Shuffler
}

// NewWorkoutComposer creates a composer. rnd drives exercise variety.
func NewWorkoutComposer(catalog Catalog, rnd Shuffler) *WorkoutComposer {
	return &WorkoutComposer{catalog: catalog, rnd: rnd}
}

// Compose builds the workout for a slot.
func (c *WorkoutComposer) Compose(slot Slot, profile *domain.UserProfile) domain.Workout {
	sessionType := SelectSessionType(slot.Discipline, slot.Phase, slot.DayIndex, slot.SessionsPerWeek)
	difficulty := profile.LevelFor(slot.Discipline).Difficulty()

	var candidates []domain.Exercise
	if injuries := profile.LimitingInjuries(); len(injuries) > 0 {
		var tags []string
		for _, inj := range injuries {
			tags = append(tags, inj.Tags()...)
		}
		candidates = c.catalog.SafeExercises(tags, slot.Discipline, difficulty)
	} else {
		candidates = c.catalog.Exercises(slot.Discipline, difficulty, sessionType)
	}

	selected := c.selectExercises(candidates, ExerciseCount(sessionType))
	exercises := make([]domain.WorkoutExercise, 0, len(selected))
	for i, ex := range selected {
		we := Prescribe(ex, slot.Week, slot.Intensity, slot.Discipline)
		we.Order = i + 1
		exercises = append(exercises, we)
	}

	return domain.Workout{
		ID:              primitive.NewObjectID(),
		ScheduledDate:   slot.Date,
		Day:             slot.Day,
		Discipline:      slot.Discipline,
		SessionType:     sessionType,
		Intensity:       slot.Intensity,
		Status:          domain.StatusNotStarted,
		Name:            fmt.Sprintf("Week %d %s", slot.Week, sessionLabel(sessionType)),
		Description:     fmt.Sprintf("%s %s session, %s intensity.", phaseLabel(slot.Phase), slot.Discipline, slot.Intensity),
		DurationMinutes: EstimateDuration(sessionType, slot.Intensity),
		Exercises:       exercises,
	}
}

// selectExercises prefers compound movements and never picks an exercise twice.
func (c *WorkoutComposer) selectExercises(candidates []domain.Exercise, count int) []domain.Exercise {
	if count <= 0 || len(candidates) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool, len(candidates))
	var compound, other []domain.Exercise
	for _, ex := range candidates {
		if seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true
		if ex.IsCompound() {
			compound = append(compound, ex)
		} else {
			other = append(other, ex)
		}
	}
	c.shuffle(compound)
	c.shuffle(other)

	out := append(compound, other...)
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (c *WorkoutComposer) shuffle(exercises []domain.Exercise) {
	if c.rnd == nil {
		return
	}
	c.rnd.Shuffle(len(exercises), func(i, j int) {
		exercises[i], exercises[j] = exercises[j], exercises[i]
	})
}

// OverloadMultiplier is 1 + (week-1) * 10%.
func OverloadMultiplier(week int) float64 {
	if week < 1 {
		week = 1
	}
	return 1 + float64(week-1)*OverloadPerWeek
}

// Prescribe assigns sets/reps/rest or a duration for a week.
func Prescribe(ex domain.Exercise, week int, intensity domain.Intensity, discipline domain.Discipline) domain.WorkoutExercise {
	m := OverloadMultiplier(week)
	we := domain.WorkoutExercise{
		ExerciseID:        ex.ID,
		ExerciseName:      ex.Name,
		IntensityGuidance: IntensityGuidance(intensity, discipline),
		MovementPatterns:  append([]string(nil), ex.MovementPatterns...),
		Contraindications: append([]string(nil), ex.Contraindications...),
	}
	if ex.DurationBased {
		we.DurationSeconds = int(math.Round(BaseDurationSeconds * m))
		return we
	}
	we.Sets = StandardSets
	we.Reps = int(math.Round(BaseReps * m))
	we.RestSeconds = RestSeconds(intensity)
	return we
}

var sessionLabels = map[domain.SessionType]string{
	domain.SessionEasyRun:        "Easy Run",
	domain.SessionLongRun:        "Long Run",
	domain.SessionTempo:          "Tempo",
	domain.SessionIntervals:      "Intervals",
	domain.SessionRecoveryRun:    "Recovery Run",
	domain.SessionFullBody:       "Full Body",
	domain.SessionPush:           "Push",
	domain.SessionPull:           "Pull",
	domain.SessionLegs:           "Legs",
	domain.SessionHybridCircuit:  "Hybrid Circuit",
	domain.SessionRaceSimulation: "Race Simulation",
	domain.SessionMobility:       "Mobility",
}

func sessionLabel(st domain.SessionType) string {
	if l, ok := sessionLabels[st]; ok {
		return l
	}
	return string(st)
}

func phaseLabel(p domain.Phase) string {
	if p == "" {
		return ""
	}
	s := string(p)
	return string(s[0]-'a'+'A') + s[1:]
}
