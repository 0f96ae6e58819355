package planning

import (
	"fmt"
	"log/slog"
	"time"

	"alcyxob/fitness-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Generation is a freshly built plan plus advisory warnings from the coherence check.
type Generation struct {
	Plan     *domain.TrainingPlan
	Warnings []string
}

// Generator builds complete training plans.
type Generator struct {
	composer *WorkoutComposer
	opts     options
}

// NewGenerator creates a plan generator over an exercise catalog.
func NewGenerator(catalog Catalog, rnd Shuffler, opts ...Option) *Generator {
	return &Generator{
		composer: NewWorkoutComposer(catalog, rnd),
		opts:     buildOptions(opts),
	}
}

// ValidateProfile checks everything Generate needs before doing any work.
func ValidateProfile(p *domain.UserProfile) error {
	if p == nil {
		return validationErrorf("profile is required")
	}
	if p.Availability == 0 {
		return validationErrorf("weekly availability is required")
	}
	if p.MinSessionsPerWeek < 0 || p.MaxSessionsPerWeek < 1 {
		return validationErrorf("sessions per week must be positive")
	}
	if p.MaxSessionsPerWeek < p.MinSessionsPerWeek {
		return validationErrorf("max sessions per week (%d) is below min sessions per week (%d)", p.MaxSessionsPerWeek, p.MinSessionsPerWeek)
	}
	if days := p.Availability.Count(); days < p.MinSessionsPerWeek {
		return validationErrorf("only %d days available for a minimum of %d sessions per week", days, p.MinSessionsPerWeek)
	}
	if len(p.Goals) == 0 {
		return validationErrorf("at least one training goal is required")
	}
	return nil
}

// SessionsPerWeek is min(max sessions, available days).
func SessionsPerWeek(p *domain.UserProfile) int {
	return min(p.MaxSessionsPerWeek, p.Availability.Count())
}

// Generate builds a plan for the profile starting today.
func (g *Generator) Generate(profile *domain.UserProfile) (*Generation, error) {
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	now := g.opts.now()
	start := dateOf(now)

	var target *time.Time
	if goal := profile.PrimaryGoal(); goal != nil {
		target = goal.TargetDate
	}
	totalWeeks := PlanDuration(target, now)
	sessions := SessionsPerWeek(profile)

	segments, err := PlanPhases(totalWeeks)
	if err != nil {
		return nil, err
	}
	days, err := NewScheduleResolver(profile.Availability).Resolve(sessions)
	if err != nil {
		return nil, err
	}
	disciplines := AllocateDisciplines(DisciplineWeights(profile.Goals), sessions)

	weeks := make([]domain.TrainingWeek, 0, totalWeeks)
	for week := 1; week <= totalWeeks; week++ {
		phase := PhaseForWeek(segments, week)
		intensity := WeekIntensity(phase, week, totalWeeks)
		tw := domain.TrainingWeek{
			WeekNumber: week,
			Phase:      phase,
			Intensity:  intensity,
			IsDeload:   IsDeloadWeek(week, totalWeeks),
		}

		schedule := weekSchedule(start, week, days)
		for i, sd := range schedule {
			w := g.composer.Compose(Slot{
				Week:            week,
				Phase:           phase,
				Intensity:       intensity,
				Discipline:      disciplines[i],
				Day:             sd.day,
				Date:            sd.date,
				DayIndex:        i,
				SessionsPerWeek: sessions,
			}, profile)
			w.IsKeyWorkout = phase == domain.PhasePeak && i == len(schedule)-1
			tw.VolumeMinutes += w.DurationMinutes
			tw.Workouts = append(tw.Workouts, w)
		}
		weeks = append(weeks, tw)
	}

	plan := &domain.TrainingPlan{
		ID:              primitive.NewObjectID(),
		UserID:          profile.UserID,
		Name:            planName(profile, totalWeeks),
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 7*totalWeeks),
		TotalWeeks:      totalWeeks,
		SessionsPerWeek: sessions,
		Availability:    profile.Availability,
		Status:          domain.PlanActive,
		CurrentWeek:     1,
		Weeks:           weeks,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	warnings, err := CheckCoherence(plan)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		g.opts.logger.Warn("plan coherence warning", slog.String("user_id", profile.UserID.Hex()), slog.String("warning", w))
	}
	return &Generation{Plan: plan, Warnings: warnings}, nil
}

func planName(p *domain.UserProfile, weeks int) string {
	if goal := p.PrimaryGoal(); goal != nil {
		if goal.Description != "" {
			return fmt.Sprintf("%d-week plan: %s", weeks, goal.Description)
		}
		return fmt.Sprintf("%d-week %s plan", weeks, goal.Type)
	}
	return fmt.Sprintf("%d-week plan", weeks)
}
