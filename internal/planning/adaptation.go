package planning

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Adaptation constants.
const (
	// ScheduleLookaheadDays bounds how far a rescheduled workout may move from today.
	ScheduleLookaheadDays = 14
	// MinScheduleDays is the minimum number of available days after a schedule change.
	MinScheduleDays = 2
	// MinRemainingWeeks is the floor when a timeline is compressed.
	MinRemainingWeeks = 4
	// missedStreakWarning is the number of missed workouts that produces a warning.
	missedStreakWarning = 7
	// missedTwoWeeks is the number of misses that extends recovery to two weeks.
	missedTwoWeeks = 4
	// maxIntensityJump is the largest tolerated ordinal difference between consecutive workouts.
	maxIntensityJump = 2

	injuryNotePrefix = "Adapted for injury"
	timelineNote     = "Dropped after timeline change."
)

// Direction is the requested intensity change.
type Direction string

const (
	Harder Direction = "harder"
	Easier Direction = "easier"
)

// Result is the outcome of one adaptation call. Success=false with zero
// workouts affected means there was nothing to adapt.
type Result struct {
	AdaptationID     primitive.ObjectID       `json:"adaptationId,omitempty"`
	PlanID           primitive.ObjectID       `json:"planId"`
	Trigger          domain.AdaptationTrigger `json:"trigger"`
	Type             domain.AdaptationType    `json:"type"`
	Description      string                   `json:"description"`
	WorkoutsAffected int                      `json:"workoutsAffected"`
	AppliedAt        time.Time                `json:"appliedAt"`
	Success          bool                     `json:"success"`
	Reason           string                   `json:"reason,omitempty"`
	Warnings         []string                 `json:"warnings,omitempty"`

	// Adaptation is the record to append; nil on no-op.
	Adaptation *domain.PlanAdaptation `json:"-"`
	// Workouts are copies of the workouts that changed.
	Workouts []domain.Workout `json:"-"`
}

// Adapter mutates the future, incomplete workouts of an active plan.
type Adapter struct {
	opts options
}

// NewAdapter creates an adaptation engine.
func NewAdapter(opts ...Option) *Adapter {
	return &Adapter{opts: buildOptions(opts)}
}

// MissedWorkouts eases the next week (two weeks from four misses) of workouts by one intensity step.
func (a *Adapter) MissedWorkouts(plan *domain.TrainingPlan, last *domain.PlanAdaptation, missed []primitive.ObjectID) (*Result, error) {
	if err := a.precheck(plan, last, true); err != nil {
		return nil, err
	}
	if len(missed) == 0 {
		return nil, validationErrorf("at least one missed workout is required")
	}

	eligible := a.eligible(plan)
	if len(eligible) == 0 {
		return a.noop(plan, domain.TriggerMissedWorkouts, domain.AdaptationRecovery, "no upcoming workouts to ease"), nil
	}

	weeks := 1
	if len(missed) >= missedTwoWeeks {
		weeks = 2
	}
	limit := min(len(eligible), weeks*max(plan.SessionsPerWeek, 1))
	note := fmt.Sprintf("Re-entry after %d missed session(s): ease back in and keep the effort controlled. ", len(missed))

	var changes []domain.AdaptationChange
	var changed []domain.Workout
	for _, w := range eligible[:limit] {
		next := w.Intensity.Step(-1)
		changes = append(changes, intensityChange(w, next))
		w.Intensity = next
		w.Description = note + w.Description
		changed = append(changed, *w)
	}

	var warnings []string
	if len(missed) >= missedStreakWarning {
		msg := fmt.Sprintf("%d workouts missed; consider a check-in before resuming full load", len(missed))
		warnings = append(warnings, msg)
		a.opts.logger.Warn("long missed-workout streak", slog.String("plan_id", plan.ID.Hex()), slog.Int("missed", len(missed)))
	}

	desc := fmt.Sprintf("Reduced intensity of the next %d workout(s) after %d missed session(s)", len(changed), len(missed))
	res := a.apply(plan, domain.TriggerMissedWorkouts, domain.AdaptationRecovery, desc, changes, changed)
	res.Warnings = warnings
	return res, nil
}

// IntensityChange shifts every future workout one step harder or easier.
func (a *Adapter) IntensityChange(plan *domain.TrainingPlan, last *domain.PlanAdaptation, dir Direction) (*Result, error) {
	if err := a.precheck(plan, last, true); err != nil {
		return nil, err
	}
	delta, err := directionDelta(dir)
	if err != nil {
		return nil, err
	}

	eligible := a.eligible(plan)
	if len(eligible) == 0 {
		return a.noop(plan, domain.TriggerIntensityChange, domain.AdaptationIntensity, "no upcoming workouts to adjust"), nil
	}

	var changes []domain.AdaptationChange
	var changed []domain.Workout
	for _, w := range eligible {
		next := w.Intensity.Step(delta)
		if next == w.Intensity {
			continue
		}
		changes = append(changes, intensityChange(w, next))
		w.Intensity = next
		changed = append(changed, *w)
	}
	a.checkProgression(plan, eligible)
	if len(changed) == 0 {
		return a.noop(plan, domain.TriggerIntensityChange, domain.AdaptationIntensity, fmt.Sprintf("upcoming workouts cannot be made any %s", dir)), nil
	}

	desc := fmt.Sprintf("Made %d upcoming workout(s) %s", len(changed), dir)
	return a.apply(plan, domain.TriggerIntensityChange, domain.AdaptationIntensity, desc, changes, changed), nil
}

// PerceivedDifficulty classifies free-text feedback and applies the matching intensity change.
func (a *Adapter) PerceivedDifficulty(plan *domain.TrainingPlan, last *domain.PlanAdaptation, feedback string) (*Result, error) {
	res, err := a.IntensityChange(plan, last, ClassifyFeedback(feedback))
	if err != nil {
		return nil, err
	}
	res.Trigger = domain.TriggerPerceivedDifficulty
	if res.Adaptation != nil {
		res.Adaptation.Trigger = domain.TriggerPerceivedDifficulty
	}
	return res, nil
}

// ClassifyFeedback maps feedback mentioning "easy" to Harder and anything else to Easier.
func ClassifyFeedback(feedback string) Direction {
	if strings.Contains(strings.ToLower(feedback), "easy") {
		return Harder
	}
	return Easier
}

// ScheduleChange moves future workouts onto a new weekly availability.
// Key workouts are placed first. Each workout walks forward day by day from
// today; one with no free slot within ScheduleLookaheadDays keeps its original
// date. Workouts stay in their owning plan week.
func (a *Adapter) ScheduleChange(plan *domain.TrainingPlan, last *domain.PlanAdaptation, availability domain.Availability) (*Result, error) {
	if err := a.precheck(plan, last, true); err != nil {
		return nil, err
	}
	if n := availability.Count(); n < MinScheduleDays {
		return nil, validationErrorf("at least %d available days are required, got %d", MinScheduleDays, n)
	}

	eligible := a.eligible(plan)
	if len(eligible) == 0 {
		return a.noop(plan, domain.TriggerScheduleChange, domain.AdaptationSchedule, "no upcoming workouts to reschedule"), nil
	}

	today := a.today()
	taken := make(map[time.Time]bool)
	for _, w := range plan.Workouts() {
		if !w.IsEditable(today) && !w.ScheduledDate.Before(today) {
			taken[dateOf(w.ScheduledDate)] = true
		}
	}

	ordered := make([]*domain.Workout, 0, len(eligible))
	for _, w := range eligible {
		if w.IsKeyWorkout {
			ordered = append(ordered, w)
		}
	}
	for _, w := range eligible {
		if !w.IsKeyWorkout {
			ordered = append(ordered, w)
		}
	}

	var changes []domain.AdaptationChange
	var changed []domain.Workout
	unplaced := 0
	for _, w := range ordered {
		slot, ok := nextFreeDay(today, availability, taken)
		if !ok {
			unplaced++
			taken[dateOf(w.ScheduledDate)] = true
			continue
		}
		taken[slot] = true
		if slot.Equal(dateOf(w.ScheduledDate)) {
			continue
		}
		changes = append(changes, domain.AdaptationChange{
			WorkoutID: w.ID,
			Field:     "scheduledDate",
			From:      w.ScheduledDate.Format(time.DateOnly),
			To:        slot.Format(time.DateOnly),
		})
		w.ScheduledDate = slot
		w.Day = domain.WorkoutDayOf(slot)
		changed = append(changed, *w)
	}

	changes = append(changes, domain.AdaptationChange{
		Field: "availability",
		From:  formatDays(plan.Availability),
		To:    formatDays(availability),
	})
	plan.Availability = availability
	plan.SortWorkouts()

	var warnings []string
	if unplaced > 0 {
		msg := fmt.Sprintf("%d workout(s) had no free day within %d days and kept their original date", unplaced, ScheduleLookaheadDays)
		warnings = append(warnings, msg)
		a.opts.logger.Warn("schedule change left workouts in place", slog.String("plan_id", plan.ID.Hex()), slog.Int("unplaced", unplaced))
	}

	desc := fmt.Sprintf("Moved %d workout(s) onto %s", len(changed), formatDays(availability))
	res := a.apply(plan, domain.TriggerScheduleChange, domain.AdaptationSchedule, desc, changes, changed)
	res.Warnings = warnings
	return res, nil
}

// nextFreeDay walks forward from a date looking for an available, unused day.
func nextFreeDay(from time.Time, availability domain.Availability, taken map[time.Time]bool) (time.Time, bool) {
	for d := 0; d < ScheduleLookaheadDays; d++ {
		date := from.AddDate(0, 0, d)
		if availability.Has(domain.WorkoutDayOf(date)) && !taken[date] {
			return date, true
		}
	}
	return time.Time{}, false
}

// Injury notes every future workout and flags contraindicated exercises for review.
// It is exempt from the cooldown. Repeating it succeeds without duplicating the
// note or the review flags.
func (a *Adapter) Injury(plan *domain.TrainingPlan, injury domain.InjuryLimitation) (*Result, error) {
	if err := a.precheck(plan, nil, false); err != nil {
		return nil, err
	}
	if strings.TrimSpace(injury.BodyPart) == "" {
		return nil, validationErrorf("injured body part is required")
	}

	eligible := a.eligible(plan)
	if len(eligible) == 0 {
		return a.noop(plan, domain.TriggerInjury, domain.AdaptationInjury, "no upcoming workouts to adapt"), nil
	}

	note := fmt.Sprintf("%s (%s): stop any movement that causes pain. ", injuryNotePrefix, injury.BodyPart)
	tags := injury.Tags()

	var changes []domain.AdaptationChange
	changed := make([]domain.Workout, 0, len(eligible))
	for _, w := range eligible {
		// other triggers prepend their own notes, so the injury note may not lead
		if !strings.Contains(w.Description, injuryNotePrefix) {
			w.Description = note + w.Description
			changes = append(changes, domain.AdaptationChange{WorkoutID: w.ID, Field: "description", From: "", To: strings.TrimSpace(note)})
		}
		for i := range w.Exercises {
			ex := &w.Exercises[i]
			if ex.NeedsReview || !domain.Contraindicated(ex.Contraindications, ex.MovementPatterns, tags) {
				continue
			}
			ex.NeedsReview = true
			changes = append(changes, domain.AdaptationChange{WorkoutID: w.ID, Field: "exercise.needsReview", From: ex.ExerciseName, To: "true"})
		}
		changed = append(changed, *w)
	}

	desc := fmt.Sprintf("Adapted %d upcoming workout(s) for %s injury", len(changed), injury.BodyPart)
	return a.apply(plan, domain.TriggerInjury, domain.AdaptationInjury, desc, changes, changed), nil
}

// TimelineChange moves the plan end date. Compressing must leave at least
// MinRemainingWeeks from today; workouts after the new end are skipped.
func (a *Adapter) TimelineChange(plan *domain.TrainingPlan, last *domain.PlanAdaptation, newEnd time.Time) (*Result, error) {
	if err := a.precheck(plan, last, true); err != nil {
		return nil, err
	}
	newEnd = dateOf(newEnd)
	today := a.today()
	start := dateOf(plan.StartDate)

	if !newEnd.After(start) {
		return nil, validationErrorf("new end date %s must be after the plan start %s", newEnd.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	if newEnd.Before(dateOf(plan.EndDate)) {
		remainingDays := int(newEnd.Sub(today).Hours() / 24)
		if remainingDays < MinRemainingWeeks*7 {
			return nil, validationErrorf("compressed timeline leaves %d day(s); at least %d weeks are required", max(remainingDays, 0), MinRemainingWeeks)
		}
	}
	totalWeeks := int(math.Ceil(newEnd.Sub(start).Hours() / 24 / 7))
	if totalWeeks > MaxPlanWeeks {
		return nil, validationErrorf("plan cannot exceed %d weeks, new end date gives %d", MaxPlanWeeks, totalWeeks)
	}

	eligible := a.eligible(plan)
	if len(eligible) == 0 {
		return a.noop(plan, domain.TriggerTimelineChange, domain.AdaptationTimeline, "no upcoming workouts in this plan"), nil
	}

	changes := []domain.AdaptationChange{
		{Field: "endDate", From: plan.EndDate.Format(time.DateOnly), To: newEnd.Format(time.DateOnly)},
		{Field: "totalWeeks", From: fmt.Sprint(plan.TotalWeeks), To: fmt.Sprint(totalWeeks)},
	}
	var changed []domain.Workout
	for _, w := range eligible {
		if w.ScheduledDate.Before(newEnd) || w.Status == domain.StatusSkipped {
			continue
		}
		changes = append(changes, domain.AdaptationChange{WorkoutID: w.ID, Field: "status", From: string(w.Status), To: string(domain.StatusSkipped)})
		w.Status = domain.StatusSkipped
		w.Description = timelineNote + " " + w.Description
		changed = append(changed, *w)
	}

	desc := fmt.Sprintf("Moved plan end from %s to %s (%d weeks)", plan.EndDate.Format(time.DateOnly), newEnd.Format(time.DateOnly), totalWeeks)
	plan.EndDate = newEnd
	plan.TotalWeeks = totalWeeks
	if plan.CurrentWeek > totalWeeks {
		plan.CurrentWeek = totalWeeks
	}
	return a.apply(plan, domain.TriggerTimelineChange, domain.AdaptationTimeline, desc, changes, changed), nil
}

// precheck enforces an active plan and, unless exempt, the cooldown.
func (a *Adapter) precheck(plan *domain.TrainingPlan, last *domain.PlanAdaptation, cooldown bool) error {
	if plan == nil || plan.Status != domain.PlanActive {
		return ErrPlanNotFound
	}
	if !cooldown || last == nil {
		return nil
	}
	elapsed := a.opts.now().Sub(last.AppliedAt)
	if elapsed >= a.opts.cooldown {
		return nil
	}
	remaining := a.opts.cooldown - elapsed
	return &CooldownError{DaysRemaining: int(math.Ceil(remaining.Hours() / 24))}
}

func (a *Adapter) today() time.Time {
	return dateOf(a.opts.now())
}

// eligible returns future, incomplete workouts in date order.
func (a *Adapter) eligible(plan *domain.TrainingPlan) []*domain.Workout {
	today := a.today()
	var out []*domain.Workout
	for _, w := range plan.Workouts() {
		if w.IsEditable(today) {
			out = append(out, w)
		}
	}
	return out
}

// checkProgression logs consecutive workouts whose intensity differs by more than two steps.
func (a *Adapter) checkProgression(plan *domain.TrainingPlan, workouts []*domain.Workout) {
	for i := 1; i < len(workouts); i++ {
		jump := int(workouts[i].Intensity) - int(workouts[i-1].Intensity)
		if jump < 0 {
			jump = -jump
		}
		if jump > maxIntensityJump {
			a.opts.logger.Warn("large intensity jump between consecutive workouts",
				slog.String("plan_id", plan.ID.Hex()),
				slog.String("from", workouts[i-1].ScheduledDate.Format(time.DateOnly)),
				slog.String("to", workouts[i].ScheduledDate.Format(time.DateOnly)),
				slog.Int("steps", jump))
		}
	}
}

func (a *Adapter) noop(plan *domain.TrainingPlan, trigger domain.AdaptationTrigger, typ domain.AdaptationType, reason string) *Result {
	return &Result{
		PlanID:    plan.ID,
		Trigger:   trigger,
		Type:      typ,
		AppliedAt: a.opts.now().UTC(),
		Success:   false,
		Reason:    reason,
	}
}

func (a *Adapter) apply(plan *domain.TrainingPlan, trigger domain.AdaptationTrigger, typ domain.AdaptationType, desc string, changes []domain.AdaptationChange, changed []domain.Workout) *Result {
	now := a.opts.now().UTC()
	record := &domain.PlanAdaptation{
		ID:          primitive.NewObjectID(),
		PlanID:      plan.ID,
		UserID:      plan.UserID,
		Trigger:     trigger,
		Type:        typ,
		Description: desc,
		Changes:     changes,
		AppliedAt:   now,
	}
	plan.UpdatedAt = now
	return &Result{
		AdaptationID:     record.ID,
		PlanID:           plan.ID,
		Trigger:          trigger,
		Type:             typ,
		Description:      desc,
		WorkoutsAffected: len(changed),
		AppliedAt:        now,
		Success:          true,
		Adaptation:       record,
		Workouts:         changed,
	}
}

func directionDelta(dir Direction) (int, error) {
	switch dir {
	case Harder:
		return 1, nil
	case Easier:
		return -1, nil
	default:
		return 0, validationErrorf("unknown intensity direction %q", dir)
	}
}

func intensityChange(w *domain.Workout, next domain.Intensity) domain.AdaptationChange {
	return domain.AdaptationChange{WorkoutID: w.ID, Field: "intensity", From: w.Intensity.String(), To: next.String()}
}

func formatDays(a domain.Availability) string {
	days := a.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}
