package planning

import (
	"math"
	"sort"
	"time"

	"alcyxob/fitness-coach/internal/domain"
)

// ScheduleResolver spreads a number of weekly sessions over the available weekdays.
// It is deterministic: the same availability and count always give the same days.
type ScheduleResolver struct {
	days []domain.WorkoutDay
}

// NewScheduleResolver creates a resolver for the given availability.
func NewScheduleResolver(a domain.Availability) ScheduleResolver {
	return ScheduleResolver{days: a.Days()}
}

// AvailableDays returns the available weekdays, Monday first.
func (r ScheduleResolver) AvailableDays() []domain.WorkoutDay {
	return append([]domain.WorkoutDay(nil), r.days...)
}

// Resolve picks count distinct days using a fixed step over the available days.
// Asking for more sessions than available days is an error; callers cap first.
func (r ScheduleResolver) Resolve(count int) ([]domain.WorkoutDay, error) {
	if count <= 0 {
		return nil, nil
	}
	n := len(r.days)
	if count > n {
		return nil, validationErrorf("requested %d sessions per week but only %d days are available", count, n)
	}
	step := float64(n) / float64(count)
	out := make([]domain.WorkoutDay, 0, count)
	for i := 0; i < count; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx > n-1 {
			idx = n - 1
		}
		out = append(out, r.days[idx])
	}
	return out, nil
}

// SessionDate returns the calendar date of a weekday inside plan week weekNumber.
// Week k covers [start+7(k-1), start+7k), so dates never precede the plan start.
func SessionDate(start time.Time, weekNumber int, day domain.WorkoutDay) time.Time {
	weekStart := dateOf(start).AddDate(0, 0, 7*(weekNumber-1))
	offset := (int(day) - int(domain.WorkoutDayOf(weekStart)) + 7) % 7
	return weekStart.AddDate(0, 0, offset)
}

// scheduledDay pairs a weekday with its date in a given week.
type scheduledDay struct {
	day  domain.WorkoutDay
	date time.Time
}

// weekSchedule resolves the days of one week in chronological order.
func weekSchedule(start time.Time, weekNumber int, days []domain.WorkoutDay) []scheduledDay {
	out := make([]scheduledDay, 0, len(days))
	for _, d := range days {
		out = append(out, scheduledDay{day: d, date: SessionDate(start, weekNumber, d)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}
