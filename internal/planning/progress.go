package planning

import (
	"time"

	"alcyxob/fitness-coach/internal/domain"
)

// Progress returns the plan week containing now, clamped to [1, TotalWeeks],
// and whether the plan end date has passed.
func Progress(plan *domain.TrainingPlan, now time.Time) (week int, finished bool) {
	today := dateOf(now)
	start := dateOf(plan.StartDate)
	week = int(today.Sub(start).Hours()/24)/7 + 1
	if week < 1 {
		week = 1
	}
	if plan.TotalWeeks > 0 && week > plan.TotalWeeks {
		week = plan.TotalWeeks
	}
	return week, !today.Before(dateOf(plan.EndDate))
}
