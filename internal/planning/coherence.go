package planning

import (
	"fmt"

	"alcyxob/fitness-coach/internal/domain"
)

// maxVolumeRegression is the largest week-over-week drop tolerated outside deloads.
const maxVolumeRegression = 0.20

// CheckCoherence fails when a week has no workouts and returns advisory
// warnings for volume drops above 20% between non-deload weeks.
func CheckCoherence(plan *domain.TrainingPlan) ([]string, error) {
	var warnings []string
	for i, week := range plan.Weeks {
		if len(week.Workouts) == 0 {
			return nil, fmt.Errorf("week %d has no workouts", week.WeekNumber)
		}
		if i == 0 {
			continue
		}
		prev := plan.Weeks[i-1]
		if week.IsDeload || prev.IsDeload || prev.VolumeMinutes == 0 {
			continue
		}
		drop := float64(prev.VolumeMinutes-week.VolumeMinutes) / float64(prev.VolumeMinutes)
		if drop > maxVolumeRegression {
			warnings = append(warnings, fmt.Sprintf("week %d volume %d min is %.0f%% below week %d (%d min)",
				week.WeekNumber, week.VolumeMinutes, drop*100, prev.WeekNumber, prev.VolumeMinutes))
		}
	}
	return warnings, nil
}
