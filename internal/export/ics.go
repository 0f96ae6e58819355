package export

import (
	"fmt"
	"strings"
	"time"

	"alcyxob/fitness-coach/internal/domain"
)

const icsProdID = "-//Fitness Coach//Training Plan//EN"

// PlanICS renders every non-skipped workout as an all-day VEVENT.
func PlanICS(plan *domain.TrainingPlan, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:" + icsProdID + "\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(plan.Name)))

	stamp := formatICSTime(now)
	for _, w := range plan.Workouts() {
		if w.Status == domain.StatusSkipped {
			continue
		}
		sb.WriteString("BEGIN:VEVENT\r\n")
		sb.WriteString(fmt.Sprintf("UID:%s@fitness-coach\r\n", w.ID.Hex()))
		sb.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		sb.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(w.ScheduledDate)))
		sb.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(w.ScheduledDate.AddDate(0, 0, 1))))
		sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary(w))))
		if desc := eventDescription(w); desc != "" {
			sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(desc)))
		}
		if w.Status == domain.StatusCompleted {
			sb.WriteString("STATUS:CONFIRMED\r\n")
		}
		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func summary(w *domain.Workout) string {
	s := fmt.Sprintf("%s (%d min)", w.Name, w.DurationMinutes)
	if w.IsKeyWorkout {
		s = "★ " + s
	}
	return s
}

func eventDescription(w *domain.Workout) string {
	lines := []string{w.Description, "Intensity: " + w.Intensity.String()}
	for _, ex := range w.Exercises {
		lines = append(lines, fmt.Sprintf("%d. %s %s", ex.Order, ex.ExerciseName, Prescription(ex)))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Prescription is "3x12, rest 90s" or "5 min".
func Prescription(ex domain.WorkoutExercise) string {
	if ex.DurationSeconds > 0 {
		if ex.DurationSeconds%60 == 0 {
			return fmt.Sprintf("%d min", ex.DurationSeconds/60)
		}
		return fmt.Sprintf("%ds", ex.DurationSeconds)
	}
	return fmt.Sprintf("%dx%d, rest %ds", ex.Sets, ex.Reps, ex.RestSeconds)
}

func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(t time.Time) string {
	return t.UTC().Format("20060102")
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
