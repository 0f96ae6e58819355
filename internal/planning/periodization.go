package planning

import (
	"fmt"
	"math"
	"time"

	"alcyxob/fitness-coach/internal/domain"
)

// Plan duration bounds, in weeks.
const (
	MinPlanWeeks     = 4
	MaxPlanWeeks     = 52
	DefaultPlanWeeks = 12

	// DeloadFrequency forces every Nth week (except the last) to low intensity.
	DeloadFrequency = 4

	buildCycleWeeks      = 4
	minWeeksForBuildLoop = 6
)

// phaseIntensity is the default intensity of each phase.
var phaseIntensity = map[domain.Phase]domain.Intensity{
	domain.PhaseFoundation: domain.IntensityLow,
	domain.PhaseBuild:      domain.IntensityModerate,
	domain.PhaseIntensity:  domain.IntensityHigh,
	domain.PhasePeak:       domain.IntensityHigh,
	domain.PhaseTaper:      domain.IntensityLow,
	domain.PhaseRecovery:   domain.IntensityLow,
}

// PhaseSegment is an inclusive range of weeks sharing one phase.
type PhaseSegment struct {
	Phase     domain.Phase `json:"phase"`
	StartWeek int          `json:"startWeek"`
	EndWeek   int          `json:"endWeek"`
}

// Weeks returns the segment length.
func (s PhaseSegment) Weeks() int {
	return s.EndWeek - s.StartWeek + 1
}

// PlanDuration derives the plan length from an optional goal target date.
func PlanDuration(target *time.Time, now time.Time) int {
	if target == nil {
		return DefaultPlanWeeks
	}
	days := math.Ceil(dateOf(*target).Sub(dateOf(now)).Hours() / 24)
	weeks := int(math.Ceil(days / 7))
	return clampWeeks(weeks)
}

func clampWeeks(weeks int) int {
	if weeks < MinPlanWeeks {
		return MinPlanWeeks
	}
	if weeks > MaxPlanWeeks {
		return MaxPlanWeeks
	}
	return weeks
}

// PlanPhases partitions weeks 1..total into phase segments.
func PlanPhases(total int) ([]PhaseSegment, error) {
	if total < MinPlanWeeks || total > MaxPlanWeeks {
		return nil, validationErrorf("plan duration must be between %d and %d weeks, got %d", MinPlanWeeks, MaxPlanWeeks, total)
	}

	var segments []PhaseSegment
	add := func(phase domain.Phase, start, end int) {
		if end >= start {
			segments = append(segments, PhaseSegment{Phase: phase, StartWeek: start, EndWeek: end})
		}
	}

	switch {
	case total <= 8:
		foundationEnd := total / 3
		buildEnd := 2 * total / 3
		add(domain.PhaseFoundation, 1, foundationEnd)
		add(domain.PhaseBuild, foundationEnd+1, buildEnd)
		add(domain.PhasePeak, buildEnd+1, total)
	case total <= 16:
		foundationEnd := total / 5
		buildEnd := 2 * total / 5
		intensityEnd := 3 * total / 5
		add(domain.PhaseFoundation, 1, foundationEnd)
		add(domain.PhaseBuild, foundationEnd+1, buildEnd)
		add(domain.PhaseIntensity, buildEnd+1, intensityEnd)
		add(domain.PhasePeak, intensityEnd+1, total-1)
		add(domain.PhaseTaper, total, total)
	default:
		week := min(4, total/4)
		add(domain.PhaseFoundation, 1, week)
		for total-week >= minWeeksForBuildLoop {
			add(domain.PhaseBuild, week+1, week+buildCycleWeeks)
			week += buildCycleWeeks
		}
		if total-week >= 2 {
			add(domain.PhasePeak, week+1, total-1)
			add(domain.PhaseTaper, total, total)
		} else {
			add(domain.PhasePeak, week+1, total)
		}
	}

	if err := checkCoverage(segments, total); err != nil {
		return nil, err
	}
	return segments, nil
}

// checkCoverage asserts that every week maps to exactly one segment.
func checkCoverage(segments []PhaseSegment, total int) error {
	next := 1
	for _, s := range segments {
		if s.StartWeek != next || s.EndWeek < s.StartWeek {
			return fmt.Errorf("phase %s covers weeks %d-%d, expected start %d", s.Phase, s.StartWeek, s.EndWeek, next)
		}
		next = s.EndWeek + 1
	}
	if next != total+1 {
		return fmt.Errorf("phases cover %d of %d weeks", next-1, total)
	}
	return nil
}

// PhaseForWeek returns the phase of a week, Recovery when the week is outside every segment.
func PhaseForWeek(segments []PhaseSegment, week int) domain.Phase {
	for _, s := range segments {
		if week >= s.StartWeek && week <= s.EndWeek {
			return s.Phase
		}
	}
	return domain.PhaseRecovery
}

// IsDeloadWeek reports whether week is a scheduled recovery week.
func IsDeloadWeek(week, total int) bool {
	return week%DeloadFrequency == 0 && week != total
}

// WeekIntensity is the phase default, overridden to Low on deload weeks.
func WeekIntensity(phase domain.Phase, week, total int) domain.Intensity {
	if IsDeloadWeek(week, total) {
		return domain.IntensityLow
	}
	if i, ok := phaseIntensity[phase]; ok {
		return i
	}
	return domain.IntensityModerate
}
