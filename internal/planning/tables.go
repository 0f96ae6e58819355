package planning

import "alcyxob/fitness-coach/internal/domain"

// sessionKey selects a session type for endurance and hybrid work.
type sessionKey struct {
	discipline domain.Discipline
	phase      domain.Phase
	first      bool // first session of the week
}

var sessionTypeTable = map[sessionKey]domain.SessionType{
	{domain.DisciplineEndurance, domain.PhaseFoundation, true}:  domain.SessionEasyRun,
	{domain.DisciplineEndurance, domain.PhaseFoundation, false}: domain.SessionLongRun,
	{domain.DisciplineEndurance, domain.PhaseBuild, true}:       domain.SessionTempo,
	{domain.DisciplineEndurance, domain.PhaseBuild, false}:      domain.SessionLongRun,
	{domain.DisciplineEndurance, domain.PhaseIntensity, true}:   domain.SessionIntervals,
	{domain.DisciplineEndurance, domain.PhaseIntensity, false}:  domain.SessionIntervals,
	{domain.DisciplineEndurance, domain.PhasePeak, true}:        domain.SessionIntervals,
	{domain.DisciplineEndurance, domain.PhasePeak, false}:       domain.SessionLongRun,
	{domain.DisciplineEndurance, domain.PhaseTaper, true}:       domain.SessionEasyRun,
	{domain.DisciplineEndurance, domain.PhaseTaper, false}:      domain.SessionTempo,
	{domain.DisciplineEndurance, domain.PhaseRecovery, true}:    domain.SessionRecoveryRun,
	{domain.DisciplineEndurance, domain.PhaseRecovery, false}:   domain.SessionRecoveryRun,

	{domain.DisciplineHybrid, domain.PhaseFoundation, true}:  domain.SessionFullBody,
	{domain.DisciplineHybrid, domain.PhaseFoundation, false}: domain.SessionHybridCircuit,
	{domain.DisciplineHybrid, domain.PhaseBuild, true}:       domain.SessionHybridCircuit,
	{domain.DisciplineHybrid, domain.PhaseBuild, false}:      domain.SessionTempo,
	{domain.DisciplineHybrid, domain.PhaseIntensity, true}:   domain.SessionIntervals,
	{domain.DisciplineHybrid, domain.PhaseIntensity, false}:  domain.SessionHybridCircuit,
	{domain.DisciplineHybrid, domain.PhasePeak, true}:        domain.SessionHybridCircuit,
	{domain.DisciplineHybrid, domain.PhasePeak, false}:       domain.SessionRaceSimulation,
	{domain.DisciplineHybrid, domain.PhaseTaper, true}:       domain.SessionMobility,
	{domain.DisciplineHybrid, domain.PhaseTaper, false}:      domain.SessionEasyRun,
	{domain.DisciplineHybrid, domain.PhaseRecovery, true}:    domain.SessionMobility,
	{domain.DisciplineHybrid, domain.PhaseRecovery, false}:   domain.SessionMobility,
}

// strengthSplits is keyed by whether the week has at least three sessions.
var strengthSplits = map[bool][]domain.SessionType{
	false: {domain.SessionFullBody},
	true:  {domain.SessionPush, domain.SessionPull, domain.SessionLegs},
}

// splitThreshold is the sessions per week from which strength uses a push/pull/legs split.
const splitThreshold = 3

// baseDurations in minutes.
var baseDurations = map[domain.SessionType]int{
	domain.SessionEasyRun:        40,
	domain.SessionLongRun:        75,
	domain.SessionTempo:          45,
	domain.SessionIntervals:      45,
	domain.SessionRecoveryRun:    30,
	domain.SessionFullBody:       60,
	domain.SessionPush:           50,
	domain.SessionPull:           50,
	domain.SessionLegs:           55,
	domain.SessionHybridCircuit:  50,
	domain.SessionRaceSimulation: 90,
	domain.SessionMobility:       20,
}

const (
	defaultDurationMinutes = 45
	highIntensityScale     = 1.2
)

var exerciseCounts = map[domain.SessionType]int{
	domain.SessionFullBody:       6,
	domain.SessionIntervals:      3,
	domain.SessionRaceSimulation: 8,
}

const defaultExerciseCount = 4

var restByIntensity = map[domain.Intensity]int{
	domain.IntensityLow:      60,
	domain.IntensityModerate: 90,
	domain.IntensityHigh:     120,
	domain.IntensityMaximum:  120,
}

type guidanceKey struct {
	intensity  domain.Intensity
	discipline domain.Discipline
}

var guidanceTable = map[guidanceKey]string{
	{domain.IntensityLow, domain.DisciplineEndurance}:      "Zone 2, conversational pace (RPE 3-4)",
	{domain.IntensityLow, domain.DisciplineStrength}:       "Leave 4+ reps in reserve (RPE 5)",
	{domain.IntensityLow, domain.DisciplineHybrid}:         "Steady and controlled, nasal breathing (RPE 4-5)",
	{domain.IntensityModerate, domain.DisciplineEndurance}: "Zone 3, comfortably hard (RPE 5-6)",
	{domain.IntensityModerate, domain.DisciplineStrength}:  "Leave 2-3 reps in reserve (RPE 7)",
	{domain.IntensityModerate, domain.DisciplineHybrid}:    "Sustainable race effort (RPE 6-7)",
	{domain.IntensityHigh, domain.DisciplineEndurance}:     "Zone 4, threshold effort (RPE 7-8)",
	{domain.IntensityHigh, domain.DisciplineStrength}:      "Leave 1-2 reps in reserve (RPE 8)",
	{domain.IntensityHigh, domain.DisciplineHybrid}:        "Hard but repeatable efforts (RPE 8)",
	{domain.IntensityMaximum, domain.DisciplineEndurance}:  "Zone 5, all-out intervals (RPE 9-10)",
	{domain.IntensityMaximum, domain.DisciplineStrength}:   "Top sets to technical failure (RPE 9-10)",
	{domain.IntensityMaximum, domain.DisciplineHybrid}:     "Race pace or faster (RPE 9)",
}

const defaultGuidance = "RPE 5-7"

// SelectSessionType picks the session type for one slot of the week.
func SelectSessionType(discipline domain.Discipline, phase domain.Phase, dayIndex, sessionsPerWeek int) domain.SessionType {
	if discipline == domain.DisciplineStrength {
		if phase == domain.PhaseTaper || phase == domain.PhaseRecovery {
			return domain.SessionFullBody
		}
		split := strengthSplits[sessionsPerWeek >= splitThreshold]
		return split[dayIndex%len(split)]
	}
	if st, ok := sessionTypeTable[sessionKey{discipline, phase, dayIndex == 0}]; ok {
		return st
	}
	return domain.SessionFullBody
}

// EstimateDuration returns the session length in minutes.
func EstimateDuration(st domain.SessionType, intensity domain.Intensity) int {
	base, ok := baseDurations[st]
	if !ok {
		base = defaultDurationMinutes
	}
	if intensity == domain.IntensityHigh {
		return int(float64(base)*highIntensityScale + 0.5)
	}
	return base
}

// ExerciseCount is how many exercises a session of type st prescribes.
func ExerciseCount(st domain.SessionType) int {
	if n, ok := exerciseCounts[st]; ok {
		return n
	}
	return defaultExerciseCount
}

// RestSeconds between sets for an intensity.
func RestSeconds(i domain.Intensity) int {
	if r, ok := restByIntensity[i]; ok {
		return r
	}
	return restByIntensity[domain.IntensityModerate]
}

// IntensityGuidance describes how hard to go.
func IntensityGuidance(i domain.Intensity, d domain.Discipline) string {
	if g, ok := guidanceTable[guidanceKey{i, d}]; ok {
		return g
	}
	return defaultGuidance
}
