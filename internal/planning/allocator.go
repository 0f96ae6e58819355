package planning

import (
	"math"
	"sort"

	"alcyxob/fitness-coach/internal/domain"
)

// priorityCeiling turns a goal priority rank into a weight: weight = priorityCeiling - priority.
const priorityCeiling = 4

var goalDisciplines = map[domain.GoalType]domain.Discipline{
	domain.GoalRace:              domain.DisciplineHybrid,
	domain.GoalDistance:          domain.DisciplineEndurance,
	domain.GoalStrengthMilestone: domain.DisciplineStrength,
	domain.GoalGeneralFitness:    domain.DisciplineHybrid,
}

// disciplineOrder breaks weight ties.
var disciplineOrder = map[domain.Discipline]int{
	domain.DisciplineHybrid:    0,
	domain.DisciplineEndurance: 1,
	domain.DisciplineStrength:  2,
}

// DisciplineFor maps a goal type to the discipline that trains it.
func DisciplineFor(t domain.GoalType) domain.Discipline {
	if d, ok := goalDisciplines[t]; ok {
		return d
	}
	return domain.DisciplineHybrid
}

// DisciplineWeights sums (4 - priority) per discipline over active goals.
// Goals ranked 4 or lower still weigh 1 so they stay represented.
func DisciplineWeights(goals []domain.TrainingGoal) map[domain.Discipline]int {
	weights := make(map[domain.Discipline]int)
	for _, g := range goals {
		if g.Status != domain.GoalActive {
			continue
		}
		w := priorityCeiling - g.Priority
		if w < 1 {
			w = 1
		}
		weights[DisciplineFor(g.Type)] += w
	}
	return weights
}

// AllocateDisciplines returns one discipline per weekly session, highest priority first.
func AllocateDisciplines(weights map[domain.Discipline]int, sessions int) []domain.Discipline {
	if sessions <= 0 {
		return nil
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		out := make([]domain.Discipline, sessions)
		for i := range out {
			out[i] = domain.DisciplineHybrid
		}
		return out
	}

	ranked := make([]domain.Discipline, 0, len(weights))
	for d, w := range weights {
		if w > 0 {
			ranked = append(ranked, d)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if weights[ranked[i]] != weights[ranked[j]] {
			return weights[ranked[i]] > weights[ranked[j]]
		}
		return disciplineOrder[ranked[i]] < disciplineOrder[ranked[j]]
	})

	counts := make([]int, len(ranked))
	assigned := 0
	for i, d := range ranked {
		share := float64(weights[d]) / float64(total)
		counts[i] = max(1, int(math.Round(share*float64(sessions))))
		assigned += counts[i]
	}

	// Over budget: shave the lowest priorities, dropping them entirely as a last resort.
	for assigned > sessions {
		trimmed := false
		for i := len(counts) - 1; i >= 0; i-- {
			if counts[i] > 1 {
				counts[i]--
				assigned--
				trimmed = true
				break
			}
		}
		if !trimmed {
			for i := len(counts) - 1; i >= 0; i-- {
				if counts[i] > 0 {
					counts[i]--
					assigned--
					break
				}
			}
		}
	}
	counts[0] += sessions - assigned

	out := make([]domain.Discipline, 0, sessions)
	for i, d := range ranked {
		for n := 0; n < counts[i]; n++ {
			out = append(out, d)
		}
	}
	return out
}
