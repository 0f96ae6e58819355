package planning

import "alcyxob/fitness-coach/internal/domain"

// Catalog answers the two exercise queries the composer needs.
// Results are unordered candidate lists.
type Catalog interface {
	Exercises(discipline domain.Discipline, difficulty domain.Difficulty, sessionType domain.SessionType) []domain.Exercise
	SafeExercises(injuryTags []string, discipline domain.Discipline, difficulty domain.Difficulty) []domain.Exercise
}

// ExercisePool is an in-memory Catalog over a preloaded slice.
type ExercisePool []domain.Exercise

// Exercises filters by discipline, difficulty and session type.
// When nothing fits the session type the discipline/difficulty matches are returned.
func (p ExercisePool) Exercises(discipline domain.Discipline, difficulty domain.Difficulty, sessionType domain.SessionType) []domain.Exercise {
	var exact, loose []domain.Exercise
	for _, ex := range p {
		if !ex.HasDiscipline(discipline) || ex.Difficulty != difficulty {
			continue
		}
		loose = append(loose, ex)
		if ex.HasSessionType(sessionType) {
			exact = append(exact, ex)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return loose
}

// SafeExercises filters by discipline and difficulty, excluding contraindicated exercises.
func (p ExercisePool) SafeExercises(injuryTags []string, discipline domain.Discipline, difficulty domain.Difficulty) []domain.Exercise {
	var out []domain.Exercise
	for _, ex := range p {
		if ex.HasDiscipline(discipline) && ex.Difficulty == difficulty && ex.SafeFor(injuryTags) {
			out = append(out, ex)
		}
	}
	return out
}
