package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalType is the kind of target a user trains for.
type GoalType string

const (
	GoalRace              GoalType = "race"
	GoalDistance          GoalType = "distance"
	GoalStrengthMilestone GoalType = "strength_milestone"
	GoalGeneralFitness    GoalType = "general_fitness"
)

// GoalStatus is the lifecycle of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalAchieved  GoalStatus = "achieved"
	GoalAbandoned GoalStatus = "abandoned"
)

// TrainingGoal is one prioritized objective. Lower Priority means more important.
type TrainingGoal struct {
	Type        GoalType   `bson:"type" json:"type"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	TargetDate  *time.Time `bson:"targetDate,omitempty" json:"targetDate,omitempty"`
	Priority    int        `bson:"priority" json:"priority"`
	Status      GoalStatus `bson:"status" json:"status"`
}

// InjuryClass distinguishes acute injuries from chronic conditions.
type InjuryClass string

const (
	InjuryAcute   InjuryClass = "acute"
	InjuryChronic InjuryClass = "chronic"
)

// InjuryStatus only moves forward: active -> improving -> resolved.
type InjuryStatus string

const (
	InjuryActive    InjuryStatus = "active"
	InjuryImproving InjuryStatus = "improving"
	InjuryResolved  InjuryStatus = "resolved"
)

var injuryStatusRank = map[InjuryStatus]int{InjuryActive: 0, InjuryImproving: 1, InjuryResolved: 2}

// CanTransitionTo reports whether the status may move to next.
func (s InjuryStatus) CanTransitionTo(next InjuryStatus) bool {
	from, ok := injuryStatusRank[s]
	to, okNext := injuryStatusRank[next]
	return ok && okNext && to >= from
}

// InjuryLimitation restricts which exercises are safe.
type InjuryLimitation struct {
	BodyPart     string       `bson:"bodyPart" json:"bodyPart"`
	Class        InjuryClass  `bson:"class" json:"class"`
	Restrictions []string     `bson:"restrictions,omitempty" json:"restrictions,omitempty"` // movement tags to avoid, e.g. "impact", "overhead"
	Status       InjuryStatus `bson:"status" json:"status"`
	ReportedAt   time.Time    `bson:"reportedAt" json:"reportedAt"`
}

// Tags returns the body part and restriction tags used for contraindication checks.
func (i InjuryLimitation) Tags() []string {
	tags := make([]string, 0, len(i.Restrictions)+1)
	if i.BodyPart != "" {
		tags = append(tags, i.BodyPart)
	}
	return append(tags, i.Restrictions...)
}

// IsLimiting is true for injuries that still constrain training.
func (i InjuryLimitation) IsLimiting() bool {
	return i.Status == InjuryActive || i.Status == InjuryImproving
}

// UserProfile is everything the planner needs to know about a user.
type UserProfile struct {
	ID                 primitive.ObjectID          `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID          `bson:"userId" json:"userId"`
	FitnessLevels      map[Discipline]FitnessLevel `bson:"fitnessLevels" json:"fitnessLevels"`
	Availability       Availability                `bson:"availability" json:"availability"`
	MinSessionsPerWeek int                         `bson:"minSessionsPerWeek" json:"minSessionsPerWeek"`
	MaxSessionsPerWeek int                         `bson:"maxSessionsPerWeek" json:"maxSessionsPerWeek"`
	Goals              []TrainingGoal              `bson:"goals" json:"goals"`
	Injuries           []InjuryLimitation          `bson:"injuries,omitempty" json:"injuries,omitempty"`
	CreatedAt          time.Time                   `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time                   `bson:"updatedAt" json:"updatedAt"`
}

// LevelFor returns the fitness level for a discipline, Beginner when unknown.
func (p *UserProfile) LevelFor(d Discipline) FitnessLevel {
	if level, ok := p.FitnessLevels[d]; ok && level != "" {
		return level
	}
	return LevelBeginner
}

// LimitingInjuries returns active and improving injuries.
func (p *UserProfile) LimitingInjuries() []InjuryLimitation {
	var out []InjuryLimitation
	for _, inj := range p.Injuries {
		if inj.IsLimiting() {
			out = append(out, inj)
		}
	}
	return out
}

// ActiveGoals returns goals with status active.
func (p *UserProfile) ActiveGoals() []TrainingGoal {
	var out []TrainingGoal
	for _, g := range p.Goals {
		if g.Status == GoalActive {
			out = append(out, g)
		}
	}
	return out
}

// PrimaryGoal is the highest priority active goal, falling back to the first goal.
func (p *UserProfile) PrimaryGoal() *TrainingGoal {
	var best *TrainingGoal
	for i := range p.Goals {
		g := &p.Goals[i]
		if g.Status != GoalActive {
			continue
		}
		if best == nil || g.Priority < best.Priority {
			best = g
		}
	}
	if best == nil && len(p.Goals) > 0 {
		best = &p.Goals[0]
	}
	return best
}
