// internal/domain/exercise.go
package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinCompoundPatterns is how many movement patterns make an exercise compound.
const MinCompoundPatterns = 2

// Exercise represents a single exercise definition in the catalog.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"` // coach who added it
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Disciplines       []Discipline  `bson:"disciplines" json:"disciplines"`
	Difficulty        Difficulty    `bson:"difficulty" json:"difficulty"`
	SessionTypes      []SessionType `bson:"sessionTypes" json:"sessionTypes"`
	MovementPatterns  []string      `bson:"movementPatterns" json:"movementPatterns"`                       // e.g. "squat", "hinge", "run"
	Contraindications []string      `bson:"contraindications,omitempty" json:"contraindications,omitempty"` // body parts / movement tags it is unsafe for
	DurationBased     bool          `bson:"durationBased" json:"durationBased"`                             // timed instead of sets x reps

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsCompound reports whether the exercise touches several movement patterns.
func (e Exercise) IsCompound() bool {
	return len(e.MovementPatterns) >= MinCompoundPatterns
}

// HasDiscipline reports whether the exercise is tagged for d.
func (e Exercise) HasDiscipline(d Discipline) bool {
	for _, x := range e.Disciplines {
		if x == d {
			return true
		}
	}
	return false
}

// HasSessionType reports whether the exercise fits st.
func (e Exercise) HasSessionType(st SessionType) bool {
	for _, x := range e.SessionTypes {
		if x == st {
			return true
		}
	}
	return false
}

// SafeFor reports whether none of the injury tags contraindicate the exercise.
func (e Exercise) SafeFor(injuryTags []string) bool {
	return !Contraindicated(e.Contraindications, e.MovementPatterns, injuryTags)
}

// Contraindicated is true when any tag matches a contraindication or movement pattern.
func Contraindicated(contraindications, patterns, injuryTags []string) bool {
	for _, tag := range injuryTags {
		for _, c := range contraindications {
			if strings.EqualFold(c, tag) {
				return true
			}
		}
		for _, p := range patterns {
			if strings.EqualFold(p, tag) {
				return true
			}
		}
	}
	return false
}
