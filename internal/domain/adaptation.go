package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdaptationChange is one field change applied to one workout (or the plan when WorkoutID is nil).
type AdaptationChange struct {
	WorkoutID primitive.ObjectID `bson:"workoutId,omitempty" json:"workoutId,omitempty"`
	Field     string             `bson:"field" json:"field"`
	From      string             `bson:"from" json:"from"`
	To        string             `bson:"to" json:"to"`
}

// PlanAdaptation is an append-only audit record of one plan mutation.
type PlanAdaptation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID      primitive.ObjectID `bson:"planId" json:"planId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Trigger     AdaptationTrigger  `bson:"trigger" json:"trigger"`
	Type        AdaptationType     `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Changes     []AdaptationChange `bson:"changes" json:"changes"`
	AppliedAt   time.Time          `bson:"appliedAt" json:"appliedAt"`
}
