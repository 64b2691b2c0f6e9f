package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a named collection of exercises belonging to exactly one user.
// OwnerID is set from the authenticated identity at creation time and is
// never changed afterwards.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Exercises []Exercise         `bson:"exercises" json:"exercises"`

	// BreakBetweenExercises is the rest duration between exercises, in seconds.
	BreakBetweenExercises int `bson:"breakBetweenExercises" json:"breakBetweenExercises"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsOwnedBy reports whether the workout belongs to the given user.
func (w *Workout) IsOwnedBy(userID primitive.ObjectID) bool {
	return w.OwnerID == userID
}
