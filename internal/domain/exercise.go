package domain

// Exercise is a single exercise embedded in a workout. It has no identity
// or lifecycle of its own; it lives and dies with its parent workout.
type Exercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps int    `bson:"reps" json:"reps"`

	// BreakBetweenSets is the rest duration between sets, in seconds.
	BreakBetweenSets int `bson:"breakBetweenSets" json:"breakBetweenSets"`
}
