package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekday names a day slot in a user's weekly schedule.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists all schedule slots in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid reports whether d is one of the seven weekday names.
func (d Weekday) IsValid() bool {
	for _, day := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// WeekSchedule maps each weekday to at most one workout owned by the user.
// A nil slot means no workout is scheduled for that day.
type WeekSchedule struct {
	Monday    *primitive.ObjectID `bson:"Monday" json:"Monday"`
	Tuesday   *primitive.ObjectID `bson:"Tuesday" json:"Tuesday"`
	Wednesday *primitive.ObjectID `bson:"Wednesday" json:"Wednesday"`
	Thursday  *primitive.ObjectID `bson:"Thursday" json:"Thursday"`
	Friday    *primitive.ObjectID `bson:"Friday" json:"Friday"`
	Saturday  *primitive.ObjectID `bson:"Saturday" json:"Saturday"`
	Sunday    *primitive.ObjectID `bson:"Sunday" json:"Sunday"`
}

// Slot returns a pointer to the schedule entry for the given day,
// or nil if the day name is unknown.
func (w *WeekSchedule) Slot(day Weekday) **primitive.ObjectID {
	switch day {
	case Monday:
		return &w.Monday
	case Tuesday:
		return &w.Tuesday
	case Wednesday:
		return &w.Wednesday
	case Thursday:
		return &w.Thursday
	case Friday:
		return &w.Friday
	case Saturday:
		return &w.Saturday
	case Sunday:
		return &w.Sunday
	}
	return nil
}

// DaysReferencing returns the weekdays whose slot points at the given workout.
func (w *WeekSchedule) DaysReferencing(workoutID primitive.ObjectID) []Weekday {
	var days []Weekday
	for _, day := range Weekdays {
		if slot := *w.Slot(day); slot != nil && *slot == workoutID {
			days = append(days, day)
		}
	}
	return days
}

// User represents an account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Stored lowercase; unique index
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"`

	// WorkoutIDs lists every workout owned by this user. Entries here and
	// in Week must always refer to workouts whose OwnerID is this user.
	WorkoutIDs []primitive.ObjectID `bson:"workouts" json:"workouts"`
	Week       WeekSchedule         `bson:"week" json:"week"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OwnsWorkoutRef reports whether the workout id appears in the user's list.
func (u *User) OwnsWorkoutRef(workoutID primitive.ObjectID) bool {
	for _, id := range u.WorkoutIDs {
		if id == workoutID {
			return true
		}
	}
	return false
}
