package repository

import (
	"alcyxob/fitness-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserUpdate carries a partial profile update; nil fields are left unchanged.
// Password must already be hashed by the caller.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, id primitive.ObjectID, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AddWorkoutRef appends a workout id to the user's workout list.
	AddWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) error
	// RemoveWorkoutRef removes a workout id from the user's workout list and
	// clears every week slot that still points at it, atomically in a single
	// document update. It returns the weekdays whose slots were cleared so
	// the caller can undo the detach.
	RemoveWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.Weekday, error)
	// SetWeekSlot assigns (or clears, when workoutID is nil) a weekday slot
	// and returns the updated user.
	SetWeekSlot(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error)
	// SetAvatarKey records the object-storage key of the user's avatar.
	SetAvatarKey(ctx context.Context, userID primitive.ObjectID, key string) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByOwner removes every workout owned by the given user and
	// returns the number of deleted documents.
	DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}
