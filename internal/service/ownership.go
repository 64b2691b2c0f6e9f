package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("workout does not belong to this user")
)

// OwnedWorkout is proof that an existence-then-ownership check has passed.
// Mutating entry points accept one of these instead of raw ids, so a code
// path that skips the check does not compile.
type OwnedWorkout struct {
	workout *domain.Workout
}

// Workout returns the checked workout.
func (o OwnedWorkout) Workout() *domain.Workout {
	return o.workout
}

// OwnershipService is the single place where workout access is decided and
// where a user's workout list and weekly schedule are kept consistent with
// the workout collection. Mutating workout paths must not duplicate these
// checks elsewhere.
type OwnershipService interface {
	// AuthorizeWorkout checks existence first, then ownership. A missing
	// workout yields ErrWorkoutNotFound even for a caller who would not own
	// it; an existing workout with a different owner yields
	// ErrWorkoutAccessDenied, never not-found.
	AuthorizeWorkout(ctx context.Context, workoutID, userID primitive.ObjectID) (OwnedWorkout, error)

	// AttachWorkout records a newly created workout in its owner's list.
	AttachWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error

	// DetachWorkout removes a workout from its owner's list and from any
	// weekday slot referencing it. It returns the weekdays that were
	// cleared so a failed follow-up delete can undo the detach.
	DetachWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.Weekday, error)

	// RestoreWorkout re-attaches a detached workout: the list entry plus
	// the given weekday slots.
	RestoreWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, days []domain.Weekday) error
}

type ownershipService struct {
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
}

// NewOwnershipService creates a new instance of ownershipService.
func NewOwnershipService(workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository) OwnershipService {
	return &ownershipService{
		workoutRepo: workoutRepo,
		userRepo:    userRepo,
	}
}

// AuthorizeWorkout resolves the workout and compares its owner reference
// against the authenticated identity.
func (s *ownershipService) AuthorizeWorkout(ctx context.Context, workoutID, userID primitive.ObjectID) (OwnedWorkout, error) {
	if workoutID == primitive.NilObjectID || userID == primitive.NilObjectID {
		return OwnedWorkout{}, ErrWorkoutNotFound
	}

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OwnedWorkout{}, ErrWorkoutNotFound
		}
		return OwnedWorkout{}, err
	}

	if !workout.IsOwnedBy(userID) {
		return OwnedWorkout{}, ErrWorkoutAccessDenied
	}

	return OwnedWorkout{workout: workout}, nil
}

func (s *ownershipService) AttachWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	return s.userRepo.AddWorkoutRef(ctx, userID, workoutID)
}

func (s *ownershipService) DetachWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.Weekday, error) {
	return s.userRepo.RemoveWorkoutRef(ctx, userID, workoutID)
}

func (s *ownershipService) RestoreWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, days []domain.Weekday) error {
	if err := s.userRepo.AddWorkoutRef(ctx, userID, workoutID); err != nil {
		return err
	}
	id := workoutID
	for _, day := range days {
		if _, err := s.userRepo.SetWeekSlot(ctx, userID, day, &id); err != nil {
			return err
		}
	}
	return nil
}
