package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrWorkoutValidationFailed = errors.New("workout validation failed")

// WorkoutService handles the workout lifecycle. Update and Delete take an
// OwnedWorkout capability produced by OwnershipService.AuthorizeWorkout, so
// every mutation is ownership-checked by construction.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, name string, exercises []domain.Exercise, breakBetweenExercises int) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, owned OwnedWorkout, name string, exercises []domain.Exercise, breakBetweenExercises int) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, owned OwnedWorkout) (*domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	ownership   OwnershipService
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, ownership OwnershipService) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		ownership:   ownership,
	}
}

// CreateWorkout inserts a new workout owned by ownerID and attaches it to
// the owner's workout list. The insert and the attach are not atomic in a
// single-node MongoDB deployment; if the attach fails the freshly inserted
// workout is deleted again so no orphan is left behind. A crash between the
// two steps can still leave an orphaned workout document, never a dangling
// reference.
func (s *workoutService) CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, name string, exercises []domain.Exercise, breakBetweenExercises int) (*domain.Workout, error) {
	if name == "" || len(exercises) == 0 {
		return nil, ErrWorkoutValidationFailed
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a workout")
	}

	workout := &domain.Workout{
		OwnerID:               ownerID,
		Name:                  name,
		Exercises:             exercises,
		BreakBetweenExercises: breakBetweenExercises,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID

	if err := s.ownership.AttachWorkout(ctx, ownerID, workoutID); err != nil {
		// Compensate: remove the workout so the owner's list stays the
		// source of truth for what exists.
		_ = s.workoutRepo.Delete(ctx, workoutID)
		return nil, fmt.Errorf("attaching workout to owner: %w", err)
	}

	return workout, nil
}

// ListWorkouts returns all workouts owned by the given user.
func (s *workoutService) ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.workoutRepo.GetByOwnerID(ctx, ownerID)
}

// UpdateWorkout replaces the mutable fields of an ownership-checked
// workout. The owner reference is immutable and not part of the update.
func (s *workoutService) UpdateWorkout(ctx context.Context, owned OwnedWorkout, name string, exercises []domain.Exercise, breakBetweenExercises int) (*domain.Workout, error) {
	if name == "" || len(exercises) == 0 {
		return nil, ErrWorkoutValidationFailed
	}

	workout := owned.Workout()
	workout.Name = name
	workout.Exercises = exercises
	workout.BreakBetweenExercises = breakBetweenExercises

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between the ownership check and the write.
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout detaches an ownership-checked workout from its owner's
// list and weekly schedule, then deletes the document. Detach runs first
// so a failure mid-sequence leaves an orphaned document rather than a
// dangling reference; if the final delete fails, the list entry and the
// cleared week slots are restored best-effort.
func (s *workoutService) DeleteWorkout(ctx context.Context, owned OwnedWorkout) (*domain.Workout, error) {
	workout := owned.Workout()

	clearedDays, err := s.ownership.DetachWorkout(ctx, workout.OwnerID, workout.ID)
	if err != nil {
		return nil, fmt.Errorf("detaching workout from owner: %w", err)
	}

	if err := s.workoutRepo.Delete(ctx, workout.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Concurrent second delete of the same id.
			return nil, ErrWorkoutNotFound
		}
		_ = s.ownership.RestoreWorkout(ctx, workout.OwnerID, workout.ID, clearedDays)
		return nil, err
	}

	return workout, nil
}
