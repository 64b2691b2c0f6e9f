package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory repository fakes ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User

	addRefErr    error
	removeRefErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.WorkoutIDs == nil {
		user.WorkoutIDs = []primitive.ObjectID{}
	}
	stored := *user
	f.users[user.ID] = &stored
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.UserUpdate) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Email != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Email == *update.Email {
				return nil, repository.ErrDuplicateKey
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) AddWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if f.addRefErr != nil {
		return f.addRefErr
	}
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if !u.OwnsWorkoutRef(workoutID) {
		u.WorkoutIDs = append(u.WorkoutIDs, workoutID)
	}
	return nil
}

func (f *fakeUserRepo) RemoveWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.Weekday, error) {
	if f.removeRefErr != nil {
		return nil, f.removeRefErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := u.WorkoutIDs[:0]
	for _, id := range u.WorkoutIDs {
		if id != workoutID {
			kept = append(kept, id)
		}
	}
	u.WorkoutIDs = kept
	cleared := u.Week.DaysReferencing(workoutID)
	for _, day := range cleared {
		*u.Week.Slot(day) = nil
	}
	return cleared, nil
}

func (f *fakeUserRepo) SetWeekSlot(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	*u.Week.Slot(day) = workoutID
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) SetAvatarKey(ctx context.Context, userID primitive.ObjectID, key string) error {
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarKey = key
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout

	deleteErr error
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	stored := *workout
	f.workouts[workout.ID] = &stored
	return workout.ID, nil
}

func (f *fakeWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := f.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWorkoutRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	result := []domain.Workout{}
	for _, w := range f.workouts {
		if w.OwnerID == ownerID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (f *fakeWorkoutRepo) Update(ctx context.Context, workout *domain.Workout) error {
	w, ok := f.workouts[workout.ID]
	if !ok {
		return repository.ErrNotFound
	}
	w.Name = workout.Name
	w.Exercises = workout.Exercises
	w.BreakBetweenExercises = workout.BreakBetweenExercises
	w.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeWorkoutRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.workouts, id)
	return nil
}

func (f *fakeWorkoutRepo) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	var deleted int64
	for id, w := range f.workouts {
		if w.OwnerID == ownerID {
			delete(f.workouts, id)
			deleted++
		}
	}
	return deleted, nil
}

// --- Object storage fake ---

type fakeFileStorage struct {
	uploadURLs map[string]string
	deleted    []string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{uploadURLs: make(map[string]string)}
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	url := "https://storage.example.com/upload/" + objectKey
	f.uploadURLs[objectKey] = url
	return url, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.example.com/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

// seedUser inserts a user directly into the fake repo.
func (f *fakeUserRepo) seed(name, email string) *domain.User {
	user := &domain.User{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Email:      email,
		WorkoutIDs: []primitive.ObjectID{},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	f.users[user.ID] = user
	return user
}

// seedWorkout inserts a workout directly into the fake repo.
func (f *fakeWorkoutRepo) seed(ownerID primitive.ObjectID, name string) *domain.Workout {
	workout := &domain.Workout{
		ID:      primitive.NewObjectID(),
		OwnerID: ownerID,
		Name:    name,
		Exercises: []domain.Exercise{
			{Name: "Push ups", Sets: 3, Reps: 10, BreakBetweenSets: 60},
		},
		BreakBetweenExercises: 120,
		CreatedAt:             time.Now().UTC(),
		UpdatedAt:             time.Now().UTC(),
	}
	f.workouts[workout.ID] = workout
	return workout
}
