package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/service"
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- Service Mocks ----

type mockAuthService struct {
	registerUser *domain.User
	registerErr  error

	loginToken string
	loginUser  *domain.User
	loginErr   error

	resolveID  primitive.ObjectID
	resolveErr error

	lastResolvedToken string
}

func (m *mockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.registerUser, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.loginErr != nil {
		return "", nil, m.loginErr
	}
	return m.loginToken, m.loginUser, nil
}

func (m *mockAuthService) ResolveToken(tokenString string) (primitive.ObjectID, error) {
	m.lastResolvedToken = tokenString
	if m.resolveErr != nil {
		return primitive.NilObjectID, m.resolveErr
	}
	return m.resolveID, nil
}

type mockUserService struct {
	profileUser *domain.User
	profileURL  string
	profileErr  error

	updateUser *domain.User
	updateErr  error

	deleteUser *domain.User
	deleteErr  error

	assignUser *domain.User
	assignErr  error

	avatar    *service.AvatarUpload
	avatarErr error
}

func (m *mockUserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, string, error) {
	if m.profileErr != nil {
		return nil, "", m.profileErr
	}
	return m.profileUser, m.profileURL, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update service.ProfileUpdate) (*domain.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateUser, nil
}

func (m *mockUserService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return m.deleteUser, nil
}

func (m *mockUserService) AssignWeekday(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error) {
	if m.assignErr != nil {
		return nil, m.assignErr
	}
	return m.assignUser, nil
}

func (m *mockUserService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*service.AvatarUpload, error) {
	if m.avatarErr != nil {
		return nil, m.avatarErr
	}
	return m.avatar, nil
}

type mockWorkoutService struct {
	createWorkout *domain.Workout
	createErr     error

	listWorkouts []domain.Workout
	listErr      error

	updateErr error
	deleteErr error
}

func (m *mockWorkoutService) CreateWorkout(ctx context.Context, ownerID primitive.ObjectID, name string, exercises []domain.Exercise, breakBetweenExercises int) (*domain.Workout, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createWorkout, nil
}

func (m *mockWorkoutService) ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listWorkouts, nil
}

func (m *mockWorkoutService) UpdateWorkout(ctx context.Context, owned service.OwnedWorkout, name string, exercises []domain.Exercise, breakBetweenExercises int) (*domain.Workout, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	workout := owned.Workout()
	workout.Name = name
	workout.Exercises = exercises
	workout.BreakBetweenExercises = breakBetweenExercises
	return workout, nil
}

func (m *mockWorkoutService) DeleteWorkout(ctx context.Context, owned service.OwnedWorkout) (*domain.Workout, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	return owned.Workout(), nil
}

// ---- Repository stubs backing a real OwnershipService ----
//
// OwnedWorkout can only be minted by the service package, so the handler
// tests run the real ownership gate over an in-memory workout repository.

type stubWorkoutRepo struct {
	workouts map[primitive.ObjectID]*domain.Workout
}

func newStubWorkoutRepo() *stubWorkoutRepo {
	return &stubWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (s *stubWorkoutRepo) add(w *domain.Workout) {
	s.workouts[w.ID] = w
}

func (s *stubWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	workout.ID = primitive.NewObjectID()
	s.workouts[workout.ID] = workout
	return workout.ID, nil
}

func (s *stubWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (s *stubWorkoutRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	return nil, nil
}

func (s *stubWorkoutRepo) Update(ctx context.Context, workout *domain.Workout) error {
	return nil
}

func (s *stubWorkoutRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(s.workouts, id)
	return nil
}

func (s *stubWorkoutRepo) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return 0, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, repository.ErrNotFound
}
func (stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}
func (stubUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return nil, repository.ErrNotFound
}
func (stubUserRepo) Update(ctx context.Context, id primitive.ObjectID, update repository.UserUpdate) (*domain.User, error) {
	return nil, repository.ErrNotFound
}
func (stubUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return repository.ErrNotFound
}
func (stubUserRepo) AddWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	return nil
}
func (stubUserRepo) RemoveWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.Weekday, error) {
	return nil, nil
}
func (stubUserRepo) SetWeekSlot(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error) {
	return nil, repository.ErrNotFound
}
func (stubUserRepo) SetAvatarKey(ctx context.Context, userID primitive.ObjectID, key string) error {
	return nil
}

// ---- Router helper ----

type testDeps struct {
	auth      *mockAuthService
	users     *mockUserService
	workouts  *mockWorkoutService
	workoutDB *stubWorkoutRepo
}

func newTestRouter(t *testing.T, deps testDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	if deps.auth == nil {
		deps.auth = &mockAuthService{}
	}
	if deps.users == nil {
		deps.users = &mockUserService{}
	}
	if deps.workouts == nil {
		deps.workouts = &mockWorkoutService{}
	}
	if deps.workoutDB == nil {
		deps.workoutDB = newStubWorkoutRepo()
	}

	ownership := service.NewOwnershipService(deps.workoutDB, stubUserRepo{})
	SetupRoutes(router, deps.auth, deps.users, deps.workouts, ownership, logger.Get(logger.ErrorLevel))
	return router
}

func testUser(id primitive.ObjectID) *domain.User {
	return &domain.User{
		ID:         id,
		Name:       "John Doe",
		Email:      "john@example.com",
		WorkoutIDs: []primitive.ObjectID{},
		CreatedAt:  time.Now().UTC(),
	}
}

func testWorkout(id, ownerID primitive.ObjectID) *domain.Workout {
	return &domain.Workout{
		ID:      id,
		OwnerID: ownerID,
		Name:    "Leg day",
		Exercises: []domain.Exercise{
			{Name: "Squats", Sets: 5, Reps: 5, BreakBetweenSets: 90},
		},
		BreakBetweenExercises: 120,
		CreatedAt:             time.Now().UTC(),
	}
}
