package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout and ownership service dependencies.
// Every mutating route authorizes through the ownership service first and
// hands the resulting capability to the workout service.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	ownership      service.OwnershipService
	log            *logger.Logger
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, ownership service.OwnershipService, log *logger.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		ownership:      ownership,
		log:            log,
	}
}

// --- Request/Response Structs ---

type ExerciseRequest struct {
	Name string `json:"name" binding:"required,min=1,max=20"`
	Sets int    `json:"sets" binding:"required,min=1,max=100"`
	Reps int    `json:"reps" binding:"required,min=1,max=100"`
	// Seconds; zero means no rest between sets.
	BreakBetweenSets int `json:"breakBetweenSets" binding:"min=0,max=600"`
}

type WorkoutRequest struct {
	Name      string            `json:"name" binding:"required,min=1,max=20"`
	Exercises []ExerciseRequest `json:"exercises" binding:"required,min=1,max=100,dive"`
	// Seconds; zero means no rest between exercises.
	BreakBetweenExercises int `json:"breakBetweenExercises" binding:"min=0,max=600"`
}

type ExerciseResponse struct {
	Name             string `json:"name"`
	Sets             int    `json:"sets"`
	Reps             int    `json:"reps"`
	BreakBetweenSets int    `json:"breakBetweenSets"`
}

type WorkoutResponse struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	User                  string             `json:"user"`
	Exercises             []ExerciseResponse `json:"exercises"`
	BreakBetweenExercises int                `json:"breakBetweenExercises"`
	CreatedAt             time.Time          `json:"createdAt"`
}

// --- Handler Methods ---

// Create godoc
// @Summary Create a workout
// @Description The owner is taken from the authenticated identity, never
// @Description from the request body.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, req.Name, mapExercises(req.Exercises), req.BreakBetweenExercises)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Invalid data")
			return
		}
		h.log.Errorw("create workout failed", "userId", userID.Hex(), "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// List godoc
// @Summary List the authenticated user's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorw("list workouts failed", "userId", userID.Hex(), "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Get godoc
// @Summary Get a single workout by id
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkoutResponse
// @Failure 403 {object} gin.H "Workout owned by another user"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) Get(c *gin.Context) {
	owned, ok := h.authorize(c, "You are not allowed to view this workout")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(owned.Workout()))
}

// Update godoc
// @Summary Update a workout
// @Description Replaces name, exercises, and rest duration. Only the owner
// @Description may update; the owner reference itself is immutable.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Workout owned by another user"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) Update(c *gin.Context) {
	owned, ok := h.authorize(c, "You are not allowed to update this workout")
	if !ok {
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), owned, req.Name, mapExercises(req.Exercises), req.BreakBetweenExercises)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrWorkoutValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Invalid data")
		default:
			h.log.Errorw("update workout failed", "workoutId", owned.Workout().ID.Hex(), "err", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// Delete godoc
// @Summary Delete a workout
// @Description Removes the workout and prunes it from the owner's workout
// @Description list and weekly schedule.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WorkoutResponse "Deleted workout"
// @Failure 403 {object} gin.H "Workout owned by another user"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) Delete(c *gin.Context) {
	owned, ok := h.authorize(c, "You are not allowed to delete this workout")
	if !ok {
		return
	}

	workout, err := h.workoutService.DeleteWorkout(c.Request.Context(), owned)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found")
			return
		}
		h.log.Errorw("delete workout failed", "workoutId", owned.Workout().ID.Hex(), "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// authorize runs the existence-then-ownership gate for the :id route
// parameter. A malformed id cannot name an existing workout and is
// reported as not-found; a foreign workout is reported with the
// route-specific forbidden message, never as not-found.
func (h *WorkoutHandler) authorize(c *gin.Context, forbiddenMessage string) (service.OwnedWorkout, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return service.OwnedWorkout{}, false
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Workout not found")
		return service.OwnedWorkout{}, false
	}

	owned, err := h.ownership.AuthorizeWorkout(c.Request.Context(), workoutID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrWorkoutAccessDenied):
			abortWithError(c, http.StatusForbidden, forbiddenMessage)
		default:
			h.log.Errorw("workout authorization failed", "workoutId", workoutID.Hex(), "err", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return service.OwnedWorkout{}, false
	}
	return owned, true
}

func mapExercises(reqs []ExerciseRequest) []domain.Exercise {
	exercises := make([]domain.Exercise, len(reqs))
	for i, e := range reqs {
		exercises[i] = domain.Exercise{
			Name:             e.Name,
			Sets:             e.Sets,
			Reps:             e.Reps,
			BreakBetweenSets: e.BreakBetweenSets,
		}
	}
	return exercises
}

// MapWorkoutToResponse converts a domain Workout to a WorkoutResponse DTO.
func MapWorkoutToResponse(workout *domain.Workout) WorkoutResponse {
	if workout == nil {
		return WorkoutResponse{}
	}

	exercises := make([]ExerciseResponse, len(workout.Exercises))
	for i, e := range workout.Exercises {
		exercises[i] = ExerciseResponse{
			Name:             e.Name,
			Sets:             e.Sets,
			Reps:             e.Reps,
			BreakBetweenSets: e.BreakBetweenSets,
		}
	}

	return WorkoutResponse{
		ID:                    workout.ID.Hex(),
		Name:                  workout.Name,
		User:                  workout.OwnerID.Hex(),
		Exercises:             exercises,
		BreakBetweenExercises: workout.BreakBetweenExercises,
		CreatedAt:             workout.CreatedAt,
	}
}
