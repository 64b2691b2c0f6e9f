package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
	log         *logger.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// --- Request Structs ---

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=20"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6,max=20"`
}

type AssignWeekdayRequest struct {
	Day       string  `json:"day" binding:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	WorkoutID *string `json:"workoutId"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} gin.H "Missing or invalid token"
// @Failure 404 {object} gin.H "User not found"
// @Router /users [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, avatarURL, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Errorw("get profile failed", "userId", userID.Hex(), "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user, avatarURL))
}

// Update godoc
// @Summary Update the authenticated user's profile
// @Description Partial update; only provided fields change. A provided
// @Description password is re-hashed before storage.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "No fields or malformed fields"
// @Failure 409 {object} gin.H "Email already registered"
// @Router /users/update [put]
func (h *UserHandler) Update(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyProfileUpdate):
			abortWithError(c, http.StatusBadRequest, "Invalid data")
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, "User already exists")
		default:
			h.log.Errorw("update profile failed", "userId", userID.Hex(), "err", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user, ""))
}

// Delete godoc
// @Summary Delete the authenticated user's account
// @Description Cascade-deletes the user's workouts and avatar.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse "Deleted user"
// @Failure 404 {object} gin.H "User not found"
// @Router /users/delete [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.userService.DeleteAccount(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Errorw("delete account failed", "userId", userID.Hex(), "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user, ""))
}

// AssignWeekday godoc
// @Summary Assign or clear a weekly schedule slot
// @Description Sets the workout for one weekday. Send workoutId null to
// @Description clear the slot. The workout must belong to the caller.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Malformed day or workout id"
// @Failure 403 {object} gin.H "Workout owned by another user"
// @Failure 404 {object} gin.H "Workout not found"
// @Router /users/week [put]
func (h *UserHandler) AssignWeekday(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AssignWeekdayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	var workoutID *primitive.ObjectID
	if req.WorkoutID != nil {
		id, err := primitive.ObjectIDFromHex(*req.WorkoutID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid data")
			return
		}
		workoutID = &id
	}

	user, err := h.userService.AssignWeekday(c.Request.Context(), userID, domain.Weekday(req.Day), workoutID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, "Workout not found")
		case errors.Is(err, service.ErrWorkoutAccessDenied):
			abortWithError(c, http.StatusForbidden, "You are not allowed to schedule this workout")
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, "User not found")
		default:
			h.log.Errorw("assign weekday failed", "userId", userID.Hex(), "day", req.Day, "err", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user, ""))
}

// RequestAvatarUpload godoc
// @Summary Request a presigned avatar upload URL
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AvatarUploadResponse
// @Failure 400 {object} gin.H "Missing content type"
// @Router /users/avatar [post]
func (h *UserHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	upload, err := h.userService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Errorw("avatar upload request failed", "userId", userID.Hex(), "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	c.JSON(http.StatusOK, AvatarUploadResponse{
		UploadURL: upload.UploadURL,
		Key:       upload.ObjectKey,
	})
}
