package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=20"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=20"`
}

// WeekResponse mirrors the weekly schedule with hex workout ids.
type WeekResponse struct {
	Monday    *string `json:"Monday"`
	Tuesday   *string `json:"Tuesday"`
	Wednesday *string `json:"Wednesday"`
	Thursday  *string `json:"Thursday"`
	Friday    *string `json:"Friday"`
	Saturday  *string `json:"Saturday"`
	Sunday    *string `json:"Sunday"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Workouts  []string     `json:"workouts"`
	Week      WeekResponse `json:"week"`
	AvatarURL string       `json:"avatarUrl,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} UserResponse "User created"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Email already registered"
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, "User already exists")
			return
		}
		h.log.Errorw("register failed", "err", err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		return
	}

	c.JSON(http.StatusCreated, MapUserToResponse(user, ""))
}

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user and returns a signed identity token,
// @Description both in the response body and in the Authorization header.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Wrong password"
// @Failure 404 {object} gin.H "Unknown email"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid data")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidPassword):
			abortWithError(c, http.StatusBadRequest, "Invalid password")
		default:
			h.log.Errorw("login failed", "err", err)
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user, ""),
	})
}

// MapUserToResponse converts a domain User to a UserResponse DTO,
// converting ObjectIDs to hex strings.
func MapUserToResponse(user *domain.User, avatarURL string) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	workouts := make([]string, len(user.WorkoutIDs))
	for i, id := range user.WorkoutIDs {
		workouts[i] = id.Hex()
	}

	week := WeekResponse{}
	for _, day := range domain.Weekdays {
		slot := *user.Week.Slot(day)
		if slot == nil {
			continue
		}
		hex := slot.Hex()
		switch day {
		case domain.Monday:
			week.Monday = &hex
		case domain.Tuesday:
			week.Tuesday = &hex
		case domain.Wednesday:
			week.Wednesday = &hex
		case domain.Thursday:
			week.Thursday = &hex
		case domain.Friday:
			week.Friday = &hex
		case domain.Saturday:
			week.Saturday = &hex
		case domain.Sunday:
			week.Sunday = &hex
		}
	}

	return UserResponse{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Workouts:  workouts,
		Week:      week,
		AvatarURL: avatarURL,
		CreatedAt: user.CreatedAt,
	}
}
