package api

import (
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all HTTP routes. Registration and login are public;
// everything else sits behind the auth middleware.
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	userService service.UserService,
	workoutService service.WorkoutService,
	ownership service.OwnershipService,
	log *logger.Logger,
) {
	authHandler := NewAuthHandler(authService, log)
	userHandler := NewUserHandler(userService, log)
	workoutHandler := NewWorkoutHandler(workoutService, ownership, log)

	authMiddleware := AuthMiddleware(authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	users := apiV1.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}

	usersProtected := apiV1.Group("/users")
	usersProtected.Use(authMiddleware)
	{
		usersProtected.GET("", userHandler.GetProfile)
		usersProtected.PUT("/update", userHandler.Update)
		usersProtected.DELETE("/delete", userHandler.Delete)
		usersProtected.PUT("/week", userHandler.AssignWeekday)
		usersProtected.POST("/avatar", userHandler.RequestAvatarUpload)
	}

	workouts := apiV1.Group("/workouts")
	workouts.Use(authMiddleware)
	{
		workouts.POST("", workoutHandler.Create)
		workouts.GET("", workoutHandler.List)
		workouts.GET("/:id", workoutHandler.Get)
		workouts.PUT("/:id", workoutHandler.Update)
		workouts.DELETE("/:id", workoutHandler.Delete)
	}
}
