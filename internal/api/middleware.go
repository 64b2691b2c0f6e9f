package api

import (
	"alcyxob/fitness-tracker/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context key under which the authenticated user id is stored.
const ContextUserIDKey = "userID"

// AuthMiddleware creates a Gin middleware for bearer-token authentication.
// A missing or malformed Authorization header is reported as 401
// "Unauthorized"; a header that carries a token which fails verification
// is reported as 401 "Token is not valid".
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// Expecting "Bearer <token>"; surplus whitespace is tolerated.
		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || token == "" || !strings.EqualFold(scheme, "Bearer") {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := authService.ResolveToken(token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Token is not valid")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// Helper to return a JSON error response and abort the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// getUserIDFromContext returns the user id set by AuthMiddleware.
func getUserIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	id, ok := idRaw.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return id, nil
}
