package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/msaadaplus/msaada_backend/internal/core/domain"
)

// Keys used to store the authenticated principal in the request context.
const (
	userIDKey   = contextKey("userID")
	userTypeKey = contextKey("userType")
)

// GetUserIDFromContext retrieves the authenticated user ID.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserTypeFromContext retrieves the authenticated user's role.
func GetUserTypeFromContext(c *gin.Context) (domain.UserType, bool) {
	userType, ok := c.Request.Context().Value(userTypeKey).(domain.UserType)
	return userType, ok
}
