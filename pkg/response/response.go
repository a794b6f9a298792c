package response

import (
	"log"
	"net/http"
	"strconv"

	"cabinet-service/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uint, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return 0, apperror.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 64)
	if err != nil {
		return 0, apperror.ErrUnauthorized
	}

	return uint(userID), nil
}

// GetUserRole retrieves the authenticated user's role name from the context.
func GetUserRole(c *gin.Context) string {
	role, _ := c.Get("user_role")
	if s, ok := role.(string); ok {
		return s
	}
	return ""
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors, answer with a generic message
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": "une erreur est survenue, veuillez réessayer"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
