package response

import (
	"log"
	"net/http"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// CurrentUser retrieves the authenticated user set by the auth middleware.
func CurrentUser(c *gin.Context) (*model.User, error) {
	value, exists := c.Get("current_user")
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	user, ok := value.(*model.User)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

// Error sends a standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
