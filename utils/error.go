package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIError is the JSON shape of every error response.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorHandler recovers from handler panics and answers with a generic 500
// so internals never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("handler panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r))
				c.AbortWithStatusJSON(http.StatusInternalServerError, APIError{
					Error:   "Internal server error",
					Message: "Something went wrong, please try again",
				})
			}
		}()
		c.Next()
	}
}

// JSONError writes a standard error response and logs it at warn level.
func JSONError(c *gin.Context, status int, errMsg, detail string) {
	GetLogger().Warn(errMsg,
		zap.String("path", c.Request.URL.Path),
		zap.String("detail", detail))
	c.JSON(status, APIError{Error: errMsg, Message: detail})
}
