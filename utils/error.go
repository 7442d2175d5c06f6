package utils

import (
	"errors"
	"net/http"

	"pawcare/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// RejectionResponse is returned for client-correctable booking rejections.
type RejectionResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// RespondError writes err: rejections become 4xx with their reason code, anything else
// is a 500.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	var se *models.SlotError
	if errors.As(err, &se) {
		logger.Debug("request rejected", zap.String("code", se.Code), zap.String("path", c.FullPath()))
		c.JSON(http.StatusBadRequest, RejectionResponse{Success: false, Code: se.Code, Message: se.Message})
		return
	}
	logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal Server Error",
		Details: "An unexpected error occurred. Please try again later.",
	})
}
