package handlers

import (
	"pawcare/middleware"
	"pawcare/models"
	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

// successResponse wraps every successful payload.
type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, successResponse{Success: true, Data: data})
}

func respondError(c *gin.Context, err error) {
	utils.RespondError(c, getLogger(c), err)
}

func invalidInput(c *gin.Context, msg string) {
	respondError(c, models.NewSlotError(models.CodeInvalidInput, msg))
}

// categoryParam parses the :category path segment, writing a 400 when it is unknown.
func categoryParam(c *gin.Context) (models.Category, bool) {
	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		invalidInput(c, err.Error())
		return "", false
	}
	return category, true
}

// caller returns the authenticated subject, or "" for admins, who act on any booking.
func caller(c *gin.Context) string {
	if c.GetString(middleware.CtxRole) == utils.RoleAdmin {
		return ""
	}
	return c.GetString(middleware.CtxCustomerID)
}

func actor(c *gin.Context) string {
	if id := c.GetString(middleware.CtxCustomerID); id != "" {
		return id
	}
	return "admin"
}

