package handlers

import (
	"net/http"

	"pawcare/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the latest dependency snapshot. It answers 200 even when a dependency is
// down so the process is not restarted for a database outage.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"message":      "Hi, I'm PawCare",
		"dependencies": utils.GetHealthStatus(),
	})
}
