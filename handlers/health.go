package handlers

import (
	"net/http"

	"coachly/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the monitor's latest snapshot of the backing stores.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"health": utils.CurrentHealth(),
	})
}
