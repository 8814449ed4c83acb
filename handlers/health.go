package handlers

import (
	"net/http"

	"sevahub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health with the last dependency check.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"message":      "Hi, I'm Sevahub",
		"dependencies": status,
	})
}
