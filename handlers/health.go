package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentmatch/backend/models"
)

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running and healthy
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
