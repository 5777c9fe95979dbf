package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feedback-collector/backend/internal/types"
)

// HealthCheck reports liveness only. It deliberately checks no dependencies
// so it answers even when the store is down.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Message:   "Feedback Collector API is running!",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
