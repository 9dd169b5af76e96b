package obs

import (
	"context"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
)

// HealthHandlers serves liveness and readiness probes. ReadyCheck pings the
// storage backend; a nil check means the process is ready once it serves.
type HealthHandlers struct {
	ReadyCheck func(ctx context.Context) error
}

func (h HealthHandlers) Livez(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h HealthHandlers) Readyz(c *gin.Context) {
	if h.ReadyCheck == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.ReadyCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
