package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/diascribe/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info returns a handler that reports service identity, build, and uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		b := version.Current()
		c.JSON(http.StatusOK, gin.H{
			"service":   serviceName,
			"version":   b.Version,
			"commit":    b.Commit,
			"go":        b.Go,
			"uptime":    time.Since(startTime).String(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
