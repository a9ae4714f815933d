package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/diascribe/version"
)

// Version returns a handler that reports the binary's build identity.
func Version() gin.HandlerFunc {
	return func(c *gin.Context) {
		b := version.Current()
		c.JSON(http.StatusOK, gin.H{
			"version":  b.Version,
			"commit":   b.Commit,
			"date":     b.Date,
			"go":       b.Go,
			"released": b.Released(),
		})
	}
}
