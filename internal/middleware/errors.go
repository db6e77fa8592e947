package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Errors renders errors raised by handlers through c.Error. The error
// detail is logged, never returned to the client.
func Errors(logger log.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		for _, err := range c.Errors {
			logger.WithError(err.Err).WithField("path", c.Request.URL.Path).Error("request failed")
		}
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}
