package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// RequestLogger logs every request once it has been served.
func RequestLogger(logger log.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(log.Fields{
			"method":     c.Request.Method,
			"url":        c.Request.URL.String(),
			"remoteAddr": c.ClientIP(),
			"userAgent":  c.Request.UserAgent(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
		}).Info("served request")
	}
}
