package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs every request with method, path, status and latency.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("📨 %s %s from %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.ClientIP(), status, latency)
	}
}
