package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs every request with its ID and, once auth has run,
// the branch the register belongs to. Register traffic is keyed by branch
// everywhere else (rate limits, slip numbers), so the log line carries it too.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		branch := "-"
		if branchIDVal, ok := c.Get("branch_id"); ok {
			if id, ok := branchIDVal.(uuid.UUID); ok {
				branch = id.String()[:8]
			}
		}

		log.Printf("[%s] %s | %d | %v | branch=%s | %s | %s",
			requestID[:8],
			c.Request.Method,
			c.Writer.Status(),
			time.Since(start),
			branch,
			c.ClientIP(),
			path,
		)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", requestID[:8], e.Err)
		}
	}
}
