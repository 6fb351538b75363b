package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger records every request as an ENDPOINT_CALL security event.
// Request bodies and query strings are not recorded since they can carry
// symptoms and other health details.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
		}

		userID := ""
		if id, ok := GetUserID(c); ok {
			userID = fmt.Sprintf("%d", id)
			details["user_id"] = id
		}

		util.LogSecurityEvent(util.SecurityEvent{
			EventType: util.EventEndpointCall,
			UserID:    userID,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
