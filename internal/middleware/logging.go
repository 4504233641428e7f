package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// pollPaths are hit by dashboards on a timer and only logged when verbose.
var pollPaths = map[string]bool{
	"/healthz":             true,
	"/api/health":          true,
	"/api/metrics/history": true,
}

// RequestLoggerWithOptions logs one access line per request. Successful polls
// of pollPaths are dropped unless verbose is set.
func RequestLoggerWithOptions(verbose bool) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC1123),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		Skip: func(c *gin.Context) bool {
			return !verbose && pollPaths[c.Request.URL.Path] && c.Writer.Status() < 400
		},
	})
}
