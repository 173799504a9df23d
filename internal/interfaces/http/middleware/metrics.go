package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPObserver records served requests
type HTTPObserver interface {
	ObserveHTTPRequest(method, route string, status int, elapsed time.Duration)
}

// HTTPMetrics returns a Gin middleware that counts requests and observes
// their latency, labelled by method, route pattern and status.
// A nil observer yields a no-op middleware.
func HTTPMetrics(observer HTTPObserver, skipPaths ...string) gin.HandlerFunc {
	if observer == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// FullPath is the route pattern, which keeps label cardinality bounded
		observer.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
