package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"employee_backend/internal/platform/metrics"
)

// Metrics records request counts and latencies labelled by route template.
// 未登録ルートは "unmatched" としてまとめ、ラベルの爆発を防ぎます。
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
