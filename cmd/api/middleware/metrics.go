package middleware

import (
	"context"
	"strconv"
	"time"

	"ShortVideo.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/app"
)

// Metrics 记录请求数和耗时 path使用路由模板避免标签基数过大
func Metrics() app.HandlerFunc {
	m := metrics.Get()
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := string(c.Method())
		status := strconv.Itoa(c.Response.StatusCode())
		m.HTTPRequestTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
	}
}
