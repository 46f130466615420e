package metrics

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Latency of HTTP requests by route",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path"})

func Init() {
	prometheus.MustRegister(RequestDuration)
}

// Middleware records per-route request latency.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			RequestDuration.
				WithLabelValues(c.Request().Method, c.Path()).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}
