package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promOnce       sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialnet_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})
)

// InitMetrics returns the process-wide Prometheus middleware, creating it on first use.
// fiberprometheus registers its collectors globally, so it must only be built once.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMiddleware = fiberprometheus.New(serviceName)
	})
	return promMiddleware
}

// MetricsMiddleware records HTTP request metrics.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
