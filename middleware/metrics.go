package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// InitMetrics builds the Prometheus request instrumentation. Each call gets
// its own registry, so repeated setups never collide on collector names.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.NewWithRegistry(prometheus.NewRegistry(), serviceName, "http", "", nil)
}

// MetricsMiddleware records request counts, latencies and in-flight gauges
// for every route.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
