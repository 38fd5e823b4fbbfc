package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lot-pos/lot-api/pkg/metrics"
)

// MetricsMiddleware registra conteo y latencia de cada petición HTTP.
// Usa la ruta registrada (no el path crudo) para acotar la cardinalidad.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Method(), route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
