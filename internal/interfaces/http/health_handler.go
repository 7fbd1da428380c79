package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// serviceVersion se reporta en /health.
const serviceVersion = "1.0.0"

// HealthHandler expone el estado del servicio y de la base de datos.
type HealthHandler struct {
	pool    *pgxpool.Pool
	service string
	started time.Time
}

// NewHealthHandler construye el handler.
func NewHealthHandler(pool *pgxpool.Pool, service string) *HealthHandler {
	return &HealthHandler{pool: pool, service: service, started: time.Now()}
}

// Health responde 200 si la base de datos contesta al ping, 503 si no.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if err := h.pool.Ping(c.Context()); err != nil {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":         status,
		"service":        h.service,
		"version":        serviceVersion,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
