package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger lo implementa cualquier kv.Backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler GET /health: estado del servicio y del backend de almacenamiento.
type HealthHandler struct {
	store   Pinger
	driver  string
	service string
}

// NewHealthHandler construye el handler.
func NewHealthHandler(store Pinger, driver, service string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver, service: service}
}

// Check responde 200 si el backend responde al ping, 503 si no.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, code := "ok", fiber.StatusOK
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			log := loggerFrom(c)
			log.Warn().Err(err).Msg("health: backend no disponible")
			status, code = "degraded", fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{"status": status, "service": h.service, "store": h.driver})
}
