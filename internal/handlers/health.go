package handlers

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

const Version = "1.0.0"

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Health answers 200 when every dependency is connected and 503 otherwise.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", fiber.StatusOK
	services := fiber.Map{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			log.Printf("health check %s failed: %v", name, err)
			services[name] = "unavailable"
			status, code = "degraded", fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "connected"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  Version,
		"services": services,
	})
}
