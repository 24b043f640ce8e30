package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/observability"
)

// Pinger is a dependency the readiness check can ping.
type Pinger interface {
	Ping(ctx context.Context) error
	Configured() bool
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	environment string
	version     string
	postgres    Pinger
	redis       Pinger
	metrics     *observability.Metrics
	now         func() time.Time
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, environment, version string, postgres, redis Pinger, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		environment: environment,
		version:     version,
		postgres:    postgres,
		redis:       redis,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Live handles GET /api/health.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      dto.StatusSuccess,
		"message":     h.serviceName + " API is running",
		"timestamp":   h.now().UTC().Format(time.RFC3339Nano),
		"environment": h.environment,
		"version":     h.version,
	})
}

// Ready handles GET /api/health/ready. Unconfigured dependencies are
// reported as "disabled" and do not fail the check.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	check := func(name string, dep Pinger) {
		if dep == nil || !dep.Configured() {
			depStatus[name] = "disabled"
			return
		}
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			return
		}
		depStatus[name] = "ok"
	}
	check("postgres", h.postgres)
	check("redis", h.redis)

	if ready {
		return c.JSON(dto.SuccessMessage("ready", fiber.Map{"dependencies": depStatus}))
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Envelope{
		Status:  dto.StatusError,
		Message: "one or more dependencies unavailable",
		Data:    fiber.Map{"dependencies": depStatus},
	})
}

// Metrics handles GET /api/health/metrics for administrators.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(dto.Success(h.metrics.Snapshot()))
}
