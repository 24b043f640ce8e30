package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/catalog"
	"github.com/spec-kit/lead-intake/internal/service"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// ServicesHandler serves the catalog and submission statistics.
type ServicesHandler struct {
	stats *service.StatisticsService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(stats *service.StatisticsService) *ServicesHandler {
	return &ServicesHandler{stats: stats}
}

// List GET /api/services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.Success(fiber.Map{"services": catalog.List()}))
}

// Get GET /api/services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	detail, ok := catalog.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("Service")
	}
	return c.JSON(dto.Success(fiber.Map{"service": detail}))
}

// Statistics GET /api/services/statistics.
func (h *ServicesHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.stats.Compute(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(stats))
}
