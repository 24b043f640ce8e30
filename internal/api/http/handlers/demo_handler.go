package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/export"
	"github.com/spec-kit/lead-intake/internal/service"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// DemoHandler exposes demo booking and its admin surface.
type DemoHandler struct {
	service *service.DemoService
}

// NewDemoHandler constructs handler.
func NewDemoHandler(demoService *service.DemoService) *DemoHandler {
	return &DemoHandler{service: demoService}
}

// Book POST /api/demo.
func (h *DemoHandler) Book(c *fiber.Ctx) error {
	var req service.DemoInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.service.Book(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessMessage(
		"Demo booked successfully",
		dto.NewDemoCreated(result.Demo, result.Confirmation, result.AdminNotification),
	))
}

// List GET /api/demo.
func (h *DemoHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.DemoListResponse{
		Demos:       page.Items,
		TotalPages:  page.TotalPages,
		CurrentPage: page.Page,
		TotalDemos:  page.Total,
	}))
}

// Export GET /api/demo/export.
func (h *DemoHandler) Export(c *fiber.Ctx) error {
	demos, err := h.service.Export(c.UserContext(), parseListQuery(c))
	if err != nil {
		return err
	}
	content, err := export.Demos(demos)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return sendSpreadsheet(c, "demos", content)
}

// Get GET /api/demo/:id.
func (h *DemoHandler) Get(c *fiber.Ctx) error {
	demo, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(fiber.Map{"demo": demo}))
}

// Update PUT /api/demo/:id.
func (h *DemoHandler) Update(c *fiber.Ctx) error {
	var req service.DemoUpdateInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	demo, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("Demo booking updated successfully", fiber.Map{"demo": demo}))
}

// Delete DELETE /api/demo/:id.
func (h *DemoHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("Demo booking deleted successfully", nil))
}
