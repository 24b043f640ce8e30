package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/export"
	"github.com/spec-kit/lead-intake/internal/service"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

// ContactHandler exposes contact intake and triage.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler constructs handler.
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{service: contactService}
}

// Submit POST /api/contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req service.ContactInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.service.Submit(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessMessage(
		"Contact form submitted successfully",
		dto.NewContactCreated(result.Contact, result.EmailSent),
	))
}

// List GET /api/contact.
func (h *ContactHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.ContactListResponse{
		Contacts:      page.Items,
		TotalPages:    page.TotalPages,
		CurrentPage:   page.Page,
		TotalContacts: page.Total,
	}))
}

// Export GET /api/contact/export.
func (h *ContactHandler) Export(c *fiber.Ctx) error {
	contacts, err := h.service.Export(c.UserContext(), parseListQuery(c))
	if err != nil {
		return err
	}
	content, err := export.Contacts(contacts)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return sendSpreadsheet(c, "contacts", content)
}

// Get GET /api/contact/:id.
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(fiber.Map{"contact": contact}))
}

// Update PUT /api/contact/:id.
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var req service.ContactUpdateInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	contact, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("Contact updated successfully", fiber.Map{"contact": contact}))
}

// Delete DELETE /api/contact/:id.
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("Contact deleted successfully", nil))
}
