package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/api/dto"
	"github.com/spec-kit/lead-intake/internal/service"
)

// MeetingHandler exposes meeting requests.
type MeetingHandler struct {
	service *service.MeetingService
}

// NewMeetingHandler constructs handler.
func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: meetingService}
}

// Schedule POST /api/meetings/schedule.
func (h *MeetingHandler) Schedule(c *fiber.Ctx) error {
	var req service.MeetingInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	meeting, err := h.service.Schedule(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessMessage(
		"Meeting request submitted successfully.",
		dto.MeetingCreatedResponse{
			ID:     meeting.ID,
			Name:   meeting.Name,
			Email:  meeting.Email,
			Status: meeting.Status,
		},
	))
}

// List GET /api/meetings.
func (h *MeetingHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.MeetingListResponse{
		Meetings:      page.Items,
		TotalPages:    page.TotalPages,
		CurrentPage:   page.Page,
		TotalMeetings: page.Total,
	}))
}

// Get GET /api/meetings/:id.
func (h *MeetingHandler) Get(c *fiber.Ctx) error {
	meeting, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(fiber.Map{"meeting": meeting}))
}

// UpdateStatus PATCH /api/meetings/:id/status.
func (h *MeetingHandler) UpdateStatus(c *fiber.Ctx) error {
	var req service.MeetingStatusInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	meeting, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage("Meeting status updated successfully.", fiber.Map{"meeting": meeting}))
}
