package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake/internal/export"
	"github.com/spec-kit/lead-intake/internal/service"
	apperrors "github.com/spec-kit/lead-intake/pkg/util/errorutil"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}
	return nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// parseListQuery reads page, limit, status and service. Bad numbers fall
// back to the defaults.
func parseListQuery(c *fiber.Ctx) service.ListQuery {
	return service.ListQuery{
		Status:  c.Query("status"),
		Service: c.Query("service"),
		Page:    parseInt(c.Query("page"), 1),
		Limit:   parseInt(c.Query("limit"), 0),
	}
}

func sendSpreadsheet(c *fiber.Ctx, prefix string, content []byte) error {
	c.Attachment(export.Filename(prefix, time.Now()))
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(content)
}
