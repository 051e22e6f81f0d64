package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gurukrpa/gurukrpa-backend/internal/config"
	"github.com/gurukrpa/gurukrpa-backend/internal/dto"
)

// WhatsAppHandler prepares a wa.me deep link the frontend can open; no message is
// sent server-side.
type WhatsAppHandler struct {
	cfg *config.Config
}

func NewWhatsAppHandler(cfg *config.Config) *WhatsAppHandler {
	return &WhatsAppHandler{cfg: cfg}
}

func (h *WhatsAppHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.WhatsAppRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	return c.JSON(dto.WhatsAppResponse{
		Success:     true,
		Message:     "WhatsApp message prepared",
		WhatsAppURL: "https://wa.me/" + h.cfg.WhatsAppNumber + "?text=" + url.QueryEscape(req.Message),
	})
}
