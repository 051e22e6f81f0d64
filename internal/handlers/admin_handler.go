package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/dto"
	"github.com/gurukrpa/gurukrpa-backend/internal/export"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

// AdminHandler backs the dashboard: the unified user table, derived statistics, the
// booking list and the per-user mutations. Authentication and the admin predicate are
// enforced by middleware on the route group.
type AdminHandler struct {
	aggregator *services.Aggregator
	admin      *services.AdminService
	payments   *services.PaymentService
}

func NewAdminHandler(aggregator *services.Aggregator, admin *services.AdminService, payments *services.PaymentService) *AdminHandler {
	return &AdminHandler{aggregator: aggregator, admin: admin, payments: payments}
}

// ListUsers handles GET /api/admin/users. An empty list is a valid result and is
// returned as such; only store failures produce an error status.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.aggregator.ListUnifiedUsers(c.UserContext())
	if err != nil {
		slog.Error("failed to aggregate users", "action", "admin_list_users", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch users",
		})
	}
	return c.JSON(dto.UsersResponse{Users: users})
}

// Stats handles GET /api/admin/stats - the derived service-selection counts.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	users, err := h.aggregator.ListUnifiedUsers(c.UserContext())
	if err != nil {
		slog.Error("failed to aggregate users", "action", "admin_stats", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute stats",
		})
	}

	totalCharts := 0
	for _, u := range users {
		totalCharts += len(u.Charts)
	}
	return c.JSON(dto.StatsResponse{
		TotalUsers:    len(users),
		TotalCharts:   totalCharts,
		ServiceCounts: services.ServiceCounts(users),
	})
}

// ListBookings handles GET /api/admin/bookings.
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.payments.ListBookings(c.UserContext())
	if err != nil {
		slog.Error("failed to list bookings", "action", "admin_bookings", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch bookings",
		})
	}
	return c.JSON(dto.BookingsResponse{Bookings: bookings})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or invalid user id",
		})
	}

	if err := h.admin.DeleteUser(c.UserContext(), id); err != nil {
		slog.Error("user deletion failed", "action", "admin_delete_user", "user_id", id.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Delete failed",
		})
	}
	return c.JSON(dto.DeleteUserResponse{OK: true})
}

// ExportJSON handles GET /api/admin/users/:id/export - the structured interchange
// document, served as a download.
func (h *AdminHandler) ExportJSON(c *fiber.Ctx) error {
	exp, err := h.exportUser(c)
	if exp == nil {
		return err
	}

	doc := export.JSONDocument(exp, time.Now())
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Export failed",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(exp.Profile, exp.Profile.ID, "json")+`"`)
	return c.Send(body)
}

// ExportPDF handles GET /api/admin/users/:id/export.pdf - the printable rendering of
// the identical payload.
func (h *AdminHandler) ExportPDF(c *fiber.Ctx) error {
	exp, err := h.exportUser(c)
	if exp == nil {
		return err
	}

	body, err := export.PDF(exp, time.Now())
	if err != nil {
		slog.Error("pdf render failed", "action", "admin_export_pdf", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Export PDF failed",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(exp.Profile, exp.Profile.ID, "pdf")+`"`)
	return c.Send(body)
}

// exportUser parses the id and loads the export payload; on failure it writes the
// response and returns a nil payload.
func (h *AdminHandler) exportUser(c *fiber.Ctx) (*services.UserExport, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Missing or invalid user id",
		})
	}

	exp, err := h.admin.ExportUser(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		slog.Error("export failed", "action", "admin_export", "user_id", id.String(), "error", err.Error())
		return nil, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Export failed",
		})
	}
	return exp, nil
}
