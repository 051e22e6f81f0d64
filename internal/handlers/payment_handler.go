package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gurukrpa/gurukrpa-backend/internal/dto"
	"github.com/gurukrpa/gurukrpa-backend/internal/middleware"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder handles POST /api/payment/create-order. The caller must be
// authenticated; the booking is tied to their account.
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	acct := middleware.AccountFromCtx(c)
	if acct == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if !req.Amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Amount must be positive",
		})
	}

	booking, order, err := h.payments.CreateOrder(c.UserContext(), services.CreateOrderInput{
		UserID:      acct.ID,
		ServiceType: req.ServiceType,
		ServiceName: req.ServiceName,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Receipt:     req.Receipt,
		Notes:       req.Notes,
	})
	if err != nil {
		slog.Error("order creation failed", "action", "create_order", "user_id", acct.ID.String(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create order",
		})
	}

	return c.JSON(dto.CreateOrderResponse{BookingID: booking.ID, Order: order})
}

// VerifyPayment handles POST /api/payment/verify-payment - the gateway callback
// signature check.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	err := h.payments.VerifyPayment(c.UserContext(), services.VerifyPaymentInput{
		BookingID: req.BookingID,
		OrderID:   req.RazorpayOrderID,
		PaymentID: req.RazorpayPaymentID,
		Signature: req.RazorpaySignature,
	})
	switch {
	case errors.Is(err, services.ErrInvalidSignature):
		return c.Status(fiber.StatusBadRequest).JSON(dto.VerifyPaymentResponse{
			Success: false, Message: "Invalid signature",
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Booking not found",
		})
	case err != nil:
		slog.Error("payment verification failed", "action", "verify_payment", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Payment verification failed",
		})
	}

	return c.JSON(dto.VerifyPaymentResponse{
		Success: true, Message: "Payment verified successfully",
	})
}
