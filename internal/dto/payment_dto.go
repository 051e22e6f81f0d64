package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Currency    string                 `json:"currency"`
	Receipt     string                 `json:"receipt"`
	ServiceType string                 `json:"service_type"`
	ServiceName string                 `json:"service_name"`
	Notes       map[string]interface{} `json:"notes"`
}

type CreateOrderResponse struct {
	BookingID uuid.UUID              `json:"booking_id"`
	Order     map[string]interface{} `json:"order"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	RazorpaySignature string    `json:"razorpay_signature"`
	BookingID         uuid.UUID `json:"booking_id"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type WhatsAppRequest struct {
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type WhatsAppResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
}
