package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidSignature = errors.New("invalid payment signature")

// OrderClient is the slice of the Razorpay SDK the payment service needs.
// *razorpay.Client.Order satisfies it directly.
type OrderClient interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// PaymentService creates gateway orders with a matching pending booking row and
// verifies the gateway's payment callback signature.
type PaymentService struct {
	orders    OrderClient
	bookings  BookingStore
	keySecret string
}

func NewPaymentService(orders OrderClient, bookings BookingStore, keySecret string) *PaymentService {
	return &PaymentService{orders: orders, bookings: bookings, keySecret: keySecret}
}

type CreateOrderInput struct {
	UserID      uuid.UUID
	ServiceType string
	ServiceName string
	Amount      decimal.Decimal
	Currency    string
	Receipt     string
	Notes       map[string]interface{}
}

// CreateOrder places a Razorpay order (amount converted to paise) and records a
// pending booking tied to it.
func (s *PaymentService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Booking, map[string]interface{}, error) {
	currency := in.Currency
	if currency == "" {
		currency = "INR"
	}

	order, err := s.orders.Create(map[string]interface{}{
		"amount":   in.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency": currency,
		"receipt":  in.Receipt,
		"notes":    in.Notes,
	}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create order: %v", ErrUpstream, err)
	}
	orderID, _ := order["id"].(string)

	booking := models.Booking{
		UserID:          in.UserID,
		ServiceType:     in.ServiceType,
		ServiceName:     in.ServiceName,
		Amount:          in.Amount,
		PaymentStatus:   models.PaymentStatusPending,
		RazorpayOrderID: orderID,
	}
	if err := s.bookings.CreateBooking(ctx, &booking); err != nil {
		return nil, nil, fmt.Errorf("%w: persist booking: %v", ErrUpstream, err)
	}
	return &booking, order, nil
}

type VerifyPaymentInput struct {
	BookingID uuid.UUID
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyPayment checks the gateway signature and, when valid, marks the booking
// completed.
func (s *PaymentService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) error {
	if !VerifySignature(in.OrderID, in.PaymentID, in.Signature, s.keySecret) {
		return ErrInvalidSignature
	}

	if err := s.bookings.MarkBookingPaid(ctx, in.BookingID, in.OrderID, in.PaymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: update booking: %v", ErrUpstream, err)
	}
	return nil
}

// ListBookings returns all bookings for the admin dashboard.
func (s *PaymentService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %v", ErrUpstream, err)
	}
	return bookings, nil
}

// VerifySignature is the pure HMAC-SHA256 check over "order_id|payment_id" that the
// gateway documents for payment callbacks.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
