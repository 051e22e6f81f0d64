package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Booking is one paid consultation order, tied to a Razorpay order.
type Booking struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceType       string          `gorm:"size:100" json:"service_type"`
	ServiceName       string          `gorm:"size:255" json:"service_name"`
	Amount            decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount"`
	PaymentStatus     string          `gorm:"size:20;default:'pending';index" json:"payment_status"`
	RazorpayOrderID   string          `gorm:"size:100;index" json:"razorpay_order_id"`
	RazorpayPaymentID string          `gorm:"size:100" json:"razorpay_payment_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
