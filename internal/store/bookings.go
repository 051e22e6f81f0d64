package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"gorm.io/gorm"
)

// BookingStore persists consultation bookings and their payment state.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

// MarkBookingPaid flips a booking to completed and records the Razorpay ids.
func (s *BookingStore) MarkBookingPaid(ctx context.Context, id uuid.UUID, orderID, paymentID string) error {
	result := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status":      models.PaymentStatusCompleted,
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBookings returns all bookings, newest first.
func (s *BookingStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
