package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
)

// IdentityStore is the capability surface the core needs from the identity provider.
// It is injected rather than reached through a package-level handle so tests can
// substitute fakes.
type IdentityStore interface {
	AccountByToken(ctx context.Context, token string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	CreateAccount(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// RecordStore is the capability surface the core needs from the application record
// store (profile and chart tables).
type RecordStore interface {
	ProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error)
	ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	ChartsByUserIDs(ctx context.Context, ids []uuid.UUID) ([]models.Chart, error)
	ChartsByUserID(ctx context.Context, id uuid.UUID) ([]models.Chart, error)
	InsertCharts(ctx context.Context, rows []models.Chart) error
	DeleteChartsByUserID(ctx context.Context, id uuid.UUID) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

// BookingStore is the capability surface for consultation bookings.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	MarkBookingPaid(ctx context.Context, id uuid.UUID, orderID, paymentID string) error
	ListBookings(ctx context.Context) ([]models.Booking, error)
}
