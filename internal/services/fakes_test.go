package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeIdentity is an in-memory identity store. deleteErrs is a queue of results for
// successive DeleteAccount calls; a nil entry (or an exhausted queue) means success.
type fakeIdentity struct {
	accounts    []models.Account
	listErr     error
	createErr   error
	deleteErrs  []error
	deleteCalls int
}

func (f *fakeIdentity) AccountByToken(_ context.Context, token string) (*models.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID.String() == token {
			return &f.accounts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIdentity) ListAccounts(_ context.Context) ([]models.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts, nil
}

func (f *fakeIdentity) CreateAccount(_ context.Context, email, password string, metadata map[string]interface{}) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	acct := models.Account{
		ID:        uuid.New(),
		Email:     email,
		Password:  password,
		Metadata:  datatypes.JSONMap(metadata),
		CreatedAt: time.Now().UTC(),
	}
	f.accounts = append(f.accounts, acct)
	return &acct, nil
}

func (f *fakeIdentity) DeleteAccount(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	if len(f.deleteErrs) > 0 {
		err := f.deleteErrs[0]
		f.deleteErrs = f.deleteErrs[1:]
		if err != nil {
			return err
		}
	}
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts = append(f.accounts[:i], f.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeIdentity) account(id uuid.UUID) *models.Account {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			return &f.accounts[i]
		}
	}
	return nil
}

// fakeRecords is an in-memory application record store.
type fakeRecords struct {
	profiles map[uuid.UUID]models.Profile
	charts   []models.Chart

	profilesErr      error
	chartsErr        error
	upsertErr        error
	insertErr        error
	deleteChartsErr  error
	deleteProfileErr error

	deleteChartsCalls  int
	deleteProfileCalls int
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{profiles: make(map[uuid.UUID]models.Profile)}
}

func (f *fakeRecords) ProfilesByIDs(_ context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	if f.profilesErr != nil {
		return nil, f.profilesErr
	}
	var out []models.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRecords) ProfileByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	if f.profilesErr != nil {
		return nil, f.profilesErr
	}
	if p, ok := f.profiles[id]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecords) UpsertProfile(_ context.Context, profile *models.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.profiles[profile.ID] = *profile
	return nil
}

func (f *fakeRecords) ChartsByUserIDs(_ context.Context, ids []uuid.UUID) ([]models.Chart, error) {
	if f.chartsErr != nil {
		return nil, f.chartsErr
	}
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Chart
	for _, c := range f.charts {
		if want[c.UserID] {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecords) ChartsByUserID(_ context.Context, id uuid.UUID) ([]models.Chart, error) {
	return f.ChartsByUserIDs(context.Background(), []uuid.UUID{id})
}

func (f *fakeRecords) InsertCharts(_ context.Context, rows []models.Chart) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	now := time.Now().UTC()
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
	}
	f.charts = append(f.charts, rows...)
	return nil
}

func (f *fakeRecords) DeleteChartsByUserID(_ context.Context, id uuid.UUID) error {
	f.deleteChartsCalls++
	if f.deleteChartsErr != nil {
		return f.deleteChartsErr
	}
	kept := f.charts[:0]
	for _, c := range f.charts {
		if c.UserID != id {
			kept = append(kept, c)
		}
	}
	f.charts = kept
	return nil
}

func (f *fakeRecords) DeleteProfile(_ context.Context, id uuid.UUID) error {
	f.deleteProfileCalls++
	if f.deleteProfileErr != nil {
		return f.deleteProfileErr
	}
	delete(f.profiles, id)
	return nil
}

// fakeBookings is an in-memory booking store.
type fakeBookings struct {
	bookings  []models.Booking
	createErr error
	markErr   error
}

func (f *fakeBookings) CreateBooking(_ context.Context, booking *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookings) MarkBookingPaid(_ context.Context, id uuid.UUID, orderID, paymentID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].PaymentStatus = models.PaymentStatusCompleted
			f.bookings[i].RazorpayOrderID = orderID
			f.bookings[i].RazorpayPaymentID = paymentID
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeBookings) ListBookings(_ context.Context) ([]models.Booking, error) {
	return f.bookings, nil
}
