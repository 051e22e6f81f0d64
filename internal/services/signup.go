package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"gorm.io/datatypes"
)

// MaxChartForms bounds how many chart forms a single signup may submit.
const MaxChartForms = 10

// ChartForm is one birth-chart intake form as submitted by the signup page. Forms the
// user collapsed away arrive entirely blank and are dropped during persistence.
type ChartForm struct {
	FullName         string   `json:"fullName"`
	Relation         string   `json:"relation"`
	SelectedServices []string `json:"selectedServices"`
	DateOfBirth      string   `json:"dateOfBirth"`
	TimeOfBirth      string   `json:"timeOfBirth"`
	PlaceOfBirth     string   `json:"placeOfBirth"`
	Address          string   `json:"address"`
	Occupation       string   `json:"occupation"`
	Question1        string   `json:"question1"`
	Question2        string   `json:"question2"`
	Question3        string   `json:"question3"`
}

// blank reports whether the form has no identifying field at all.
func (f ChartForm) blank() bool {
	return strings.TrimSpace(f.FullName) == "" &&
		strings.TrimSpace(f.Relation) == "" &&
		f.DateOfBirth == ""
}

func (f ChartForm) metaMap() map[string]interface{} {
	return map[string]interface{}{
		"fullName":         f.FullName,
		"relation":         f.Relation,
		"selectedServices": f.SelectedServices,
		"dateOfBirth":      f.DateOfBirth,
		"timeOfBirth":      f.TimeOfBirth,
		"placeOfBirth":     f.PlaceOfBirth,
		"address":          f.Address,
		"occupation":       f.Occupation,
		"question1":        f.Question1,
		"question2":        f.Question2,
		"question3":        f.Question3,
	}
}

// SignupInput is the full signup submission: credentials, profile fields and 1..N
// chart forms.
type SignupInput struct {
	Email            string
	Password         string
	FullName         string
	Phone            string
	ReferredBy       string
	NumberOfCharts   int
	SelectedServices []string
	ChartData        []ChartForm
}

// SignupResult reports what the coordinator managed to persist. AccountID is set as
// soon as step 1 succeeds, even when a later step fails.
type SignupResult struct {
	AccountID       uuid.UUID `json:"account_id"`
	ChartsPersisted int       `json:"charts_persisted"`
}

// SignupCoordinator fans one signup submission out into an identity record, a profile
// upsert and a batch of chart rows. No cross-store transaction exists, so each step is
// an independently fallible unit: account creation fails hard, later failures leave
// the earlier writes in place and report a step-specific error. The aggregator's
// metadata fallback is the mitigation for those windows, not a rollback.
type SignupCoordinator struct {
	identity IdentityStore
	records  RecordStore
}

func NewSignupCoordinator(identity IdentityStore, records RecordStore) *SignupCoordinator {
	return &SignupCoordinator{identity: identity, records: records}
}

// CompleteSignup runs the ordered persistence sequence. The returned error, when not
// nil, wraps exactly one of ErrSignupFailed, ErrProfilePersistFailed or
// ErrChartsPersistFailed.
func (s *SignupCoordinator) CompleteSignup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	acct, err := s.identity.CreateAccount(ctx, in.Email, in.Password, s.metadataSnapshot(in))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignupFailed, err)
	}
	result := &SignupResult{AccountID: acct.ID}

	profile := models.Profile{
		ID:             acct.ID,
		Email:          in.Email,
		FullName:       optional(in.FullName),
		Phone:          optional(in.Phone),
		ReferredBy:     optional(in.ReferredBy),
		NumberOfCharts: intPtr(s.chartCount(in)),
	}
	if err := s.records.UpsertProfile(ctx, &profile); err != nil {
		return result, fmt.Errorf("%w: %w", ErrProfilePersistFailed, err)
	}

	rows := chartRows(acct.ID, in.ChartData)
	if len(rows) > 0 {
		if err := s.records.InsertCharts(ctx, rows); err != nil {
			return result, fmt.Errorf("%w: %w", ErrChartsPersistFailed, err)
		}
	}
	result.ChartsPersisted = len(rows)
	return result, nil
}

// chartCount resolves the declared chart count, falling back to the number of
// submitted forms and bottoming out at 1.
func (s *SignupCoordinator) chartCount(in SignupInput) int {
	if in.NumberOfCharts > 0 {
		return in.NumberOfCharts
	}
	if len(in.ChartData) > 0 {
		return len(in.ChartData)
	}
	return 1
}

// metadataSnapshot is the write-once convenience copy stored on the identity record.
// It is never reconciled with the profile row afterwards.
func (s *SignupCoordinator) metadataSnapshot(in SignupInput) map[string]interface{} {
	chartData := make([]interface{}, len(in.ChartData))
	for i, form := range in.ChartData {
		chartData[i] = form.metaMap()
	}
	return map[string]interface{}{
		"full_name":         in.FullName,
		"phone":             in.Phone,
		"referred_by":       in.ReferredBy,
		"selected_services": in.SelectedServices,
		"number_of_charts":  s.chartCount(in),
		"chart_data":        chartData,
	}
}

// chartRows drops entirely blank forms and maps the rest to chart rows, defaulting
// missing optional text to empty string and missing date/time to null.
func chartRows(userID uuid.UUID, forms []ChartForm) []models.Chart {
	rows := make([]models.Chart, 0, len(forms))
	for _, form := range forms {
		if form.blank() {
			continue
		}
		services := form.SelectedServices
		if services == nil {
			services = []string{}
		}
		rows = append(rows, models.Chart{
			UserID:           userID,
			FullName:         form.FullName,
			Relation:         form.Relation,
			SelectedServices: datatypes.NewJSONSlice(services),
			DateOfBirth:      optional(form.DateOfBirth),
			TimeOfBirth:      optional(form.TimeOfBirth),
			PlaceOfBirth:     form.PlaceOfBirth,
			Address:          form.Address,
			Occupation:       form.Occupation,
			Question1:        form.Question1,
			Question2:        form.Question2,
			Question3:        form.Question3,
		})
	}
	return rows
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(n int) *int { return &n }
