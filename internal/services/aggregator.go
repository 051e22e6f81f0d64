package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
)

// UnifiedUser is the read-time merge of an account, its profile row (if any) and its
// charts. It is recomputed on every request and never persisted.
type UnifiedUser struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	FullName         *string        `json:"full_name"`
	Phone            *string        `json:"phone"`
	ReferredBy       *string        `json:"referred_by"`
	NumberOfCharts   *int           `json:"number_of_charts"`
	CreatedAt        time.Time      `json:"created_at"`
	LastLogin        *time.Time     `json:"last_login"`
	SelectedServices []string       `json:"selected_services"`
	Charts           []models.Chart `json:"charts"`
}

// Aggregator joins the identity store and the application record store into unified
// per-user views. A missing profile row is the expected common case for signups whose
// later persistence steps never ran; the account metadata snapshot fills the gaps.
type Aggregator struct {
	identity IdentityStore
	records  RecordStore
}

func NewAggregator(identity IdentityStore, records RecordStore) *Aggregator {
	return &Aggregator{identity: identity, records: records}
}

// ListUnifiedUsers returns one view per account, in the order the identity store
// returned the accounts. Profiles and charts are each fetched with a single batched
// query.
func (a *Aggregator) ListUnifiedUsers(ctx context.Context) ([]UnifiedUser, error) {
	accounts, err := a.identity.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list accounts: %v", ErrUpstream, err)
	}

	ids := make([]uuid.UUID, len(accounts))
	for i, acct := range accounts {
		ids[i] = acct.ID
	}

	profiles, err := a.records.ProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load profiles: %v", ErrUpstream, err)
	}
	charts, err := a.records.ChartsByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: load charts: %v", ErrUpstream, err)
	}

	profileByID := make(map[uuid.UUID]*models.Profile, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].ID] = &profiles[i]
	}

	chartsByUser := make(map[uuid.UUID][]models.Chart, len(accounts))
	for _, chart := range charts {
		chartsByUser[chart.UserID] = append(chartsByUser[chart.UserID], chart)
	}

	views := make([]UnifiedUser, len(accounts))
	for i, acct := range accounts {
		views[i] = buildView(&acct, profileByID[acct.ID], chartsByUser[acct.ID])
	}
	return views, nil
}

// buildView overlays profile fields on top of the account metadata snapshot. The
// profile is authoritative where it has a value; the metadata is the write-once
// fallback and is never written back.
func buildView(acct *models.Account, profile *models.Profile, charts []models.Chart) UnifiedUser {
	meta := map[string]interface{}(acct.Metadata)

	view := UnifiedUser{
		ID:               acct.ID,
		Email:            acct.Email,
		CreatedAt:        acct.CreatedAt,
		LastLogin:        acct.LastSignInAt,
		SelectedServices: metaStringList(meta, "selected_services"),
		Charts:           charts,
	}
	if view.Charts == nil {
		view.Charts = []models.Chart{}
	}

	if profile != nil {
		view.FullName = profile.FullName
		view.Phone = profile.Phone
		view.ReferredBy = profile.ReferredBy
		view.NumberOfCharts = profile.NumberOfCharts
	}
	if view.FullName == nil {
		view.FullName = metaString(meta, "full_name")
	}
	if view.Phone == nil {
		view.Phone = metaString(meta, "phone")
	}
	if view.ReferredBy == nil {
		view.ReferredBy = metaString(meta, "referred_by")
	}
	if view.NumberOfCharts == nil {
		if list, ok := meta["chart_data"].([]interface{}); ok {
			n := len(list)
			view.NumberOfCharts = &n
		}
	}
	return view
}

// ServiceCounts tallies how many users selected each service. Pure function over the
// views; users without a selected_services list are skipped.
func ServiceCounts(views []UnifiedUser) map[string]int {
	counts := make(map[string]int)
	for _, view := range views {
		for _, service := range view.SelectedServices {
			counts[service]++
		}
	}
	return counts
}

func metaString(meta map[string]interface{}, key string) *string {
	if s, ok := meta[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

// metaStringList accepts both the decoded-JSON shape ([]interface{}) and the
// freshly-written one ([]string); anything else counts as absent.
func metaStringList(meta map[string]interface{}, key string) []string {
	switch raw := meta[key].(type) {
	case []string:
		return raw
	case []interface{}:
		list := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				list = append(list, s)
			}
		}
		return list
	default:
		return nil
	}
}
