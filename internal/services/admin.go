package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"gorm.io/gorm"
)

// UserExport is the single-user narrowing of the aggregator's profile+charts join.
// Both renderings (JSON and PDF) are produced from this one struct so they can never
// drift apart.
type UserExport struct {
	Profile models.Profile `json:"user"`
	Charts  []models.Chart `json:"charts"`
}

// AdminService carries the admin-only mutations: cascading user deletion and the
// read-only per-user export.
type AdminService struct {
	identity IdentityStore
	records  RecordStore
}

func NewAdminService(identity IdentityStore, records RecordStore) *AdminService {
	return &AdminService{identity: identity, records: records}
}

// DeleteUser removes a user across all three stores. The identity deletion is tried
// first and, when it succeeds, trusted to cascade (leftover rows are tolerated as
// orphans). When it fails, dependent rows are removed manually and the identity
// deletion retried once; a second failure surfaces ErrDeleteFailed with whatever
// partial deletion already happened left as-is.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.identity.DeleteAccount(ctx, id); err == nil {
		return nil
	} else {
		slog.Warn("identity delete failed, falling back to manual cascade", "user_id", id.String(), "error", err.Error())
	}

	// Best effort: clear dependent rows before the retry.
	if err := s.records.DeleteChartsByUserID(ctx, id); err != nil {
		slog.Error("cascade chart delete failed", "user_id", id.String(), "error", err.Error())
	}
	if err := s.records.DeleteProfile(ctx, id); err != nil {
		slog.Error("cascade profile delete failed", "user_id", id.String(), "error", err.Error())
	}

	if err := s.identity.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// ExportUser returns one user's profile and charts, charts ordered by created_at
// ascending. A missing profile row is ErrNotFound; store failures are ErrUpstream.
func (s *AdminService) ExportUser(ctx context.Context, id uuid.UUID) (*UserExport, error) {
	profile, err := s.records.ProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load profile: %v", ErrUpstream, err)
	}

	charts, err := s.records.ChartsByUserID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load charts: %v", ErrUpstream, err)
	}
	if charts == nil {
		charts = []models.Chart{}
	}
	return &UserExport{Profile: *profile, Charts: charts}, nil
}
