package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordStore is the application record store: the denormalized profile table plus the
// per-user chart table. All multi-user reads are single batched queries so the
// aggregator never goes N+1.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// ProfilesByIDs returns the profile rows whose id is in the given set. Missing rows are
// not an error; callers overlay what they get.
func (s *RecordStore) ProfilesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// ProfileByID returns a single profile row, or gorm.ErrRecordNotFound.
func (s *RecordStore) ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile inserts the profile row or, on id conflict, updates it in place.
// Re-running the same signup step therefore never duplicates a row.
func (s *RecordStore) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "full_name", "phone", "referred_by", "number_of_charts",
		}),
	}).Create(profile).Error
}

// ChartsByUserIDs returns every chart belonging to the given users, ordered by
// created_at ascending so grouping stays consistent with the single-user export.
func (s *RecordStore) ChartsByUserIDs(ctx context.Context, ids []uuid.UUID) ([]models.Chart, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var charts []models.Chart
	if err := s.db.WithContext(ctx).Where("user_id IN ?", ids).Order("created_at ASC").Find(&charts).Error; err != nil {
		return nil, err
	}
	return charts, nil
}

// ChartsByUserID returns one user's charts, created_at ascending.
func (s *RecordStore) ChartsByUserID(ctx context.Context, id uuid.UUID) ([]models.Chart, error) {
	var charts []models.Chart
	if err := s.db.WithContext(ctx).Where("user_id = ?", id).Order("created_at ASC").Find(&charts).Error; err != nil {
		return nil, err
	}
	return charts, nil
}

// InsertCharts bulk-inserts chart rows in a single call.
func (s *RecordStore) InsertCharts(ctx context.Context, rows []models.Chart) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *RecordStore) DeleteChartsByUserID(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Where("user_id = ?", id).Delete(&models.Chart{}).Error
}

func (s *RecordStore) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error
}

// IsNotFound reports whether err is a missing-row error from the store.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
