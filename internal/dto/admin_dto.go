package dto

import (
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

type UsersResponse struct {
	Users []services.UnifiedUser `json:"users"`
}

// StatsResponse distinguishes "no data yet" (zero totals, valid) from a failed load,
// which never reaches this shape.
type StatsResponse struct {
	TotalUsers    int            `json:"total_users"`
	TotalCharts   int            `json:"total_charts"`
	ServiceCounts map[string]int `json:"service_counts"`
}

type BookingsResponse struct {
	Bookings []models.Booking `json:"bookings"`
}

type DeleteUserResponse struct {
	OK bool `json:"ok"`
}
