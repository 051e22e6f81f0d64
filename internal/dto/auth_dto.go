package dto

import (
	"github.com/google/uuid"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

type SignupRequest struct {
	Email            string               `json:"email"`
	Password         string               `json:"password"`
	FullName         string               `json:"fullName"`
	Phone            string               `json:"phone"`
	ReferredBy       string               `json:"referredBy"`
	NumberOfCharts   int                  `json:"numberOfCharts"`
	SelectedServices []string             `json:"selectedServices"`
	ChartData        []services.ChartForm `json:"chartData"`
}

type SignupResponse struct {
	OK              bool      `json:"ok"`
	AccountID       uuid.UUID `json:"account_id"`
	ChartsPersisted int       `json:"charts_persisted"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        AccountInfo `json:"user"`
}

type AccountInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
