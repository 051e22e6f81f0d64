// Seed tool: creates a realistic test signup through the real coordinator so every
// table (accounts, users, charts) ends up populated the same way production traffic
// would populate it.
package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"

	"github.com/gurukrpa/gurukrpa-backend/internal/config"
	"github.com/gurukrpa/gurukrpa-backend/internal/database"
	"github.com/gurukrpa/gurukrpa-backend/internal/identity"
	"github.com/gurukrpa/gurukrpa-backend/internal/logging"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
	"github.com/gurukrpa/gurukrpa-backend/internal/store"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func main() {
	logging.Setup()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	identityStore := identity.NewService(db, cfg.JWTSecret, cfg.JWTAccessExpiry)
	recordStore := store.NewRecordStore(db)
	coordinator := services.NewSignupCoordinator(identityStore, recordStore)

	uid := randomID(6)
	input := services.SignupInput{
		Email:          "test_" + uid + "@example.com",
		Password:       "Test@12345",
		FullName:       "Test User " + uid,
		Phone:          "+911234567890",
		ReferredBy:     "Automated seed",
		NumberOfCharts: 2,
		SelectedServices: []string{
			"Astrology Consultation",
			"Muhurtha Consultation",
		},
		ChartData: []services.ChartForm{
			{
				FullName:         "Person One",
				Relation:         "Self",
				SelectedServices: []string{"Astrology Consultation", "Muhurtha Consultation"},
				DateOfBirth:      "1995-01-01",
				TimeOfBirth:      "09:30",
				PlaceOfBirth:     "Mumbai, India",
				Address:          "123 Marine Drive, Mumbai",
				Occupation:       "Engineer",
				Question1:        "Career growth outlook?",
				Question2:        "Auspicious time for relocation?",
			},
			{
				FullName:         "Person Two",
				Relation:         "Spouse",
				SelectedServices: []string{"Astrology Consultation"},
				DateOfBirth:      "1997-06-15",
				TimeOfBirth:      "14:05",
				PlaceOfBirth:     "Pune, India",
				Address:          "123 Marine Drive, Mumbai",
				Occupation:       "Doctor",
				Question1:        "Health outlook?",
			},
		},
	}

	result, err := coordinator.CompleteSignup(context.Background(), input)
	if err != nil {
		slog.Error("seed signup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("seed signup complete",
		"email", input.Email,
		"account_id", result.AccountID.String(),
		"charts_persisted", result.ChartsPersisted,
	)
}

func randomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
