package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gurukrpa/gurukrpa-backend/internal/dto"
	"github.com/gurukrpa/gurukrpa-backend/internal/identity"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

// Authenticator is the slice of the identity service the login endpoint needs.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.Account, string, error)
}

type AuthHandler struct {
	signup *services.SignupCoordinator
	auth   Authenticator
}

func NewAuthHandler(signup *services.SignupCoordinator, auth Authenticator) *AuthHandler {
	return &AuthHandler{signup: signup, auth: auth}
}

// Signup handles POST /api/auth/signup - the full multi-step signup completion.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and password are required",
		})
	}
	if len(req.ChartData) > services.MaxChartForms {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Too many chart forms",
		})
	}

	result, err := h.signup.CompleteSignup(c.UserContext(), services.SignupInput{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		Phone:            req.Phone,
		ReferredBy:       req.ReferredBy,
		NumberOfCharts:   req.NumberOfCharts,
		SelectedServices: req.SelectedServices,
		ChartData:        req.ChartData,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already registered",
			})
		case errors.Is(err, services.ErrProfilePersistFailed):
			slog.Error("signup: profile persist failed", "action", "signup", "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Account created but profile could not be saved",
			})
		case errors.Is(err, services.ErrChartsPersistFailed):
			slog.Error("signup: charts persist failed", "action", "signup", "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Account created but charts could not be saved",
			})
		default:
			slog.Error("signup: account creation failed", "action", "signup", "error", err.Error())
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Signup failed",
			})
		}
	}

	return c.JSON(dto.SignupResponse{
		OK:              true,
		AccountID:       result.AccountID,
		ChartsPersisted: result.ChartsPersisted,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	acct, token, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid email or password",
			})
		}
		slog.Error("login failed", "action", "login", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Login failed",
		})
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		User:        dto.AccountInfo{ID: acct.ID, Email: acct.Email},
	})
}
