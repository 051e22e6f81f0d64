package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gurukrpa/gurukrpa-backend/internal/dto"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
)

// AuthorizationPolicy decides whether an account may use the admin surface. It is an
// interface so the rule can be swapped for a proper role claim without touching the
// middleware or handlers.
type AuthorizationPolicy interface {
	IsAdmin(acct *models.Account) bool
}

// EmailSubstringPolicy is the documented production rule: an account is an admin iff
// its lower-cased email contains the marker substring.
type EmailSubstringPolicy struct {
	Marker string
}

func NewEmailSubstringPolicy() EmailSubstringPolicy {
	return EmailSubstringPolicy{Marker: "admin"}
}

func (p EmailSubstringPolicy) IsAdmin(acct *models.Account) bool {
	return strings.Contains(strings.ToLower(acct.Email), p.Marker)
}

// AdminRequired rejects authenticated callers the policy does not recognize as admins.
// It must run after AuthRequired.
func AdminRequired(policy AuthorizationPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		acct := AccountFromCtx(c)
		if acct == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if !policy.IsAdmin(acct) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
