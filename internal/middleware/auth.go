package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gurukrpa/gurukrpa-backend/internal/dto"
	"github.com/gurukrpa/gurukrpa-backend/internal/models"
	"github.com/gurukrpa/gurukrpa-backend/internal/services"
)

const accountLocal = "account"

// AuthRequired resolves the bearer credential through the identity store and stashes
// the account in the request locals. Every failure mode is a plain 401.
func AuthRequired(identity services.IdentityStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		acct, err := identity.AccountByToken(c.UserContext(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		c.Locals(accountLocal, acct)
		return c.Next()
	}
}

// AccountFromCtx returns the account resolved by AuthRequired, or nil.
func AccountFromCtx(c *fiber.Ctx) *models.Account {
	acct, _ := c.Locals(accountLocal).(*models.Account)
	return acct
}
