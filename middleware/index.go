package middleware

import (
	"errors"
	"strings"

	"restaurant_ordering/constants"
	"restaurant_ordering/helper"
	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
)

// Protected resolves the bearer token (cookie first, then the
// Authorization header) to the current account.
func Protected(tokens *helper.Tokens, svc *ordering.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")
		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("no token"))
		}

		claim, err := tokens.ParseToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, err)
		}
		account, err := svc.LookupAccount(c.UserContext(), claim.AccountId)
		if err != nil {
			if errors.Is(err, ordering.ErrNotFound) {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("account no longer exists"))
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		c.Locals(constants.LOCALS_ACCOUNT, *account)
		return c.Next()
	}
}

// AdminOnly must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, ok := CurrentAccount(c)
		if !ok || !account.IsAdmin() {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN, ordering.ErrForbidden)
		}
		return c.Next()
	}
}

func CurrentAccount(c *fiber.Ctx) (model.Account, bool) {
	account, ok := c.Locals(constants.LOCALS_ACCOUNT).(model.Account)
	return account, ok
}
