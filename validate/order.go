package validate

import (
	"restaurant_ordering/constants"
	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
)

// OrderInput serves both create and edit; line rules live in the service.
func OrderInput() fiber.Handler {
	return body[model.OrderRequest]()
}

func ConfirmPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ConfirmPaymentRequest
		// an empty body means "no proof"; the service decides whether that is allowed
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
			}
		}
		c.Locals(constants.LOCALS_INPUT, input)
		return c.Next()
	}
}

func Status() fiber.Handler {
	return body[model.StatusRequest]()
}

func OrderFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter model.OrderFilter
		if err := c.QueryParser(&filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := ordering.ValidateStruct(filter); err != nil {
			return invalid(c, err)
		}
		c.Locals(constants.LOCALS_INPUT, filter)
		return c.Next()
	}
}
