package validate

import (
	"errors"
	"strconv"

	"restaurant_ordering/constants"
	"restaurant_ordering/ordering"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
)

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		valueKey, err := strconv.ParseUint(c.Params(key), 10, 64)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}
		c.Locals(constants.LOCALS_ID, uint(valueKey))
		return c.Next()
	}
}

// body parses the JSON body into T, validates it and hands it on in Locals.
func body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := ordering.ValidateStruct(input); err != nil {
			return invalid(c, err)
		}
		c.Locals(constants.LOCALS_INPUT, input)
		return c.Next()
	}
}

func invalid(c *fiber.Ctx, err error) error {
	var ve *ordering.ValidationError
	if errors.As(err, &ve) {
		return utils.ErrorResponseFields(c, fiber.StatusBadRequest, constants.INVALID_INPUT, ve.Fields)
	}
	return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
}

// Input returns what a validate middleware stored.
func Input[T any](c *fiber.Ctx) T {
	input, _ := c.Locals(constants.LOCALS_INPUT).(T)
	return input
}

func ID(c *fiber.Ctx) uint {
	id, _ := c.Locals(constants.LOCALS_ID).(uint)
	return id
}
