package handler

import (
	"restaurant_ordering/model"
	"restaurant_ordering/utils"
	"restaurant_ordering/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ConfirmPayment(c *fiber.Ctx) error {
	input := validate.Input[model.ConfirmPaymentRequest](c)
	order, err := h.svc.ConfirmPayment(c.UserContext(), validate.ID(c), input.Proof, account(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
