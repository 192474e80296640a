package handler

import (
	"restaurant_ordering/model"
	"restaurant_ordering/utils"
	"restaurant_ordering/validate"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	filter := validate.Input[model.OrderFilter](c)
	summary, orders, err := h.svc.Dashboard(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"summary": summary,
		"orders":  orders,
	})
}
