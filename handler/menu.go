package handler

import (
	"errors"

	"restaurant_ordering/constants"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMenu(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, h.svc.Catalog().Items())
}

func (h *Handler) GetMenuItem(c *fiber.Ctx) error {
	item, ok := h.svc.Catalog().BySlug(c.Params("slug"))
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MENU_ITEM_NOT_FOUND, errors.New("unknown menu item"))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}
