package handler

import (
	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
	"restaurant_ordering/utils"
	"restaurant_ordering/validate"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) CreateOrder(c *fiber.Ctx) error {
	input := validate.Input[model.OrderRequest](c)
	order, err := h.svc.CreateOrder(c.UserContext(), input, account(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func (h *Handler) GetOrders(c *fiber.Ctx) error {
	filter := validate.Input[model.OrderFilter](c)
	orders, err := h.svc.ListOrders(c.UserContext(), ordering.ScopeFor(account(c)), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func (h *Handler) GetOrderById(c *fiber.Ctx) error {
	order, err := h.svc.GetOrder(c.UserContext(), validate.ID(c), account(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) EditOrder(c *fiber.Ctx) error {
	input := validate.Input[model.OrderRequest](c)
	order, err := h.svc.EditOrder(c.UserContext(), validate.ID(c), input, account(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) CancelOrder(c *fiber.Ctx) error {
	id := validate.ID(c)
	if err := h.svc.CancelOrder(c.UserContext(), id, account(c)); err != nil {
		return h.fail(c, err)
	}
	order, err := h.svc.GetOrder(c.UserContext(), id, account(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := validate.ID(c)
	input := validate.Input[model.StatusRequest](c)
	if err := h.svc.SetStatus(c.UserContext(), id, input.Status); err != nil {
		return h.fail(c, err)
	}
	order, err := h.svc.GetOrder(c.UserContext(), id, account(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.svc.DeleteOrder(c.UserContext(), validate.ID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetOrderReceipt renders the order's receipt token as a PNG QR code.
func (h *Handler) GetOrderReceipt(c *fiber.Ctx) error {
	order, err := h.svc.GetOrder(c.UserContext(), validate.ID(c), account(c))
	if err != nil {
		return h.fail(c, err)
	}
	png, err := utils.GenerateQRCode(utils.ReceiptContent(order.OrderNo, order.ReceiptToken), utils.ReceiptQRSize)
	if err != nil {
		h.logger.Error("render receipt qr", zap.Uint("order_id", order.ID), zap.Error(err))
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
