package handler

import (
	"errors"

	"restaurant_ordering/ordering"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetAvailableTables never fails on a malformed slot; it reports no tables.
func (h *Handler) GetAvailableTables(c *fiber.Ctx) error {
	tables, err := h.svc.AvailableTables(c.UserContext(), c.Query("date"), c.Query("time"))
	if err != nil {
		if errors.Is(err, ordering.ErrInvalidTimeFormat) {
			h.logger.Debug("availability queried with bad slot",
				zap.String("date", c.Query("date")),
				zap.String("time", c.Query("time")))
			return utils.SuccessResponse(c, fiber.StatusOK, []string{})
		}
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tables)
}
