package handler

import (
	"restaurant_ordering/model"
	"restaurant_ordering/utils"
	"restaurant_ordering/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

func (h *Handler) toAccountResponse(a model.Account) model.AccountResponse {
	var out model.AccountResponse
	if err := copier.Copy(&out, &a); err != nil {
		h.logger.Error("copy account response", zap.Uint("account_id", a.ID), zap.Error(err))
	}
	return out
}

func (h *Handler) Register(c *fiber.Ctx) error {
	input := validate.Input[model.RegisterInput](c)
	created, err := h.svc.RegisterAccount(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, h.toAccountResponse(*created))
}

func (h *Handler) Login(c *fiber.Ctx) error {
	input := validate.Input[model.LoginInput](c)
	acc, err := h.svc.Authenticate(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return h.fail(c, err)
	}

	token, err := h.tokens.GenerateAccessToken(model.TokenClaim{
		AccountId: acc.ID,
		Name:      acc.DisplayName,
		Role:      acc.Role,
	})
	if err != nil {
		return h.fail(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"token":   token,
		"account": h.toAccountResponse(*acc),
	})
}

func (h *Handler) Me(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, h.toAccountResponse(account(c)))
}
