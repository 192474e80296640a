package handler

import (
	"errors"

	"restaurant_ordering/constants"
	"restaurant_ordering/events"
	"restaurant_ordering/helper"
	"restaurant_ordering/middleware"
	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
	"restaurant_ordering/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *ordering.Service
	tokens *helper.Tokens
	feed   events.Feed
	logger *zap.Logger
}

func New(svc *ordering.Service, tokens *helper.Tokens, feed events.Feed, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, tokens: tokens, feed: feed, logger: logger}
}

func (h *Handler) Service() *ordering.Service { return h.svc }

func (h *Handler) Tokens() *helper.Tokens { return h.tokens }

func account(c *fiber.Ctx) model.Account {
	a, _ := middleware.CurrentAccount(c)
	return a
}

// StatusFor maps a domain error to its HTTP status and message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ordering.ErrValidation):
		return fiber.StatusBadRequest, constants.INVALID_INPUT
	case errors.Is(err, ordering.ErrNotFound):
		return fiber.StatusNotFound, constants.ORDER_NOT_FOUND
	case errors.Is(err, ordering.ErrForbidden):
		return fiber.StatusForbidden, constants.FORBIDDEN
	case errors.Is(err, ordering.ErrAlreadyConfirmed):
		return fiber.StatusConflict, constants.PAYMENT_ALREADY_DONE
	case errors.Is(err, ordering.ErrMissingProof):
		return fiber.StatusUnprocessableEntity, constants.PAYMENT_MISSING_PROOF
	case errors.Is(err, ordering.ErrInvalidTransition):
		return fiber.StatusConflict, constants.ORDER_CANNOT_TRANSITION
	case errors.Is(err, ordering.ErrInvalidTimeFormat):
		return fiber.StatusBadRequest, constants.INVALID_TIME_FORMAT
	case errors.Is(err, ordering.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, constants.INVALID_LOGIN
	case errors.Is(err, ordering.ErrEmailTaken):
		return fiber.StatusConflict, constants.EMAIL_ALREADY_USED
	default:
		return fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status, message := StatusFor(err)
	var ve *ordering.ValidationError
	if errors.As(err, &ve) {
		return utils.ErrorResponseFields(c, status, message, ve.Fields)
	}
	if status == fiber.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return utils.ErrorResponse(c, status, message, err)
}
