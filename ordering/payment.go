package ordering

import (
	"context"
	"fmt"
	"strings"

	"restaurant_ordering/model"

	"go.uber.org/zap"
)

// ConfirmPayment records proof of payment for an unconfirmed order and moves
// a Pending order to Confirmed, atomically. Cash takes an official receipt
// number, every other method a payment reference.
func (s *Service) ConfirmPayment(ctx context.Context, id uint, proof string, staff model.Account) (*model.Order, error) {
	proof = strings.TrimSpace(proof)

	var confirmed *model.Order
	err := s.store.Transaction(ctx, func(tx Store) error {
		order, err := tx.LockOrder(ctx, id)
		if err != nil {
			return err
		}
		if order.PaymentConfirmed {
			return fmt.Errorf("%w: order %s", ErrAlreadyConfirmed, order.OrderNo)
		}
		if proof == "" {
			if order.PaymentMethod == model.PaymentCash {
				return fmt.Errorf("%w: official receipt number is required for cash", ErrMissingProof)
			}
			return fmt.Errorf("%w: payment reference is required for %s", ErrMissingProof, order.PaymentMethod)
		}

		now := s.clock.Now()
		order.PaymentConfirmed = true
		order.PaymentConfirmedAt = &now
		order.PaymentConfirmedBy = staffIdentity(staff)
		if order.PaymentMethod == model.PaymentCash {
			order.OfficialReceiptNo = proof
		} else {
			order.PaymentReference = proof
		}
		order.Status = AdvanceOnPayment(order.Status)
		order.UpdatedAt = now
		if err := tx.UpdateOrder(ctx, order); err != nil {
			return err
		}
		confirmed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment confirmed",
		zap.Uint("order_id", id),
		zap.String("method", string(confirmed.PaymentMethod)),
		zap.String("by", confirmed.PaymentConfirmedBy))
	s.publish(ctx, EventPaymentConfirmed, confirmed)
	s.notifier.PaymentConfirmed(*confirmed)
	return confirmed, nil
}

func staffIdentity(staff model.Account) string {
	if staff.DisplayName != "" {
		return staff.DisplayName
	}
	if staff.Email != "" {
		return staff.Email
	}
	return fmt.Sprintf("account-%d", staff.ID)
}
