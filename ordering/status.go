package ordering

import (
	"context"
	"fmt"

	"restaurant_ordering/model"

	"go.uber.org/zap"
)

func IsTerminal(status model.OrderStatus) bool {
	return status == model.OrderCompleted || status == model.OrderCancelled
}

// AdvanceOnPayment is the automatic transition taken when payment is confirmed.
func AdvanceOnPayment(status model.OrderStatus) model.OrderStatus {
	if status == model.OrderPending {
		return model.OrderConfirmed
	}
	return status
}

// CancelOrder cancels a non-terminal order of the requester (or any order
// for an admin). Cancelling a cancelled order is a no-op.
func (s *Service) CancelOrder(ctx context.Context, id uint, requester model.Account) error {
	var cancelled *model.Order
	err := s.store.Transaction(ctx, func(tx Store) error {
		order, err := tx.LockOrder(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(order, requester); err != nil {
			return err
		}
		switch order.Status {
		case model.OrderCancelled:
			return nil
		case model.OrderCompleted:
			return fmt.Errorf("%w: order %s is completed", ErrInvalidTransition, order.OrderNo)
		}
		order.Status = model.OrderCancelled
		order.UpdatedAt = s.clock.Now()
		if err := tx.UpdateOrder(ctx, order); err != nil {
			return err
		}
		if err := cancelReservation(ctx, tx, order); err != nil {
			return err
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return err
	}
	if cancelled != nil {
		s.logger.Info("order cancelled", zap.Uint("order_id", id), zap.Uint("by", requester.ID))
		s.publish(ctx, EventOrderCancelled, cancelled)
		s.notifier.OrderCancelled(*cancelled)
	}
	return nil
}

// SetStatus is the staff override: any recognised status may be forced.
func (s *Service) SetStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	if !IsOrderStatus(status) {
		return newValidationError("status", "is not a recognized status")
	}
	var changed *model.Order
	var previous model.OrderStatus
	err := s.store.Transaction(ctx, func(tx Store) error {
		order, err := tx.LockOrder(ctx, id)
		if err != nil {
			return err
		}
		previous = order.Status
		order.Status = status
		order.UpdatedAt = s.clock.Now()
		if err := tx.UpdateOrder(ctx, order); err != nil {
			return err
		}
		if status == model.OrderCancelled {
			if err := cancelReservation(ctx, tx, order); err != nil {
				return err
			}
		}
		changed = order
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("order status overridden",
		zap.Uint("order_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))
	if status == model.OrderCancelled && previous != model.OrderCancelled {
		s.publish(ctx, EventOrderCancelled, changed)
		s.notifier.OrderCancelled(*changed)
		return nil
	}
	s.publish(ctx, EventStatusChanged, changed)
	return nil
}

func cancelReservation(ctx context.Context, tx Store, order *model.Order) error {
	r := order.TableReservation
	if r == nil || r.Status == model.ReservationCancelled {
		return nil
	}
	if err := tx.UpdateReservationStatus(ctx, r.ID, model.ReservationCancelled); err != nil {
		return fmt.Errorf("cancel reservation %d: %w", r.ID, err)
	}
	r.Status = model.ReservationCancelled
	return nil
}
