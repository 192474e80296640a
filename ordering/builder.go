package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant_ordering/model"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MinQuantity = 1
	MaxQuantity = 100
)

// CreateOrder builds a Pending order from req and persists it, with its
// lines and optional reservation, in one transaction.
func (s *Service) CreateOrder(ctx context.Context, req model.OrderRequest, requester model.Account) (*model.Order, error) {
	if err := checkOrderRequest(req); err != nil {
		return nil, err
	}
	lines, err := s.priceLines(req.Lines, nil, requester)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	order := &model.Order{
		DTO:           model.DTO{CreatedAt: now, UpdatedAt: now},
		CustomerName:  strings.TrimSpace(req.CustomerName),
		AccountID:     requester.ID,
		Status:        model.OrderPending,
		OrderedAt:     now,
		PaymentMethod: req.PaymentMethod,
		Lines:         lines,
		ReceiptToken:  uuid.NewString(),
	}
	order.RecalculateTotal()

	if r := req.Reservation; r != nil && strings.TrimSpace(r.TableNumber) != "" {
		reservation, err := buildReservation(*r, requester, now)
		if err != nil {
			return nil, err
		}
		order.TableReservation = reservation
		s.warnIfHeld(ctx, reservation)
	}

	err = s.store.Transaction(ctx, func(tx Store) error {
		number, err := s.numbers.Next(ctx, tx)
		if err != nil {
			return err
		}
		order.OrderNo = number
		return tx.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_no", order.OrderNo),
		zap.String("total", order.TotalPrice.StringFixed(2)),
		zap.Bool("reservation", order.HasReservation()))
	s.publish(ctx, EventOrderCreated, order)
	return order, nil
}

// EditOrder replaces customer name, payment method and line set.
func (s *Service) EditOrder(ctx context.Context, id uint, req model.OrderRequest, requester model.Account) (*model.Order, error) {
	if err := checkOrderRequest(req); err != nil {
		return nil, err
	}

	var edited *model.Order
	err := s.store.Transaction(ctx, func(tx Store) error {
		order, err := tx.LockOrder(ctx, id)
		if err != nil {
			return err
		}
		if err := authorize(order, requester); err != nil {
			return err
		}
		// once paid or finished, only staff may change what was ordered
		if !requester.IsAdmin() {
			if IsTerminal(order.Status) {
				return fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, order.OrderNo, order.Status)
			}
			if order.PaymentConfirmed {
				return fmt.Errorf("%w: order %s is paid", ErrAlreadyConfirmed, order.OrderNo)
			}
		}
		if order.PaymentConfirmed && req.PaymentMethod != order.PaymentMethod {
			return fmt.Errorf("%w: payment method is locked", ErrAlreadyConfirmed)
		}

		snapshots := make(map[string]decimal.Decimal, len(order.Lines))
		for _, line := range order.Lines {
			snapshots[line.ItemName] = line.UnitPrice
		}
		lines, err := s.priceLines(req.Lines, snapshots, requester)
		if err != nil {
			return err
		}
		saved, err := tx.ReplaceLines(ctx, order.ID, lines)
		if err != nil {
			return err
		}

		order.CustomerName = strings.TrimSpace(req.CustomerName)
		order.PaymentMethod = req.PaymentMethod
		order.Lines = saved
		order.RecalculateTotal()
		order.UpdatedAt = s.clock.Now()
		if err := tx.UpdateOrder(ctx, order); err != nil {
			return err
		}
		edited = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("order edited", zap.Uint("order_id", id), zap.String("total", edited.TotalPrice.StringFixed(2)))
	return edited, nil
}

// DeleteOrder removes the whole aggregate.
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	var deleted *model.Order
	err := s.store.Transaction(ctx, func(tx Store) error {
		order, err := tx.LockOrder(ctx, id)
		if err != nil {
			return err
		}
		deleted = order
		return tx.DeleteOrder(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.Uint("order_id", id), zap.String("order_no", deleted.OrderNo))
	s.publish(ctx, EventOrderDeleted, deleted)
	return nil
}

func checkOrderRequest(req model.OrderRequest) error {
	if err := ValidateStruct(req); err != nil {
		return err
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return newValidationError("customerName", "is required")
	}
	return nil
}

// priceLines drops blank or non-positive lines and prices the rest in order:
// explicit price (staff only), existing snapshot, catalog, zero.
func (s *Service) priceLines(reqs []model.LineRequest, snapshots map[string]decimal.Decimal, requester model.Account) ([]model.OrderLine, error) {
	verr := &ValidationError{Fields: map[string]string{}}
	lines := make([]model.OrderLine, 0, len(reqs))
	for i, r := range reqs {
		name := strings.TrimSpace(r.ItemName)
		if name == "" || r.Quantity < MinQuantity {
			continue
		}
		if r.Quantity > MaxQuantity {
			verr.Fields[fmt.Sprintf("lines[%d].quantity", i)] = fmt.Sprintf("must be at most %d", MaxQuantity)
			continue
		}

		var price decimal.Decimal
		switch snap, seen := snapshots[name]; {
		case r.UnitPrice != nil:
			field := fmt.Sprintf("lines[%d].unitPrice", i)
			switch {
			case !requester.IsAdmin():
				verr.Fields[field] = "only staff may set a price"
				continue
			case r.UnitPrice.IsNegative():
				verr.Fields[field] = "must not be negative"
				continue
			case !r.UnitPrice.Equal(r.UnitPrice.Round(2)):
				verr.Fields[field] = "must have at most 2 decimal places"
				continue
			}
			price = *r.UnitPrice
		case seen:
			price = snap
		default:
			price, _ = s.catalog.Price(name)
		}

		lines = append(lines, model.OrderLine{
			ItemName:  name,
			Quantity:  r.Quantity,
			UnitPrice: price,
		})
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	if len(lines) == 0 {
		return nil, newValidationError("lines", "at least one item is required")
	}
	return lines, nil
}

func buildReservation(r model.ReservationRequest, account model.Account, now time.Time) (*model.TableReservation, error) {
	reservation := &model.TableReservation{}
	if err := copier.Copy(reservation, &r); err != nil {
		return nil, fmt.Errorf("copy reservation: %w", err)
	}
	reservation.TableNumber = strings.TrimSpace(r.TableNumber)

	if reservation.PartySize == 0 {
		reservation.PartySize = model.DefaultPartySize
	}
	reservation.ReservationDate = r.Date
	if r.Date.IsZero() {
		reservation.ReservationDate = model.NewDate(now)
	}
	reservation.ReservationTime = model.DefaultReservationTime
	if r.Time != "" {
		t, err := ParseTimeOfDay(r.Time)
		if err != nil {
			return nil, newValidationError("reservation.time", "must be HH:MM")
		}
		reservation.ReservationTime = t
	}

	if reservation.CustomerName == "" {
		reservation.CustomerName = account.DisplayName
	}
	if reservation.CustomerEmail == "" {
		reservation.CustomerEmail = account.Email
	}
	if reservation.CustomerPhone == "" {
		reservation.CustomerPhone = account.Phone
	}
	reservation.Status = model.ReservationPending
	reservation.CreatedAt = now
	reservation.AccountID = account.ID
	return reservation, nil
}

// warnIfHeld logs a double booking; slot collisions are advisory only.
func (s *Service) warnIfHeld(ctx context.Context, r *model.TableReservation) {
	orders, err := s.store.OrdersAtSlot(ctx, r.ReservationDate, r.ReservationTime)
	if err != nil {
		s.logger.Warn("slot check failed", zap.Error(err))
		return
	}
	for _, table := range HeldTables(orders, r.ReservationDate, r.ReservationTime) {
		if table == r.TableNumber {
			s.logger.Warn("table already reserved for slot",
				zap.String("table", r.TableNumber),
				zap.String("date", r.ReservationDate.String()),
				zap.String("time", r.ReservationTime))
			return
		}
	}
}
