package ordering

import (
	"context"
	"sort"
	"strings"
	"time"

	"restaurant_ordering/model"

	"github.com/shopspring/decimal"
)

const (
	DateToday        = "today"
	DateLast7Days    = "last7days"
	DateLast30Days   = "last30days"
	DateUnrestricted = "unrestricted"

	PaymentConfirmed   = "confirmed"
	PaymentUnconfirmed = "unconfirmed"

	WithReservation    = "withReservation"
	WithoutReservation = "withoutReservation"
	EitherReservation  = "either"
)

// Scope restricts a listing to one account; nil AccountID means every order.
type Scope struct {
	AccountID *uint
}

func AllOrders() Scope { return Scope{} }

func AccountOrders(id uint) Scope { return Scope{AccountID: &id} }

// ScopeFor is the scope an account may see.
func ScopeFor(account model.Account) Scope {
	if account.IsAdmin() {
		return AllOrders()
	}
	return AccountOrders(account.ID)
}

func (s *Service) ListOrders(ctx context.Context, scope Scope, filter model.OrderFilter) ([]model.Order, error) {
	if err := ValidateStruct(filter); err != nil {
		return nil, err
	}
	orders, err := s.store.ListOrders(ctx, scope.AccountID)
	if err != nil {
		return nil, err
	}
	return FilterOrders(orders, filter, s.clock.Now()), nil
}

func (s *Service) Dashboard(ctx context.Context, filter model.OrderFilter) (model.DashboardSummary, []model.Order, error) {
	if err := ValidateStruct(filter); err != nil {
		return model.DashboardSummary{}, nil, err
	}
	all, err := s.store.ListOrders(ctx, nil)
	if err != nil {
		return model.DashboardSummary{}, nil, err
	}
	now := s.clock.Now()
	return Summarize(all, now), FilterOrders(all, filter, now), nil
}

// FilterOrders applies every filter conjunctively and sorts newest first,
// ties broken by descending ID. The input slice is not modified.
func FilterOrders(orders []model.Order, f model.OrderFilter, now time.Time) []model.Order {
	search := strings.ToLower(strings.TrimSpace(f.SearchText))
	since, bounded := rangeStart(f.DateRange, now)

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		switch f.PaymentStatus {
		case PaymentConfirmed:
			if !o.PaymentConfirmed {
				continue
			}
		case PaymentUnconfirmed:
			if o.PaymentConfirmed {
				continue
			}
		}
		if bounded && o.OrderedAt.Before(since) {
			continue
		}
		switch f.Reservation {
		case WithReservation:
			if !o.HasReservation() {
				continue
			}
		case WithoutReservation:
			if o.HasReservation() {
				continue
			}
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OrderedAt.Equal(out[j].OrderedAt) {
			return out[i].OrderedAt.After(out[j].OrderedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func rangeStart(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case DateToday:
		return startOfDay(now), true
	case DateLast7Days:
		return now.AddDate(0, 0, -7), true
	case DateLast30Days:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// search is already lower-cased.
func matchesSearch(o model.Order, search string) bool {
	if strings.Contains(strings.ToLower(o.OrderNo), search) ||
		strings.Contains(strings.ToLower(o.CustomerName), search) {
		return true
	}
	for _, line := range o.Lines {
		if strings.Contains(strings.ToLower(line.ItemName), search) {
			return true
		}
	}
	return false
}

// Summarize computes the admin dashboard counters over every order.
func Summarize(orders []model.Order, now time.Time) model.DashboardSummary {
	today := model.NewDate(now)
	summary := model.DashboardSummary{TotalOrders: len(orders), TotalRevenue: decimal.Zero}
	for _, o := range orders {
		if o.Status == model.OrderPending {
			summary.PendingOrders++
		}
		if o.PaymentConfirmed && o.Status != model.OrderCancelled {
			summary.TotalRevenue = summary.TotalRevenue.Add(o.TotalPrice)
		}
		if r := o.TableReservation; r != nil && o.Status != model.OrderCancelled &&
			r.Status != model.ReservationCancelled && r.ReservationDate.SameDay(today) {
			summary.TodayReservations++
		}
	}
	return summary
}
