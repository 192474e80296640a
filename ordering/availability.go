package ordering

import (
	"context"
	"strings"

	"restaurant_ordering/model"
)

// AvailableTables returns the configured tables not held at (date, timeOfDay).
// An empty date means today. A malformed slot yields ErrInvalidTimeFormat.
// The read takes no lock: two bookings can both see a table as free.
func (s *Service) AvailableTables(ctx context.Context, date, timeOfDay string) ([]string, error) {
	day := model.NewDate(s.clock.Now())
	if strings.TrimSpace(date) != "" {
		parsed, err := model.ParseDate(strings.TrimSpace(date))
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		day = parsed
	}
	slot, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, err
	}
	orders, err := s.store.OrdersAtSlot(ctx, day, slot)
	if err != nil {
		return nil, err
	}
	return FreeTables(s.tables, HeldTables(orders, day, slot)), nil
}

// HeldTables lists tables reserved at the slot by orders that are neither
// cancelled nor completed.
func HeldTables(orders []model.Order, date model.CustomDate, timeOfDay string) []string {
	seen := make(map[string]bool)
	var held []string
	for _, o := range orders {
		if IsTerminal(o.Status) || o.TableReservation == nil {
			continue
		}
		r := o.TableReservation
		if !r.ReservationDate.SameDay(date) || r.ReservationTime != timeOfDay {
			continue
		}
		if !seen[r.TableNumber] {
			seen[r.TableNumber] = true
			held = append(held, r.TableNumber)
		}
	}
	return held
}

// FreeTables is all minus held, in the order of all.
func FreeTables(all, held []string) []string {
	taken := make(map[string]bool, len(held))
	for _, t := range held {
		taken[t] = true
	}
	free := make([]string, 0, len(all))
	for _, t := range all {
		if !taken[t] {
			free = append(free, t)
		}
	}
	return free
}
