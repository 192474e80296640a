package helper

import (
	"testing"
	"time"

	"restaurant_ordering/model"
)

func TestStalePending(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{DTO: model.DTO{ID: 1}, Status: model.OrderPending, OrderedAt: now.Add(-45 * time.Minute)},
		{DTO: model.DTO{ID: 2}, Status: model.OrderPending, OrderedAt: now.Add(-10 * time.Minute)},
		{DTO: model.DTO{ID: 3}, Status: model.OrderPending, OrderedAt: now.Add(-2 * time.Hour), PaymentConfirmed: true},
		{DTO: model.DTO{ID: 4}, Status: model.OrderConfirmed, OrderedAt: now.Add(-2 * time.Hour)},
		{DTO: model.DTO{ID: 5}, Status: model.OrderPending, OrderedAt: now.Add(-30 * time.Minute)},
	}
	got := StalePending(orders, now, StalePendingAge)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 5 {
		t.Fatalf("got %+v", got)
	}
}
