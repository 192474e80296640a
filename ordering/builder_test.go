package ordering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
)

func TestCreateOrder_Totals(t *testing.T) {
	tests := []struct {
		name  string
		lines []model.LineRequest
		staff bool
		total string
		count int
	}{
		{"catalog prices", []model.LineRequest{line("Fried Chicken", 2), line("Halo-Halo", 1)}, false, "65.00", 2},
		{"drops blank and non-positive lines", []model.LineRequest{line("Sisig", 1), line("  ", 3), line("Adobo", 0), line("Adobo", -2)}, false, "28.00", 1},
		{"staff price wins", []model.LineRequest{pricedLine("Sisig", 2, "10.50")}, true, "21.00", 1},
		{"staff price of zero", []model.LineRequest{pricedLine("Beef Tapa", 10, "0")}, true, "0.00", 1},
		{"unknown item is free", []model.LineRequest{line("Mystery Dish", 3), line("Spaghetti", 1)}, false, "20.00", 2},
		{"quantity at the limit", []model.LineRequest{line("Halo-Halo", 100)}, false, "1500.00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			by := f.customer
			if tt.staff {
				by = f.admin
			}
			order := f.create(t, simpleOrder(tt.lines...), by)
			if got := order.TotalPrice.StringFixed(2); got != tt.total {
				t.Errorf("total = %s, want %s", got, tt.total)
			}
			if len(order.Lines) != tt.count {
				t.Errorf("lines = %d, want %d", len(order.Lines), tt.count)
			}
			if order.Status != model.OrderPending || order.PaymentConfirmed {
				t.Errorf("new order should be Pending and unpaid, got %s/%v", order.Status, order.PaymentConfirmed)
			}
			if order.AccountID != by.ID {
				t.Errorf("account = %d, want %d", order.AccountID, by.ID)
			}
			if order.ReceiptToken == "" {
				t.Error("receipt token not set")
			}
		})
	}
}

func TestCreateOrder_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		req   model.OrderRequest
		staff bool
		field string
	}{
		{"quantity over limit", simpleOrder(line("Sisig", 101)), false, "lines[0].quantity"},
		{"no usable lines", simpleOrder(line("", 1), line("Sisig", 0)), false, "lines"},
		{"no lines at all", simpleOrder(), false, "lines"},
		{"blank customer", model.OrderRequest{CustomerName: "   ", PaymentMethod: model.PaymentCash, Lines: []model.LineRequest{line("Sisig", 1)}}, false, "customerName"},
		{"unknown payment method", model.OrderRequest{CustomerName: "Ana", PaymentMethod: "Bitcoin", Lines: []model.LineRequest{line("Sisig", 1)}}, false, "paymentMethod"},
		{"bad reservation time", withTable(simpleOrder(line("Sisig", 1)), "T1", "", "7pm"), false, "reservation.time"},
		{"customer sets a price", simpleOrder(pricedLine("Beef Tapa", 10, "0")), false, "lines[0].unitPrice"},
		{"negative price", simpleOrder(pricedLine("Sisig", 1, "-1")), true, "lines[0].unitPrice"},
		{"price finer than cents", simpleOrder(line("Adobo", 1), pricedLine("Sisig", 1, "10.505")), true, "lines[1].unitPrice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			by := f.customer
			if tt.staff {
				by = f.admin
			}
			_, err := f.svc.CreateOrder(context.Background(), tt.req, by)
			if !errors.Is(err, ordering.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve *ordering.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, ok := ve.Fields[tt.field]; !ok {
				t.Errorf("fields %v missing %q", ve.Fields, tt.field)
			}
			orders, _ := f.store.ListOrders(context.Background(), nil)
			if len(orders) != 0 {
				t.Errorf("nothing should be stored, got %d orders", len(orders))
			}
		})
	}
}

func TestCreateOrder_ReservationDefaults(t *testing.T) {
	f := newFixture(t)
	order := f.create(t, withTable(simpleOrder(line("Adobo", 1)), " T2 ", "", ""), f.customer)

	r := order.TableReservation
	if r == nil || order.TableReservationID == nil {
		t.Fatal("expected a reservation")
	}
	if r.TableNumber != "T2" {
		t.Errorf("table = %q", r.TableNumber)
	}
	if r.PartySize != model.DefaultPartySize {
		t.Errorf("party size = %d", r.PartySize)
	}
	if r.ReservationDate.String() != "2026-05-02" {
		t.Errorf("date = %s", r.ReservationDate)
	}
	if r.ReservationTime != "18:00" {
		t.Errorf("time = %s", r.ReservationTime)
	}
	if r.Status != model.ReservationPending {
		t.Errorf("status = %s", r.Status)
	}
	if r.CustomerName != "Ana Cruz" || r.CustomerEmail != "ana@example.com" || r.CustomerPhone != "0917" {
		t.Errorf("contact not copied from account: %+v", r)
	}
}

func TestCreateOrder_BlankTableMeansNoReservation(t *testing.T) {
	f := newFixture(t)
	order := f.create(t, withTable(simpleOrder(line("Adobo", 1)), "  ", "", "19:00"), f.customer)
	if order.HasReservation() || order.TableReservationID != nil {
		t.Fatal("blank table number should not reserve")
	}
}

func TestCreateOrder_DoubleBookingIsAllowed(t *testing.T) {
	f := newFixture(t)
	req := withTable(simpleOrder(line("Adobo", 1)), "T1", "2026-05-03", "19:00")
	f.create(t, req, f.customer)
	second := f.create(t, req, f.other)
	if !second.HasReservation() {
		t.Fatal("second booking of the same slot should still be stored")
	}
}

func TestCreateOrder_Numbering(t *testing.T) {
	f := newFixture(t)
	want := []string{"ORD-1001", "ORD-1002", "ORD-1003"}
	for i, w := range want {
		order := f.create(t, simpleOrder(line("Sisig", 1)), f.customer)
		if order.OrderNo != w {
			t.Errorf("order %d: number = %s, want %s", i, order.OrderNo, w)
		}
	}
	if got := f.events.Types(); len(got) != 3 || got[0] != ordering.EventOrderCreated {
		t.Errorf("events = %v", got)
	}
}

func TestFormatOrderNumber(t *testing.T) {
	tests := map[uint64]string{1: "ORD-0001", 1001: "ORD-1001", 12345: "ORD-12345"}
	for n, want := range tests {
		if got := ordering.FormatOrderNumber(n); got != want {
			t.Errorf("FormatOrderNumber(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestEditOrder_KeepsSnapshotPrices(t *testing.T) {
	f := newFixture(t)
	order := f.create(t, simpleOrder(pricedLine("Sisig", 1, "50"), line("Adobo", 1)), f.admin)

	f.clock.Advance(15 * time.Minute)
	edited, err := f.svc.EditOrder(context.Background(), order.ID, model.OrderRequest{
		CustomerName:  "Ana C.",
		PaymentMethod: model.PaymentCash,
		Lines:         []model.LineRequest{line("Sisig", 2), line("Spaghetti", 1)},
	}, f.admin)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	// Sisig keeps its 50.00 snapshot, Spaghetti is priced from the menu
	if got := edited.TotalPrice.StringFixed(2); got != "120.00" {
		t.Errorf("total = %s, want 120.00", got)
	}
	stored, _ := f.svc.GetOrder(context.Background(), order.ID, f.admin)
	if stored.CustomerName != "Ana C." || stored.PaymentMethod != model.PaymentCash || len(stored.Lines) != 2 {
		t.Errorf("edit not stored: %+v", stored)
	}
	if stored.OrderNo != order.OrderNo || !stored.OrderedAt.Equal(order.OrderedAt) {
		t.Error("identity fields changed on edit")
	}
	if want := testStart.Add(15 * time.Minute); !stored.UpdatedAt.Equal(want) {
		t.Errorf("updatedAt = %s, want %s", stored.UpdatedAt, want)
	}
}

func TestEditOrder_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.create(t, simpleOrder(line("Sisig", 1)), f.customer)

	if _, err := f.svc.EditOrder(ctx, order.ID, simpleOrder(line("Sisig", 2)), f.other); !errors.Is(err, ordering.ErrForbidden) {
		t.Errorf("other customer: got %v", err)
	}
	if _, err := f.svc.EditOrder(ctx, 999, simpleOrder(line("Sisig", 2)), f.admin); !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("missing order: got %v", err)
	}
	if _, err := f.svc.EditOrder(ctx, order.ID, simpleOrder(pricedLine("Sisig", 2, "1")), f.customer); !errors.Is(err, ordering.ErrValidation) {
		t.Errorf("customer price on edit: got %v", err)
	}
	if _, err := f.svc.EditOrder(ctx, order.ID, simpleOrder(line("Sisig", 2)), f.customer); err != nil {
		t.Fatalf("owner edit before payment: %v", err)
	}

	if _, err := f.svc.ConfirmPayment(ctx, order.ID, "REF-1", f.admin); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := f.svc.EditOrder(ctx, order.ID, simpleOrder(line("Sisig", 3), line("Beef Tapa", 50)), f.customer); !errors.Is(err, ordering.ErrAlreadyConfirmed) {
		t.Errorf("owner edit after payment: got %v", err)
	}
	stored, _ := f.svc.GetOrder(ctx, order.ID, f.customer)
	if got := stored.TotalPrice.StringFixed(2); got != "56.00" {
		t.Errorf("paid total changed to %s", got)
	}
	req := simpleOrder(line("Sisig", 2))
	req.PaymentMethod = model.PaymentCash
	if _, err := f.svc.EditOrder(ctx, order.ID, req, f.admin); !errors.Is(err, ordering.ErrAlreadyConfirmed) {
		t.Errorf("method change after payment: got %v", err)
	}
	if _, err := f.svc.EditOrder(ctx, order.ID, simpleOrder(line("Sisig", 3)), f.admin); err != nil {
		t.Errorf("staff edit with the same method after payment: %v", err)
	}

	for _, status := range []model.OrderStatus{model.OrderCompleted, model.OrderCancelled} {
		o := f.create(t, simpleOrder(line("Adobo", 1)), f.customer)
		if err := f.svc.SetStatus(ctx, o.ID, status); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
		if _, err := f.svc.EditOrder(ctx, o.ID, simpleOrder(line("Adobo", 2)), f.customer); !errors.Is(err, ordering.ErrInvalidTransition) {
			t.Errorf("owner edit of %s order: got %v", status, err)
		}
		if _, err := f.svc.EditOrder(ctx, o.ID, simpleOrder(line("Adobo", 2)), f.admin); err != nil {
			t.Errorf("staff edit of %s order: %v", status, err)
		}
	}
}

func TestEditOrder_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.create(t, simpleOrder(line("Sisig", 1), line("Adobo", 1)), f.customer)

	boom := errors.New("disk full")
	f.store.FailOn("UpdateOrder", boom)
	_, err := f.svc.EditOrder(ctx, order.ID, simpleOrder(line("Halo-Halo", 4)), f.customer)
	f.store.FailOn("UpdateOrder", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}

	stored, err := f.svc.GetOrder(ctx, order.ID, f.customer)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Lines) != 2 || stored.Lines[0].ItemName != "Sisig" {
		t.Errorf("lines changed despite rollback: %+v", stored.Lines)
	}
	if !stored.TotalPrice.Equal(order.TotalPrice) {
		t.Errorf("total changed despite rollback: %s", stored.TotalPrice)
	}
}

func TestDeleteOrder_RemovesAggregate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.create(t, withTable(simpleOrder(line("Sisig", 1)), "T1", "", "19:00"), f.customer)

	if err := f.svc.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.store.GetOrder(ctx, order.ID); !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("order still present: %v", err)
	}
	if _, err := f.store.GetReservation(ctx, *order.TableReservationID); !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("reservation still present: %v", err)
	}
	if err := f.svc.DeleteOrder(ctx, order.ID); !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("second delete: got %v", err)
	}
	types := f.events.Types()
	if types[len(types)-1] != ordering.EventOrderDeleted {
		t.Errorf("last event = %s", types[len(types)-1])
	}
}
