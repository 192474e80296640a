package ordering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
)

func TestConfirmPayment(t *testing.T) {
	tests := []struct {
		name        string
		method      model.PaymentMethod
		proof       string
		wantReceipt string
		wantRef     string
	}{
		{"cash records official receipt", model.PaymentCash, " OR-0042 ", "OR-0042", ""},
		{"gcash records reference", model.PaymentGCash, "GC-889", "", "GC-889"},
		{"card records reference", model.PaymentCard, "AUTH-1", "", "AUTH-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := simpleOrder(line("Sisig", 1))
			req.PaymentMethod = tt.method
			order := f.create(t, req, f.customer)
			f.clock.Advance(5 * time.Minute)

			got, err := f.svc.ConfirmPayment(context.Background(), order.ID, tt.proof, f.admin)
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if !got.PaymentConfirmed || got.Status != model.OrderConfirmed {
				t.Errorf("got confirmed=%v status=%s", got.PaymentConfirmed, got.Status)
			}
			if got.OfficialReceiptNo != tt.wantReceipt || got.PaymentReference != tt.wantRef {
				t.Errorf("proof stored as receipt=%q ref=%q", got.OfficialReceiptNo, got.PaymentReference)
			}
			if got.PaymentConfirmedBy != "Admin" {
				t.Errorf("confirmed by %q", got.PaymentConfirmedBy)
			}
			if got.PaymentConfirmedAt == nil || !got.PaymentConfirmedAt.Equal(testStart.Add(5*time.Minute)) {
				t.Errorf("confirmed at %v", got.PaymentConfirmedAt)
			}
			if len(f.notifier.paid) != 1 {
				t.Errorf("notifier calls = %v", f.notifier.paid)
			}
		})
	}
}

func TestConfirmPayment_MissingProof(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := simpleOrder(line("Sisig", 1))
	req.PaymentMethod = model.PaymentCash
	order := f.create(t, req, f.customer)

	if _, err := f.svc.ConfirmPayment(ctx, order.ID, "   ", f.admin); !errors.Is(err, ordering.ErrMissingProof) {
		t.Fatalf("got %v", err)
	}
	stored, _ := f.store.GetOrder(ctx, order.ID)
	if stored.PaymentConfirmed || stored.Status != model.OrderPending {
		t.Errorf("order changed: confirmed=%v status=%s", stored.PaymentConfirmed, stored.Status)
	}
}

func TestConfirmPayment_AlreadyConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.create(t, simpleOrder(line("Sisig", 1)), f.customer)
	first, err := f.svc.ConfirmPayment(ctx, order.ID, "REF-1", f.admin)
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	f.clock.Advance(time.Hour)
	// already-confirmed wins over missing proof
	for _, proof := range []string{"REF-2", ""} {
		if _, err := f.svc.ConfirmPayment(ctx, order.ID, proof, f.other); !errors.Is(err, ordering.ErrAlreadyConfirmed) {
			t.Errorf("proof %q: got %v", proof, err)
		}
	}
	stored, _ := f.store.GetOrder(ctx, order.ID)
	if stored.PaymentReference != "REF-1" || stored.PaymentConfirmedBy != first.PaymentConfirmedBy ||
		!stored.PaymentConfirmedAt.Equal(*first.PaymentConfirmedAt) {
		t.Errorf("confirmation fields changed: %+v", stored)
	}
}

func TestConfirmPayment_KeepsLaterStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.create(t, simpleOrder(line("Sisig", 1)), f.customer)
	if err := f.svc.SetStatus(ctx, order.ID, model.OrderCompleted); err != nil {
		t.Fatal(err)
	}
	got, err := f.svc.ConfirmPayment(ctx, order.ID, "REF-9", f.admin)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got.Status != model.OrderCompleted {
		t.Errorf("status = %s, want Completed", got.Status)
	}
}

func TestConfirmPayment_NotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.ConfirmPayment(context.Background(), 77, "x", f.admin); !errors.Is(err, ordering.ErrNotFound) {
		t.Errorf("got %v", err)
	}
}
