package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCustomDate_JSON(t *testing.T) {
	var r ReservationRequest
	if err := json.Unmarshal([]byte(`{"date":"2026-05-03"}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Date.String() != "2026-05-03" {
		t.Errorf("date = %s", r.Date)
	}

	tests := []string{`{"date":""}`, `{"date":null}`, `{}`}
	for _, in := range tests {
		var r ReservationRequest
		if err := json.Unmarshal([]byte(in), &r); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if !r.Date.IsZero() {
			t.Errorf("%s: expected zero date, got %s", in, r.Date)
		}
	}

	if err := json.Unmarshal([]byte(`{"date":"03/05/2026"}`), &r); err == nil {
		t.Error("expected error for wrong layout")
	}

	out, _ := json.Marshal(struct {
		D CustomDate `json:"d"`
		Z CustomDate `json:"z"`
	}{D: NewDate(time.Date(2026, 5, 3, 23, 59, 0, 0, time.UTC))})
	if string(out) != `{"d":"2026-05-03","z":null}` {
		t.Errorf("marshal = %s", out)
	}
}

func TestCustomDate_Scan(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC), "2026-01-02"},
		{"2026-01-03", "2026-01-03"},
		{[]byte("2026-01-04"), "2026-01-04"},
		{nil, ""},
	}
	for _, tt := range tests {
		var d CustomDate
		if err := d.Scan(tt.in); err != nil {
			t.Fatalf("scan %v: %v", tt.in, err)
		}
		if d.String() != tt.want {
			t.Errorf("scan %v = %q, want %q", tt.in, d.String(), tt.want)
		}
	}
	var d CustomDate
	if err := d.Scan(42); err == nil {
		t.Error("expected error for int")
	}
}

func TestCustomDate_SameDay(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	a := NewDate(time.Date(2026, 5, 3, 1, 0, 0, 0, manila))
	b, _ := ParseDate("2026-05-03")
	if !a.SameDay(b) {
		t.Errorf("%s and %s should be the same day", a, b)
	}
}

func TestOrder_RecalculateTotal(t *testing.T) {
	o := Order{Lines: []OrderLine{
		{Quantity: 3, UnitPrice: mustDecimal("0.10")},
		{Quantity: 1, UnitPrice: mustDecimal("19.99")},
	}}
	o.RecalculateTotal()
	if o.TotalPrice.StringFixed(2) != "20.29" {
		t.Errorf("total = %s", o.TotalPrice)
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
