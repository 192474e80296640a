package ordering_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"restaurant_ordering/database"
	"restaurant_ordering/model"
	"restaurant_ordering/ordering"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []ordering.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e ordering.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Types() []ordering.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ordering.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type recordingNotifier struct {
	mu        sync.Mutex
	paid      []string
	cancelled []string
}

func (n *recordingNotifier) PaymentConfirmed(o model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paid = append(n.paid, o.OrderNo)
}

func (n *recordingNotifier) OrderCancelled(o model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, o.OrderNo)
}

type fixture struct {
	svc      *ordering.Service
	store    *database.MemoryStore
	clock    *fakeClock
	events   *recordingPublisher
	notifier *recordingNotifier
	admin    model.Account
	customer model.Account
	other    model.Account
}

var testStart = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    database.NewMemoryStore(),
		clock:    &fakeClock{now: testStart},
		events:   &recordingPublisher{},
		notifier: &recordingNotifier{},
	}
	f.svc = ordering.NewService(ordering.Options{
		Store:        f.store,
		Accounts:     f.store,
		Clock:        f.clock,
		Tables:       []string{"T1", "T2", "T3"},
		Publisher:    f.events,
		Notifier:     f.notifier,
		PasswordCost: bcrypt.MinCost,
	})
	f.admin = f.register(t, "admin@example.com", "Admin")
	f.customer = f.register(t, "ana@example.com", "Ana Cruz")
	f.other = f.register(t, "ben@example.com", "Ben Reyes")
	return f
}

func (f *fixture) register(t *testing.T, email, name string) model.Account {
	t.Helper()
	acc, err := f.svc.RegisterAccount(context.Background(), model.RegisterInput{
		Email:       email,
		DisplayName: name,
		Phone:       "0917",
		Password:    "secret123",
		Confirm:     "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return *acc
}

func (f *fixture) create(t *testing.T, req model.OrderRequest, by model.Account) *model.Order {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), req, by)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func line(name string, qty int) model.LineRequest {
	return model.LineRequest{ItemName: name, Quantity: qty}
}

func pricedLine(name string, qty int, price string) model.LineRequest {
	p := decimal.RequireFromString(price)
	return model.LineRequest{ItemName: name, Quantity: qty, UnitPrice: &p}
}

func simpleOrder(lines ...model.LineRequest) model.OrderRequest {
	return model.OrderRequest{
		CustomerName:  "Ana Cruz",
		PaymentMethod: model.PaymentGCash,
		Lines:         lines,
	}
}

func withTable(req model.OrderRequest, table, date, at string) model.OrderRequest {
	r := &model.ReservationRequest{TableNumber: table, Time: at}
	if date != "" {
		d, err := model.ParseDate(date)
		if err != nil {
			panic(err)
		}
		r.Date = d
	}
	req.Reservation = r
	return req
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
