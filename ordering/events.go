package ordering

import (
	"context"
	"time"

	"restaurant_ordering/model"
)

type EventType string

const (
	EventOrderCreated     EventType = "order.created"
	EventPaymentConfirmed EventType = "order.payment_confirmed"
	EventStatusChanged    EventType = "order.status_changed"
	EventOrderCancelled   EventType = "order.cancelled"
	EventOrderDeleted     EventType = "order.deleted"
)

type Event struct {
	Type       EventType         `json:"type"`
	OrderID    uint              `json:"orderId"`
	OrderNo    string            `json:"orderNo"`
	AccountID  uint              `json:"accountId"`
	Status     model.OrderStatus `json:"status"`
	TotalPrice string            `json:"totalPrice"`
	At         time.Time         `json:"at"`
}

// Publisher fans order events out after commit. Errors never undo the write.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Notifier tells the customer about payment and cancellation.
type Notifier interface {
	PaymentConfirmed(order model.Order)
	OrderCancelled(order model.Order)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type NopNotifier struct{}

func (NopNotifier) PaymentConfirmed(model.Order) {}
func (NopNotifier) OrderCancelled(model.Order)   {}

func newEvent(t EventType, o *model.Order, at time.Time) Event {
	return Event{
		Type:       t,
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		AccountID:  o.AccountID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice.StringFixed(2),
		At:         at,
	}
}
