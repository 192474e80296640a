package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"restaurant_ordering/ordering"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const Exchange = "orders_topic"

// AMQPPublisher publishes persistent JSON messages on a topic exchange,
// routed by event type.
type AMQPPublisher struct {
	url    string
	logger *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ ordering.Publisher = (*AMQPPublisher)(nil)

func NewAMQPPublisher(url string, logger *zap.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, logger: logger}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", Exchange, err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

// RoutingKey is the key an event type is published under.
func RoutingKey(t ordering.EventType) string {
	return string(t)
}

func (p *AMQPPublisher) Publish(ctx context.Context, event ordering.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		p.logger.Warn("rabbitmq connection lost, reconnecting")
		if err := p.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err = p.ch.PublishWithContext(ctx, Exchange, RoutingKey(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.At,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	p.logger.Debug("order event published",
		zap.String("exchange", Exchange),
		zap.String("routing_key", RoutingKey(event.Type)),
		zap.Int("size", len(body)))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
