package events

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant_ordering/ordering"

	"github.com/redis/go-redis/v9"
)

// Channel is the pub/sub channel order events are published on.
const Channel = "orders"

type RedisPublisher struct {
	client  *redis.Client
	channel string
}

var _ ordering.Publisher = (*RedisPublisher)(nil)

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: Channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event ordering.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.channel, err)
	}
	return nil
}

// Subscribe streams raw event payloads until ctx is done.
func Subscribe(ctx context.Context, client *redis.Client) (<-chan []byte, func() error) {
	pubsub := client.Subscribe(ctx, Channel)
	out := make(chan []byte)
	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, pubsub.Close
}
