package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"restaurant_ordering/ordering"

	"github.com/redis/go-redis/v9"
)

// Feed hands out live streams of encoded order events.
type Feed interface {
	Subscribe(ctx context.Context) (<-chan []byte, func() error)
}

// Hub is an in-process Publisher and Feed. Slow subscribers miss events
// instead of blocking the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

var (
	_ ordering.Publisher = (*Hub)(nil)
	_ Feed               = (*Hub)(nil)
)

func NewHub() *Hub {
	return &Hub{subs: make(map[chan []byte]struct{})}
}

func (h *Hub) Publish(_ context.Context, event ordering.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- body:
		default:
		}
	}
	return nil
}

func (h *Hub) Subscribe(ctx context.Context) (<-chan []byte, func() error) {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	stop := func() error {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			close(ch)
			h.mu.Unlock()
		})
		return nil
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ch, stop
}

// RedisFeed reads the live stream from the shared redis channel, so every
// instance sees every order.
type RedisFeed struct {
	Client *redis.Client
}

func (f RedisFeed) Subscribe(ctx context.Context) (<-chan []byte, func() error) {
	return Subscribe(ctx, f.Client)
}
