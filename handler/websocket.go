package handler

import (
	"context"

	"restaurant_ordering/model"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// LiveDashboard sends the current summary, then every order event as it
// happens, followed by a refreshed summary.
func (h *Handler) LiveDashboard(c *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.Close()
	}()

	// reader goroutine notices the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeSummary(ctx, c); err != nil {
		return
	}
	if h.feed == nil {
		<-ctx.Done()
		return
	}

	stream, stop := h.feed.Subscribe(ctx)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-stream:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
			if err := h.writeSummary(ctx, c); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeSummary(ctx context.Context, c *websocket.Conn) error {
	summary, _, err := h.svc.Dashboard(ctx, model.OrderFilter{})
	if err != nil {
		h.logger.Warn("live dashboard summary", zap.Error(err))
		return err
	}
	return c.WriteJSON(map[string]any{"type": "summary", "summary": summary})
}
