package ordering

import (
	"context"
	"fmt"
	"sync/atomic"
)

const orderNumberBase = 1001

// Numberer issues human readable order numbers. Numbers are labels; two
// processes may hand out the same one.
type Numberer struct {
	last atomic.Uint64
}

func (n *Numberer) Next(ctx context.Context, store Store) (string, error) {
	maxID, err := store.MaxOrderID(ctx)
	if err != nil {
		return "", fmt.Errorf("read max order id: %w", err)
	}
	candidate := uint64(maxID) + orderNumberBase
	for {
		last := n.last.Load()
		next := candidate
		if last >= next {
			next = last + 1
		}
		if n.last.CompareAndSwap(last, next) {
			return FormatOrderNumber(next), nil
		}
	}
}

func FormatOrderNumber(n uint64) string {
	return fmt.Sprintf("ORD-%04d", n)
}
