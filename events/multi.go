package events

import (
	"context"
	"errors"

	"restaurant_ordering/ordering"
)

// Fanout publishes to every publisher and joins their errors.
type Fanout []ordering.Publisher

func (f Fanout) Publish(ctx context.Context, event ordering.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
