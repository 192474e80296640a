package ordering

import (
	"context"
	"errors"
	"time"

	"restaurant_ordering/model"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Options struct {
	Store     Store
	Accounts  AccountStore
	Catalog   Catalog
	Clock     Clock
	Tables    []string
	Publisher Publisher
	Notifier  Notifier
	Logger    *zap.Logger
	// PasswordCost is the bcrypt cost for new accounts.
	PasswordCost int
}

// Service is the order aggregate engine. It is safe for concurrent use;
// consistency comes from store transactions, not in-process locks.
type Service struct {
	store        Store
	accounts     AccountStore
	catalog      Catalog
	clock        Clock
	numbers      *Numberer
	tables       []string
	publisher    Publisher
	notifier     Notifier
	logger       *zap.Logger
	passwordCost int
}

func NewService(opts Options) *Service {
	s := &Service{
		store:        opts.Store,
		accounts:     opts.Accounts,
		catalog:      opts.Catalog,
		clock:        opts.Clock,
		numbers:      &Numberer{},
		tables:       append([]string(nil), opts.Tables...),
		publisher:    opts.Publisher,
		notifier:     opts.Notifier,
		logger:       opts.Logger,
		passwordCost: opts.PasswordCost,
	}
	if s.catalog == nil {
		s.catalog = DefaultMenu()
	}
	if s.clock == nil {
		s.clock = SystemClock(nil)
	}
	if s.publisher == nil {
		s.publisher = NopPublisher{}
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.passwordCost == 0 {
		s.passwordCost = bcrypt.DefaultCost
	}
	return s
}

func (s *Service) Catalog() Catalog { return s.catalog }

func (s *Service) Tables() []string {
	return append([]string(nil), s.tables...)
}

func (s *Service) Now() time.Time { return s.clock.Now() }

// authorize is the single ownership/role check for order operations.
func authorize(order *model.Order, account model.Account) error {
	if account.IsAdmin() || order.OwnedBy(account) {
		return nil
	}
	return ErrForbidden
}

func (s *Service) GetOrder(ctx context.Context, id uint, requester model.Account) (*model.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(order, requester); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) publish(ctx context.Context, t EventType, order *model.Order) {
	if err := s.publisher.Publish(ctx, newEvent(t, order, s.clock.Now())); err != nil {
		s.logger.Warn("publish order event failed",
			zap.String("event", string(t)),
			zap.Uint("order_id", order.ID),
			zap.Error(err))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
