package ordering

import (
	"context"

	"restaurant_ordering/model"
)

// Store persists order aggregates. Implementations return ErrNotFound for
// missing rows and must run fn in Transaction as a single atomic unit.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// CreateOrder inserts the header, its lines and its reservation, if any.
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id uint) (*model.Order, error)
	// LockOrder is GetOrder holding a row lock until the transaction ends.
	LockOrder(ctx context.Context, id uint) (*model.Order, error)
	// UpdateOrder writes header fields only.
	UpdateOrder(ctx context.Context, order *model.Order) error
	ReplaceLines(ctx context.Context, orderID uint, lines []model.OrderLine) ([]model.OrderLine, error)
	UpdateReservationStatus(ctx context.Context, reservationID uint, status model.ReservationStatus) error
	// DeleteOrder removes the header, its lines and its reservation.
	DeleteOrder(ctx context.Context, id uint) error
	GetReservation(ctx context.Context, id uint) (*model.TableReservation, error)

	// ListOrders returns the aggregates of one account, or all when accountID is nil.
	ListOrders(ctx context.Context, accountID *uint) ([]model.Order, error)
	// OrdersAtSlot returns orders whose reservation is at exactly (date, timeOfDay).
	OrdersAtSlot(ctx context.Context, date model.CustomDate, timeOfDay string) ([]model.Order, error)
	MaxOrderID(ctx context.Context) (uint, error)
}

type AccountStore interface {
	CountAccounts(ctx context.Context) (int64, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id uint) (*model.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	// AccountTransaction serialises the count-then-create bootstrap.
	AccountTransaction(ctx context.Context, fn func(tx AccountStore) error) error
}
