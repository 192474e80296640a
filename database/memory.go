package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"
)

// MemoryStore is an in-process Store. Transactions work on a copy of the
// data that replaces the original only when fn succeeds and ctx is live.
type MemoryStore struct {
	mu    *sync.Mutex
	state **memState
	tx    *memState // non-nil inside a transaction
	fail  *failures
}

type memState struct {
	orders       map[uint]model.Order
	lines        map[uint][]model.OrderLine
	reservations map[uint]model.TableReservation
	accounts     map[uint]model.Account
	nextOrder    uint
	nextLine     uint
	nextReserve  uint
	nextAccount  uint
}

type failures struct {
	mu  sync.Mutex
	ops map[string]error
}

var (
	_ ordering.Store        = (*MemoryStore)(nil)
	_ ordering.AccountStore = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	st := &memState{
		orders:       map[uint]model.Order{},
		lines:        map[uint][]model.OrderLine{},
		reservations: map[uint]model.TableReservation{},
		accounts:     map[uint]model.Account{},
	}
	return &MemoryStore{
		mu:    &sync.Mutex{},
		state: &st,
		fail:  &failures{ops: map[string]error{}},
	}
}

// FailOn makes the named operation return err until cleared with a nil err.
func (s *MemoryStore) FailOn(op string, err error) {
	s.fail.mu.Lock()
	defer s.fail.mu.Unlock()
	if err == nil {
		delete(s.fail.ops, op)
		return
	}
	s.fail.ops[op] = err
}

func (s *MemoryStore) failure(op string) error {
	s.fail.mu.Lock()
	defer s.fail.mu.Unlock()
	return s.fail.ops[op]
}

func (st *memState) clone() *memState {
	c := &memState{
		orders:       make(map[uint]model.Order, len(st.orders)),
		lines:        make(map[uint][]model.OrderLine, len(st.lines)),
		reservations: make(map[uint]model.TableReservation, len(st.reservations)),
		accounts:     make(map[uint]model.Account, len(st.accounts)),
		nextOrder:    st.nextOrder,
		nextLine:     st.nextLine,
		nextReserve:  st.nextReserve,
		nextAccount:  st.nextAccount,
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, v := range st.lines {
		c.lines[k] = append([]model.OrderLine(nil), v...)
	}
	for k, v := range st.reservations {
		c.reservations[k] = v
	}
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	return c
}

// run calls fn with the state it may read and write.
func (s *MemoryStore) run(op string, fn func(st *memState) error) error {
	if err := s.failure(op); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// single calls are committed only on success, like one-statement transactions
	work := (*s.state).clone()
	if err := fn(work); err != nil {
		return err
	}
	*s.state = work
	return nil
}

func (s *MemoryStore) transaction(ctx context.Context, fn func(tx *MemoryStore) error) error {
	if s.tx != nil {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := (*s.state).clone()
	if err := fn(&MemoryStore{mu: s.mu, state: s.state, tx: work, fail: s.fail}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	*s.state = work
	return nil
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx ordering.Store) error) error {
	return s.transaction(ctx, func(tx *MemoryStore) error { return fn(tx) })
}

func (s *MemoryStore) AccountTransaction(ctx context.Context, fn func(tx ordering.AccountStore) error) error {
	return s.transaction(ctx, func(tx *MemoryStore) error { return fn(tx) })
}

func (st *memState) assemble(header model.Order) model.Order {
	order := header
	order.Lines = append([]model.OrderLine(nil), st.lines[header.ID]...)
	order.TableReservation = nil
	if header.TableReservationID != nil {
		if r, ok := st.reservations[*header.TableReservationID]; ok {
			order.TableReservation = &r
		}
	}
	if header.PaymentConfirmedAt != nil {
		at := *header.PaymentConfirmedAt
		order.PaymentConfirmedAt = &at
	}
	return order
}

func header(order *model.Order) model.Order {
	h := *order
	h.Lines = nil
	h.TableReservation = nil
	if order.PaymentConfirmedAt != nil {
		at := *order.PaymentConfirmedAt
		h.PaymentConfirmedAt = &at
	}
	return h
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *model.Order) error {
	return s.run("CreateOrder", func(st *memState) error {
		if r := order.TableReservation; r != nil {
			st.nextReserve++
			r.ID = st.nextReserve
			st.reservations[r.ID] = *r
			id := r.ID
			order.TableReservationID = &id
		}
		st.nextOrder++
		order.ID = st.nextOrder
		if order.CreatedAt.IsZero() {
			order.CreatedAt = order.OrderedAt
		}
		if order.UpdatedAt.IsZero() {
			order.UpdatedAt = order.CreatedAt
		}
		for i := range order.Lines {
			st.nextLine++
			order.Lines[i].ID = st.nextLine
			order.Lines[i].OrderID = order.ID
		}
		st.lines[order.ID] = append([]model.OrderLine(nil), order.Lines...)
		st.orders[order.ID] = header(order)
		return nil
	})
}

func (s *MemoryStore) GetOrder(_ context.Context, id uint) (*model.Order, error) {
	var out model.Order
	err := s.run("GetOrder", func(st *memState) error {
		h, ok := st.orders[id]
		if !ok {
			return fmt.Errorf("order %d: %w", id, ordering.ErrNotFound)
		}
		out = st.assemble(h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LockOrder needs no lock here: transactions are already serialised.
func (s *MemoryStore) LockOrder(ctx context.Context, id uint) (*model.Order, error) {
	return s.GetOrder(ctx, id)
}

func (s *MemoryStore) UpdateOrder(_ context.Context, order *model.Order) error {
	return s.run("UpdateOrder", func(st *memState) error {
		current, ok := st.orders[order.ID]
		if !ok {
			return fmt.Errorf("update order %d: %w", order.ID, ordering.ErrNotFound)
		}
		h := header(order)
		// identity and creation fields are immutable
		h.OrderNo = current.OrderNo
		h.AccountID = current.AccountID
		h.OrderedAt = current.OrderedAt
		h.CreatedAt = current.CreatedAt
		h.ReceiptToken = current.ReceiptToken
		h.TableReservationID = current.TableReservationID
		if h.UpdatedAt.IsZero() {
			h.UpdatedAt = time.Now()
		}
		st.orders[order.ID] = h
		return nil
	})
}

func (s *MemoryStore) ReplaceLines(_ context.Context, orderID uint, lines []model.OrderLine) ([]model.OrderLine, error) {
	saved := make([]model.OrderLine, len(lines))
	err := s.run("ReplaceLines", func(st *memState) error {
		if _, ok := st.orders[orderID]; !ok {
			return fmt.Errorf("order %d: %w", orderID, ordering.ErrNotFound)
		}
		for i, line := range lines {
			st.nextLine++
			line.ID = st.nextLine
			line.OrderID = orderID
			saved[i] = line
		}
		st.lines[orderID] = append([]model.OrderLine(nil), saved...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *MemoryStore) UpdateReservationStatus(_ context.Context, reservationID uint, status model.ReservationStatus) error {
	return s.run("UpdateReservationStatus", func(st *memState) error {
		r, ok := st.reservations[reservationID]
		if !ok {
			return fmt.Errorf("reservation %d: %w", reservationID, ordering.ErrNotFound)
		}
		r.Status = status
		st.reservations[reservationID] = r
		return nil
	})
}

func (s *MemoryStore) DeleteOrder(_ context.Context, id uint) error {
	return s.run("DeleteOrder", func(st *memState) error {
		h, ok := st.orders[id]
		if !ok {
			return fmt.Errorf("order %d: %w", id, ordering.ErrNotFound)
		}
		delete(st.lines, id)
		delete(st.orders, id)
		if h.TableReservationID != nil {
			delete(st.reservations, *h.TableReservationID)
		}
		return nil
	})
}

func (s *MemoryStore) GetReservation(_ context.Context, id uint) (*model.TableReservation, error) {
	var out model.TableReservation
	err := s.run("GetReservation", func(st *memState) error {
		r, ok := st.reservations[id]
		if !ok {
			return fmt.Errorf("reservation %d: %w", id, ordering.ErrNotFound)
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MemoryStore) ListOrders(_ context.Context, accountID *uint) ([]model.Order, error) {
	var out []model.Order
	err := s.run("ListOrders", func(st *memState) error {
		for _, h := range st.orders {
			if accountID != nil && h.AccountID != *accountID {
				continue
			}
			out = append(out, st.assemble(h))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) OrdersAtSlot(_ context.Context, date model.CustomDate, timeOfDay string) ([]model.Order, error) {
	var out []model.Order
	err := s.run("OrdersAtSlot", func(st *memState) error {
		for _, h := range st.orders {
			if h.TableReservationID == nil {
				continue
			}
			r, ok := st.reservations[*h.TableReservationID]
			if !ok || !r.ReservationDate.SameDay(date) || r.ReservationTime != timeOfDay {
				continue
			}
			out = append(out, st.assemble(h))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) MaxOrderID(_ context.Context) (uint, error) {
	var max uint
	err := s.run("MaxOrderID", func(st *memState) error {
		for id := range st.orders {
			if id > max {
				max = id
			}
		}
		return nil
	})
	return max, err
}

func (s *MemoryStore) CountAccounts(_ context.Context) (int64, error) {
	var n int64
	err := s.run("CountAccounts", func(st *memState) error {
		n = int64(len(st.accounts))
		return nil
	})
	return n, err
}

func (s *MemoryStore) CreateAccount(_ context.Context, account *model.Account) error {
	return s.run("CreateAccount", func(st *memState) error {
		for _, a := range st.accounts {
			if a.Email == account.Email {
				return ordering.ErrEmailTaken
			}
		}
		st.nextAccount++
		account.ID = st.nextAccount
		st.accounts[account.ID] = *account
		return nil
	})
}

func (s *MemoryStore) GetAccount(_ context.Context, id uint) (*model.Account, error) {
	var out model.Account
	err := s.run("GetAccount", func(st *memState) error {
		a, ok := st.accounts[id]
		if !ok {
			return fmt.Errorf("account %d: %w", id, ordering.ErrNotFound)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MemoryStore) FindAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	var out *model.Account
	err := s.run("FindAccountByEmail", func(st *memState) error {
		for _, a := range st.accounts {
			if a.Email == email {
				found := a
				out = &found
				return nil
			}
		}
		return fmt.Errorf("account %s: %w", email, ordering.ErrNotFound)
	})
	return out, err
}
