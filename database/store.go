package database

import (
	"context"
	"errors"
	"fmt"

	"restaurant_ordering/model"
	"restaurant_ordering/ordering"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps order aggregates in postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var (
	_ ordering.Store        = (*GormStore)(nil)
	_ ordering.AccountStore = (*GormStore)(nil)
)

func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ordering.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx ordering.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) aggregate(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id") }).
		Preload("TableReservation")
}

func (s *GormStore) CreateOrder(ctx context.Context, order *model.Order) error {
	db := s.db.WithContext(ctx)
	if r := order.TableReservation; r != nil {
		if err := db.Create(r).Error; err != nil {
			return translate(err, "create reservation")
		}
		order.TableReservationID = &r.ID
	}
	if err := db.Omit("TableReservation").Create(order).Error; err != nil {
		return translate(err, "create order")
	}
	return nil
}

func (s *GormStore) GetOrder(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := s.aggregate(ctx).First(&order, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("order %d", id))
	}
	return &order, nil
}

func (s *GormStore) LockOrder(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	if err := s.aggregate(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("order %d", id))
	}
	return &order, nil
}

var orderHeaderColumns = []string{
	"customer_name", "status", "payment_method", "total_price",
	"payment_confirmed", "payment_confirmed_at", "payment_confirmed_by",
	"official_receipt_no", "payment_reference", "updated_at",
}

func (s *GormStore) UpdateOrder(ctx context.Context, order *model.Order) error {
	res := s.db.WithContext(ctx).
		Model(order).
		Select(orderHeaderColumns).
		Omit(clause.Associations).
		Updates(order)
	if res.Error != nil {
		return translate(res.Error, "update order")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update order %d: %w", order.ID, ordering.ErrNotFound)
	}
	return nil
}

func (s *GormStore) ReplaceLines(ctx context.Context, orderID uint, lines []model.OrderLine) ([]model.OrderLine, error) {
	db := s.db.WithContext(ctx)
	if err := db.Where("order_id = ?", orderID).Delete(&model.OrderLine{}).Error; err != nil {
		return nil, translate(err, "delete lines")
	}
	saved := make([]model.OrderLine, len(lines))
	for i, line := range lines {
		line.ID = 0
		line.OrderID = orderID
		saved[i] = line
	}
	if len(saved) > 0 {
		if err := db.Create(&saved).Error; err != nil {
			return nil, translate(err, "create lines")
		}
	}
	return saved, nil
}

func (s *GormStore) UpdateReservationStatus(ctx context.Context, reservationID uint, status model.ReservationStatus) error {
	res := s.db.WithContext(ctx).
		Model(&model.TableReservation{}).
		Where("id = ?", reservationID).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error, "update reservation")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reservation %d: %w", reservationID, ordering.ErrNotFound)
	}
	return nil
}

func (s *GormStore) DeleteOrder(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)
	var order model.Order
	if err := db.Select("id", "table_reservation_id").First(&order, id).Error; err != nil {
		return translate(err, fmt.Sprintf("order %d", id))
	}
	if err := db.Where("order_id = ?", id).Delete(&model.OrderLine{}).Error; err != nil {
		return translate(err, "delete lines")
	}
	if err := db.Delete(&model.Order{}, id).Error; err != nil {
		return translate(err, "delete order")
	}
	// the order row referenced the reservation, so it has to go first
	if order.TableReservationID != nil {
		if err := db.Delete(&model.TableReservation{}, *order.TableReservationID).Error; err != nil {
			return translate(err, "delete reservation")
		}
	}
	return nil
}

func (s *GormStore) GetReservation(ctx context.Context, id uint) (*model.TableReservation, error) {
	var r model.TableReservation
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("reservation %d", id))
	}
	return &r, nil
}

func (s *GormStore) ListOrders(ctx context.Context, accountID *uint) ([]model.Order, error) {
	query := s.aggregate(ctx).Order("ordered_at desc, id desc")
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, translate(err, "list orders")
	}
	return orders, nil
}

func (s *GormStore) OrdersAtSlot(ctx context.Context, date model.CustomDate, timeOfDay string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("TableReservation").
		Joins("JOIN table_reservations ON table_reservations.id = orders.table_reservation_id").
		Where("table_reservations.reservation_date = ? AND table_reservations.reservation_time = ?", date, timeOfDay).
		Where("orders.status NOT IN ?", []model.OrderStatus{model.OrderCancelled, model.OrderCompleted}).
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "orders at slot")
	}
	return orders, nil
}

func (s *GormStore) MaxOrderID(ctx context.Context) (uint, error) {
	var max uint
	if err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&max).Error; err != nil {
		return 0, translate(err, "max order id")
	}
	return max, nil
}

func (s *GormStore) AccountTransaction(ctx context.Context, fn func(tx ordering.AccountStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// first-account bootstrap reads a count; block concurrent registrations
		if err := tx.Exec("LOCK TABLE accounts IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return translate(err, "lock accounts")
		}
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) CountAccounts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Account{}).Count(&count).Error; err != nil {
		return 0, translate(err, "count accounts")
	}
	return count, nil
}

func (s *GormStore) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ordering.ErrEmailTaken
		}
		return translate(err, "create account")
	}
	return nil
}

func (s *GormStore) GetAccount(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := s.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, translate(err, fmt.Sprintf("account %d", id))
	}
	return &account, nil
}

func (s *GormStore) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, translate(err, "account by email")
	}
	return &account, nil
}
