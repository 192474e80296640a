package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderConfirmed OrderStatus = "Confirmed"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled}

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentGCash        PaymentMethod = "GCash"
	PaymentMaya         PaymentMethod = "Maya"
	PaymentCard         PaymentMethod = "Card"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentGCash, PaymentMaya, PaymentCard, PaymentBankTransfer}

type Order struct {
	DTO
	OrderNo            string            `gorm:"size:50;index" json:"orderNo"` // ORD-1001, display label only
	CustomerName       string            `gorm:"size:100;not null" json:"customerName"`
	AccountID          uint              `gorm:"index;not null" json:"accountId"`
	Status             OrderStatus       `gorm:"size:20;not null;default:'Pending'" json:"status"`
	OrderedAt          time.Time         `gorm:"index;not null" json:"orderedAt"`
	PaymentMethod      PaymentMethod     `gorm:"size:50;not null" json:"paymentMethod"`
	TotalPrice         decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"totalPrice"`
	PaymentConfirmed   bool              `gorm:"not null;default:false" json:"paymentConfirmed"`
	PaymentConfirmedAt *time.Time        `json:"paymentConfirmedAt,omitempty"`
	PaymentConfirmedBy string            `gorm:"size:100" json:"paymentConfirmedBy,omitempty"`
	OfficialReceiptNo  string            `gorm:"size:100" json:"officialReceiptNo,omitempty"`
	PaymentReference   string            `gorm:"size:100" json:"paymentReference,omitempty"`
	ReceiptToken       string            `gorm:"size:36;uniqueIndex" json:"receiptToken"`
	Lines              []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines"`
	TableReservationID *uint             `gorm:"uniqueIndex" json:"tableReservationId,omitempty"`
	TableReservation   *TableReservation `gorm:"foreignKey:TableReservationID;constraint:OnDelete:RESTRICT" json:"tableReservation,omitempty"`
}

// RecalculateTotal sets TotalPrice from the current lines.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Total())
	}
	o.TotalPrice = total.Round(2)
}

func (o *Order) HasReservation() bool {
	return o.TableReservation != nil
}

func (o *Order) OwnedBy(account Account) bool {
	return o.AccountID == account.ID
}

type OrderRequest struct {
	CustomerName  string              `json:"customerName" validate:"required,max=100"`
	PaymentMethod PaymentMethod       `json:"paymentMethod" validate:"required,paymentmethod"`
	Lines         []LineRequest       `json:"lines"`
	Reservation   *ReservationRequest `json:"reservation,omitempty"`
}

type ConfirmPaymentRequest struct {
	Proof string `json:"proof"`
}

type StatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,orderstatus"`
}

type OrderFilter struct {
	SearchText    string      `query:"search"`
	Status        OrderStatus `query:"status" validate:"omitempty,orderstatus"`
	PaymentStatus string      `query:"paymentStatus" validate:"omitempty,oneof=confirmed unconfirmed"`
	DateRange     string      `query:"date" validate:"omitempty,oneof=today last7days last30days unrestricted"`
	Reservation   string      `query:"reservation" validate:"omitempty,oneof=withReservation withoutReservation either"`
}

type DashboardSummary struct {
	TotalOrders       int             `json:"totalOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TodayReservations int             `json:"todayReservations"`
}
