package model

import "github.com/shopspring/decimal"

type OrderLine struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"orderId"`
	ItemName  string          `gorm:"size:100;not null" json:"itemName"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unitPrice"` // snapshot at creation
}

func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineRequest is one submitted line. UnitPrice, when set, bypasses the catalog.
type LineRequest struct {
	ItemName  string           `json:"itemName"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}
