package model

import "github.com/shopspring/decimal"

type MenuItem struct {
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}
