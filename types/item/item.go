package item

import "github.com/shopspring/decimal"

// Request is the payload for creating or updating an item.
type Request struct {
	Code         string          `json:"code" validate:"omitempty,max=10"`
	Name         string          `json:"name" validate:"required,max=100"`
	CategoryCode string          `json:"category_code" validate:"required,max=10"`
	Unit         string          `json:"unit" validate:"required,max=20"`
	Price        decimal.Decimal `json:"price"`
}
