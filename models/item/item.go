package item

import (
	"time"

	"github.com/shopspring/decimal"
	"shipment-tracking/models/category"
)

// Item is a master record for a shippable good. Codes follow BRG0001, BRG0002, ...
type Item struct {
	Code string `gorm:"primaryKey;type:varchar(10)" json:"code"`
	Name string `gorm:"type:varchar(100);not null;unique" json:"name"`

	// Foreign key for category relationship
	CategoryCode string            `gorm:"type:varchar(10);not null;index" json:"category_code"`
	Category     category.Category `gorm:"foreignKey:CategoryCode;references:Code" json:"category"`

	Unit  string          `gorm:"type:varchar(20);not null" json:"unit"`
	Price decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Item model
func (Item) TableName() string {
	return "items"
}
