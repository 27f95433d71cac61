package customer

import (
	"time"
)

// Customer is the receiving party of a shipment. Codes follow CST0001, CST0002, ...
type Customer struct {
	Code    string `gorm:"primaryKey;type:varchar(10)" json:"code"`
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	Phone   string `gorm:"type:varchar(20);not null;unique" json:"phone"`
	Address string `gorm:"type:text;not null" json:"address"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
