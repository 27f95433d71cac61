package courier

import (
	"time"
)

// Courier is a delivery driver. Codes follow KRR01, KRR02, ...
// A courier that needs system login is linked 1:1 to a users row via UserID.
type Courier struct {
	Code  string `gorm:"primaryKey;type:varchar(10)" json:"code"`
	Name  string `gorm:"type:varchar(100);not null" json:"name"`
	Phone string `gorm:"type:varchar(20);not null;unique" json:"phone"`

	UserID *uint `gorm:"unique" json:"user_id,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Courier model
func (Courier) TableName() string {
	return "couriers"
}
