package category

import (
	"time"
)

// Category groups items for the back office. The business code (KTG01, KTG02, ...)
// doubles as the primary key.
type Category struct {
	Code string `gorm:"primaryKey;type:varchar(10)" json:"code"`
	Name string `gorm:"type:varchar(100);not null;unique" json:"name"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
