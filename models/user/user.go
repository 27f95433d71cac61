package user

import (
	"time"
)

// User is an authentication principal. Role decides which routes the account
// may reach; a courier login is linked to its couriers row via CourierCode.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid     string `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Username string `gorm:"type:varchar(255);not null;unique" json:"username"`
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`

	// Salted bcrypt hash, never the plain password.
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	Role string `gorm:"type:varchar(20);not null" json:"role"`

	// Set only for courier-role accounts.
	CourierCode *string `gorm:"type:varchar(10);unique" json:"courier_code,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
