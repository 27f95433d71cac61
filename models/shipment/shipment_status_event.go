package shipment

import (
	"time"
)

// ShipmentStatusEvent records one status change of a shipment for audit.
type ShipmentStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ShipmentCode string `gorm:"type:varchar(20);not null;index" json:"shipment_code"`

	Status        ShipmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note          string         `gorm:"type:text" json:"note"`
	RecipientName *string        `gorm:"type:varchar(100)" json:"recipient_name,omitempty"`
	GeoNote       *string        `gorm:"type:varchar(255)" json:"geo_note,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the ShipmentStatusEvent model
func (ShipmentStatusEvent) TableName() string {
	return "shipment_status_events"
}
