package shipment

import (
	"time"

	"shipment-tracking/models/courier"
	"shipment-tracking/models/customer"
	"shipment-tracking/models/item"
)

// Shipment is the header record for one delivery order. The business code
// (KRM + YYYYMMDD + 3-digit sequence) doubles as the primary key and is the
// value a printed QR label encodes.
type Shipment struct {
	Code string    `gorm:"primaryKey;type:varchar(20)" json:"code"`
	Date time.Time `gorm:"type:date;not null" json:"date"`

	// Foreign key for customer relationship
	CustomerCode string            `gorm:"type:varchar(10);not null;index" json:"customer_code"`
	Customer     customer.Customer `gorm:"foreignKey:CustomerCode;references:Code" json:"customer"`

	// Foreign key for courier relationship
	CourierCode string          `gorm:"type:varchar(10);not null;index" json:"courier_code"`
	Courier     courier.Courier `gorm:"foreignKey:CourierCode;references:Code" json:"courier"`

	VehiclePlate string `gorm:"type:varchar(20);not null" json:"vehicle_plate"`
	PONumber     string `gorm:"type:varchar(30);not null;unique" json:"po_number"`

	Status ShipmentStatus `gorm:"type:varchar(20);not null;default:Pending" json:"status"`
	Note   string         `gorm:"type:text" json:"note"`

	// RecipientName is only populated by courier-role actors on delivery.
	RecipientName *string `gorm:"type:varchar(100)" json:"recipient_name,omitempty"`
	GeoNote       *string `gorm:"type:varchar(255)" json:"geo_note,omitempty"`

	Details []Detail `gorm:"foreignKey:ShipmentCode;references:Code" json:"details,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}

// Detail is one item+quantity row belonging to a shipment. Details are owned
// by their shipment: updates replace the whole set, deletes remove it.
type Detail struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ShipmentCode string `gorm:"type:varchar(20);not null;index" json:"shipment_code"`

	ItemCode string    `gorm:"type:varchar(10);not null" json:"item_code"`
	Item     item.Item `gorm:"foreignKey:ItemCode;references:Code" json:"item"`

	Quantity int `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Detail model
func (Detail) TableName() string {
	return "shipment_details"
}
