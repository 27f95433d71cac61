package shipment

// ShipmentStatus is the delivery state of a shipment.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "Pending"
	StatusInTransit ShipmentStatus = "InTransit"
	StatusDelivered ShipmentStatus = "Delivered"
	StatusCancelled ShipmentStatus = "Cancelled"
)

// Helper methods for ShipmentStatus
func (ss ShipmentStatus) String() string {
	return string(ss)
}

func (ss ShipmentStatus) IsValid() bool {
	switch ss {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// RequiresNote reports whether moving a shipment to this status requires a
// non-empty note. Pending is the only status that doesn't.
func (ss ShipmentStatus) RequiresNote() bool {
	return ss != StatusPending
}

// IsCompleted returns true if the shipment is in a terminal state
func (ss ShipmentStatus) IsCompleted() bool {
	return ss == StatusDelivered || ss == StatusCancelled
}

// GetAllShipmentStatuses returns all valid shipment statuses
func GetAllShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusPending,
		StatusInTransit,
		StatusDelivered,
		StatusCancelled,
	}
}
