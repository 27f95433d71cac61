package shipment

// LineItem is one item+quantity entry of a shipment payload.
type LineItem struct {
	ItemCode string `json:"item_code" validate:"required,max=10"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreateRequest is the payload for creating a shipment with its line items.
// Code and PONumber are optional; when omitted they are generated.
type CreateRequest struct {
	Code         string     `json:"code" validate:"omitempty,max=20"`
	Date         string     `json:"date" validate:"required,datetime=2006-01-02"`
	CustomerCode string     `json:"customer_code" validate:"required,max=10"`
	CourierCode  string     `json:"courier_code" validate:"required,max=10"`
	VehiclePlate string     `json:"vehicle_plate" validate:"required,max=20"`
	PONumber     string     `json:"po_number" validate:"omitempty,max=30"`
	Status       string     `json:"status" validate:"omitempty,max=20"`
	Note         string     `json:"note"`
	Items        []LineItem `json:"items"`
}

// UpdateRequest is the full-update payload used by back-office roles.
// The shipment code is immutable, so it is not part of the payload; nil
// fields are left untouched. An empty Items slice keeps the existing line
// items, a non-empty one replaces the whole set.
type UpdateRequest struct {
	Date         *string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	CustomerCode *string    `json:"customer_code" validate:"omitempty,max=10"`
	CourierCode  *string    `json:"courier_code" validate:"omitempty,max=10"`
	VehiclePlate *string    `json:"vehicle_plate" validate:"omitempty,max=20"`
	Status       *string    `json:"status" validate:"omitempty,max=20"`
	Note         *string    `json:"note"`
	Items        []LineItem `json:"items"`
}

// StatusUpdateRequest is the narrow payload courier-role actors use: status
// plus delivery extras, never commercial fields.
type StatusUpdateRequest struct {
	Status        string  `json:"status" validate:"required,max=20"`
	Note          string  `json:"note"`
	RecipientName *string `json:"recipient_name" validate:"omitempty,max=100"`
	GeoNote       *string `json:"geo_note" validate:"omitempty,max=255"`
}
