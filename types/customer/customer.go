package customer

// Request is the payload for creating or updating a customer.
type Request struct {
	Code    string `json:"code" validate:"omitempty,max=10"`
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Address string `json:"address" validate:"required"`
}
