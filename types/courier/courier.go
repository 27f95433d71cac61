package courier

// Request is the payload for creating or updating a courier.
type Request struct {
	Code  string `json:"code" validate:"omitempty,max=10"`
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=20"`
}
