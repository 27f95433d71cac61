package category

// Request is the payload for creating or updating a category.
// Code is optional on create; when omitted the next sequential code is minted.
type Request struct {
	Code string `json:"code" validate:"omitempty,max=10"`
	Name string `json:"name" validate:"required,max=100"`
}
