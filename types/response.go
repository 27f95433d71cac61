package types

import "github.com/gofiber/fiber/v2"

// ApiResponse is the HTTP envelope every controller returns.
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ResultKind classifies why a service operation failed, so controllers can
// pick an HTTP status without parsing messages.
type ResultKind string

const (
	KindOK          ResultKind = "ok"
	KindValidation  ResultKind = "validation_failure"
	KindNotFound    ResultKind = "not_found"
	KindConflict    ResultKind = "conflict"
	KindTransaction ResultKind = "transaction_failure"
	KindExhausted   ResultKind = "generation_exhausted"
	KindInternal    ResultKind = "internal"
)

// Result is the envelope service operations hand back to controllers.
// Controllers translate it into an ApiResponse with an HTTP status.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Kind    ResultKind  `json:"-"`
}

// Ok builds a successful Result.
func Ok(message string, data interface{}) Result {
	return Result{Success: true, Message: message, Data: data, Kind: KindOK}
}

// Fail builds a failed Result of the given kind.
func Fail(kind ResultKind, message string) Result {
	return Result{Success: false, Message: message, Kind: kind}
}

// HTTPStatus maps the result kind onto an HTTP status code.
func (r Result) HTTPStatus() int {
	switch r.Kind {
	case KindOK:
		return fiber.StatusOK
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindExhausted, KindTransaction, KindInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
