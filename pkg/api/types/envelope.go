package types

import "encoding/json"

// Backend response codes carried in the envelope.
const (
	CodeSuccess                = 20000
	CodeInvalidParams          = 40000
	CodeUnauthorized           = 40001
	CodeUserStatusAbnormal     = 40002
	CodeForbidden              = 40003
	CodeInsufficientPrivileges = 40004
	CodeNotFound               = 40005
	CodeTooManyRequests        = 42901
	CodeInternalServerError    = 50000
)

// Envelope wraps every successful backend response.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ErrorResponse is the body of a non-2xx backend response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// Page is one page of a list endpoint. The backend names the item array
// after the entity family; the client maps it onto Items.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// IDs is the body of batch endpoints.
type IDs struct {
	IDs []int64 `json:"ids"`
}

// Ref is a nested read-only reference to a related record.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRef is a nested read-only reference to the owning user.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
