package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// Sentinel errors for client operations.
var (
	// ErrNotFound matches API errors for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches API errors for missing or expired sessions.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden matches API errors for insufficient privileges.
	ErrForbidden = errors.New("forbidden")
	// ErrUnreachable wraps transport failures where no response arrived.
	ErrUnreachable = errors.New("server unreachable")
	// ErrCircuitOpen is returned without a request while the breaker is open.
	ErrCircuitOpen = errors.New("circuit open")
	// ErrInvalidStatus is returned before sending when a status value is
	// outside its enumeration.
	ErrInvalidStatus = errors.New("invalid status")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is match an APIError against the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || e.Code == types.CodeNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.Code == types.CodeUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden ||
			e.Code == types.CodeForbidden || e.Code == types.CodeInsufficientPrivileges
	}
	return false
}

// Temporary reports whether the error is a server-side failure.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

func parseError(resp *http.Response, requestID string) error {
	body, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get(requestIDHeader),
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = requestID
	}
	var errResp types.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil {
		apiErr.Code = errResp.Code
		switch {
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed: status %d", resp.StatusCode)
	}
	return apiErr
}
