package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Kind is the failure taxonomy shared by every API call.
type Kind string

const (
	// KindNetwork means the destination could not be reached at all.
	KindNetwork Kind = "network"
	// KindServer means a response arrived with a non-2xx status.
	KindServer Kind = "server"
	// KindClient is reserved for caller-side validation failures.
	KindClient Kind = "client"
	// KindUnknown covers everything else, including undecodable bodies.
	KindUnknown Kind = "unknown"
)

const (
	offlineMessage  = "Server is not responding. Please check if the backend is running."
	invalidMessage  = "Invalid request. Please check your input."
	fallbackMessage = "An unexpected error occurred"
)

// Error is the normalized failure record produced by Classify.
type Error struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NewClientError builds a client-kind error for input rejected before any
// request is sent.
func NewClientError(message string) *Error {
	return &Error{Message: message, Kind: KindClient}
}

// TransportFailure is produced when the request never completed: dial errors,
// DNS failures, timeouts and cancellation.
type TransportFailure struct {
	Err error
}

func (f TransportFailure) Error() string { return fmt.Sprintf("execute request: %v", f.Err) }
func (f TransportFailure) Unwrap() error { return f.Err }

// ResponseFailure is produced when a response arrived with a non-2xx status.
// Message carries the server-supplied error text, if any.
type ResponseFailure struct {
	Status     int
	StatusText string
	Message    string
}

func (f ResponseFailure) Error() string {
	return fmt.Sprintf("api returned status %d", f.Status)
}

// DecodeFailure is produced when a successful response body is not valid JSON.
type DecodeFailure struct {
	Err error
}

func (f DecodeFailure) Error() string { return fmt.Sprintf("decode response: %v", f.Err) }
func (f DecodeFailure) Unwrap() error { return f.Err }

// Classify maps any failure value onto an *Error. It is total: every input,
// including nil, yields exactly one record.
func Classify(raw any) *Error {
	switch f := raw.(type) {
	case *Error:
		if f != nil {
			return f
		}
	case TransportFailure:
		return &Error{Message: offlineMessage, Kind: KindNetwork, Details: detailText(f.Err)}
	case *TransportFailure:
		if f != nil {
			return Classify(*f)
		}
	case ResponseFailure:
		statusText := f.StatusText
		if statusText == "" {
			statusText = http.StatusText(f.Status)
		}
		msg := strings.TrimSpace(f.Message)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d: %s", f.Status, statusText)
		}
		return &Error{Message: msg, Kind: KindServer, Status: f.Status, Details: statusText}
	case *ResponseFailure:
		if f != nil {
			return Classify(*f)
		}
	case error:
		if !isNilValue(f) {
			return &Error{Message: f.Error(), Kind: KindUnknown, Details: fmt.Sprintf("%+v", f)}
		}
	}
	return &Error{Message: fallbackMessage, Kind: KindUnknown, Details: fmt.Sprint(raw)}
}

// isNilValue reports whether err is nil or an interface holding a nil
// pointer, map, slice, func or chan.
func isNilValue(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// IsOffline reports whether e means the server could not be reached.
func IsOffline(e *Error) bool {
	if e == nil {
		return false
	}
	return e.Kind == KindNetwork || (e.Kind == KindServer && e.Status == 0)
}

// DisplayMessage returns the user-facing text for e.
func DisplayMessage(e *Error) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindNetwork:
		return offlineMessage
	case KindServer:
		return e.Message
	case KindClient:
		return invalidMessage
	default:
		if e.Message == "" {
			return fallbackMessage
		}
		return e.Message
	}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func detailText(err error) string {
	if isNilValue(err) {
		return ""
	}
	return err.Error()
}
