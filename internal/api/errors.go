package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed backend call. Each kind maps to a distinct user
// recovery path: transport and server errors are retry-or-give-up, auth
// errors force re-sign-in, validation errors need corrected input, and
// conflict errors mean another booker won the race for a seat.
type Kind int

const (
	KindTransport Kind = iota
	KindAuth
	KindValidation
	KindConflict
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified backend failure carrying the human-readable message
// returned by the API (or a generic one for transport failures).
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// IsAuth reports whether err means the session is missing or expired.
func IsAuth(err error) bool { return IsKind(err, KindAuth) }

// IsConflict reports whether err means another booker took the seats first.
func IsConflict(err error) bool { return IsKind(err, KindConflict) }

// IsValidation reports whether err is a rejected-input failure.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsTransport reports whether err is a network-level failure (no response).
func IsTransport(err error) bool { return IsKind(err, KindTransport) }

// classify maps an HTTP status plus backend message to an error kind.
// Seat-conflict rejections arrive either as 409 or as a 4xx whose message
// names an already-booked seat.
func classify(status int, message string) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		lower := strings.ToLower(message)
		if strings.Contains(lower, "already booked") || strings.Contains(lower, "already taken") {
			return KindConflict
		}
		return KindValidation
	default:
		return KindServer
	}
}
