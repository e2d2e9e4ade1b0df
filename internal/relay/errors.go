package relay

import (
	"errors"
	"fmt"
)

// Kind classifies relay failures
type Kind int

const (
	KindUnsupportedMethod Kind = iota + 1
	KindTransport
	KindBodyRead
)

// String returns a metric-friendly label for the kind
func (k Kind) String() string {
	switch k {
	case KindUnsupportedMethod:
		return "unsupported_method"
	case KindTransport:
		return "transport"
	case KindBodyRead:
		return "body_read"
	default:
		return "unknown"
	}
}

// Error is a relay failure. Error() yields the text returned to the UI.
type Error struct {
	Kind   Kind
	Method string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnsupportedMethod:
		return fmt.Sprintf("Unsupported HTTP method: %s", e.Method)
	case KindTransport:
		return fmt.Sprintf("HTTP request failed: %v", e.Err)
	case KindBodyRead:
		return fmt.Sprintf("Failed to read response body: %v", e.Err)
	default:
		return fmt.Sprintf("relay failed: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the relay kind carried by err, if any
func KindOf(err error) (Kind, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}
