package relay

import "context"

// Transport opens outbound requests. Implementations must be safe for
// concurrent use; the relay keeps no state between calls.
type Transport interface {
	NewRequest(method Method, url string) Builder
}

// Builder accumulates a single outbound request
type Builder interface {
	// Header appends a header pair; repeated names are all sent
	Header(name, value string)
	// Body sets the raw request body
	Body(body string)
	// Send performs the network exchange
	Send(ctx context.Context) (Exchange, error)
}

// Exchange is a completed round-trip whose body has not been read yet
type Exchange interface {
	Status() uint16
	// Text reads the full body into memory
	Text() (string, error)
}
