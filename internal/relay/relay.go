package relay

import "context"

// Relay dispatches request descriptors over an injected transport
type Relay struct {
	transport Transport
}

// New creates a relay over the given transport
func New(transport Transport) *Relay {
	return &Relay{transport: transport}
}

// Do executes req and returns the materialized response.
// Errors are always *Error.
func (r *Relay) Do(ctx context.Context, req Request) (*Response, error) {
	method, err := ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}

	builder := r.transport.NewRequest(method, req.URL)
	for _, h := range req.Headers {
		builder.Header(h.Name, h.Value)
	}
	if req.Body != nil {
		builder.Body(*req.Body)
	}

	exchange, err := builder.Send(ctx)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: req.Method, Err: err}
	}

	text, err := exchange.Text()
	if err != nil {
		return nil, &Error{Kind: KindBodyRead, Method: req.Method, Err: err}
	}

	return &Response{Status: exchange.Status(), Body: text}, nil
}
