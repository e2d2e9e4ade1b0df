// Package relay forwards outbound HTTP requests on behalf of the UI layer.
//
// The relay is a pure function of its input plus an injected Transport:
//   - Method parsing: the method string is parsed once into a Method
//   - Header application: every pair is applied in order, duplicates kept
//   - Body: attached verbatim when present, for any method
//   - Failures: unsupported method, transport failure or body read failure
//
// Failures carry a Kind for logging and metrics and render to the same
// strings the UI boundary has always received.
//
// Example Usage:
//
//	r := relay.New(client.NewClient(client.DefaultConfig()))
//	resp, err := r.Do(ctx, relay.Request{URL: "https://example.com", Method: "GET"})
package relay
