// Package http exposes the relay to the UI layer as the http_request command.
//
// The provider decodes the JSON-shaped argument map into a relay.Request,
// runs it through the relay and converts the outcome into a types.Result:
//   - success: {"status": <uint16>, "body": <string>}
//   - failure: the relay error text, unchanged
//
// Every invocation is timed and counted; failures are also logged at debug
// level with their kind. Nothing is retried.
package http
