// Package server is the composition root of the bridge.
//
// NewServer builds the transport, relay, http_request provider and command
// registry, then mounts them behind the gin router with recovery, tracing,
// metrics, CORS and rate limiting. Responses are gzip-compressed except on
// the WebSocket route.
package server
