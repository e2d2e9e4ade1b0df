// Package http provides the HTTP boundary of the bridge.
//
// Routes:
//   - GET  /                 service banner
//   - GET  /health           registry and runtime counters
//   - GET  /commands         registered services and their commands
//   - POST /invoke/:command  run a command with the JSON body as arguments
//   - POST /logs             forward UI log entries into the host log
//   - GET  /metrics/summary  JSON summary of the prometheus counters
//
// Invocation results are always 200 with {"success", "data"|"error"}; the
// status code only reports boundary problems (400 bad JSON, 404 unknown
// command).
package http
