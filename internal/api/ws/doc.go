// Package ws provides the WebSocket IPC channel between the UI layer and the
// host commands.
//
// Every text frame is one command invocation. Frames are dispatched
// concurrently, so replies can arrive in a different order than requests;
// the client matches them by id. Writes are serialized per connection.
//
// Message Types (Client → Server):
//   - invoke (default): {"id", "cmd", "payload"}
//   - ping: keep-alive, answered with pong
//
// Message Types (Server → Client):
//   - system: sent once after connect, carries the connection id
//   - result: {"id", "data"} for a successful command
//   - error: {"id", "error"} for a failed command or a bad frame
//   - pong
//
// Example Usage:
//
//	handler := ws.NewHandler(registry, metrics, logger)
//	router.GET("/ipc", handler.HandleConnection)
package ws
