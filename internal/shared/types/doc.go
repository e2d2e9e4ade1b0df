// Package types provides shared data structures for the bridge.
//
// Core Types:
//   - Service: Command provider definition
//   - Tool: Command specification exposed to the UI layer
//   - Context: Caller context for an invocation
//   - Result: Standard invocation result
//
// Boundary Types:
//   - InvokeMessage, InvokeReply: WebSocket IPC frames
//
// Example Usage:
//
//	result := &types.Result{
//	    Success: true,
//	    Data:    map[string]interface{}{"status": 200, "body": "ok"},
//	}
package types
