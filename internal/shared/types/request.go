package types

// InvokeMessage is a command frame sent by the UI over the IPC channel
type InvokeMessage struct {
	ID      string                 `json:"id"`
	Type    string                 `json:"type,omitempty"` // "invoke" (default) or "ping"
	Command string                 `json:"cmd"`
	Payload map[string]interface{} `json:"payload"`
}

// InvokeReply answers an InvokeMessage with the same ID
type InvokeReply struct {
	ID    string                 `json:"id,omitempty"`
	Type  string                 `json:"type"` // "result", "error", "pong" or "system"
	Data  map[string]interface{} `json:"data,omitempty"`
	Error string                 `json:"error,omitempty"`
}

const (
	ReplyResult = "result"
	ReplyError  = "error"
	ReplyPong   = "pong"
	ReplySystem = "system"
)
