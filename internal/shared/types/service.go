package types

// Category represents service categories
type Category string

const (
	CategoryHTTP Category = "http"
)

// Service represents a command provider definition
type Service struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
	Capabilities []string `json:"capabilities"`
	Tools        []Tool   `json:"tools"`
}

// Tool represents a command callable from the UI layer
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a command argument
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Context describes where an invocation came from
type Context struct {
	Channel   string `json:"channel"` // "http" or "ipc"
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
}

// Result represents a command result. Error holds the exact text
// returned to the UI on failure.
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Success creates a successful result
func Success(data map[string]interface{}) *Result {
	return &Result{Success: true, Data: data}
}

// Failure creates a failed result
func Failure(message string) *Result {
	msg := message
	return &Result{Success: false, Error: &msg}
}
