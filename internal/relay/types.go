package relay

import (
	"encoding/json"
	"fmt"
)

// Header is a single outbound header pair
type Header struct {
	Name  string
	Value string
}

// MarshalJSON encodes the pair as a two-element array
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{h.Name, h.Value})
}

// UnmarshalJSON decodes a two-element string array
func (h *Header) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("header must be a [name, value] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("header must have exactly 2 elements, got %d", len(pair))
	}
	h.Name, h.Value = pair[0], pair[1]
	return nil
}

// Request describes one outbound call issued by the UI layer.
// Nil Headers or Body mean none are sent.
type Request struct {
	URL     string   `json:"url"`
	Method  string   `json:"method"`
	Headers []Header `json:"headers,omitempty"`
	Body    *string  `json:"body,omitempty"`
}

// Response is the materialized result of a successful call
type Response struct {
	Status uint16 `json:"status"`
	Body   string `json:"body"`
}
