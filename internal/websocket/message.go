package websocket

import "encoding/json"

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewInventoryEventMessage encodes an inventory change notification.
func NewInventoryEventMessage(payload interface{}) []byte {
	raw, _ := json.Marshal(Message{Action: "inventory_event", Payload: payload})
	return raw
}

// NewErrorMessage encodes an error notification for a single client.
func NewErrorMessage(text string) []byte {
	raw, _ := json.Marshal(Message{Action: "error", Payload: text})
	return raw
}
