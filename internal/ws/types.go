package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a board session handles
type MessageType string

const (
	// device -> server
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeReset    MessageType = "reset"

	// server -> device
	MessageTypeState   MessageType = "state"
	MessageTypeReading MessageType = "reading"
	MessageTypeError   MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func NewMessage(t MessageType, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: data}, nil
}
