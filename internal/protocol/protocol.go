// Package protocol defines the JSON messages exchanged with render clients
// over a websocket.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types. MOVE, SOLVE, RESET and GESTURE flow from client to
// server; the rest flow from server to client.
const (
	TypeMove    = "MOVE"
	TypeSolve   = "SOLVE"
	TypeReset   = "RESET"
	TypeGesture = "GESTURE"

	TypeWelcome = "WELCOME"
	TypeFrame   = "FRAME"
	TypeState   = "STATE"
	TypeError   = "ERROR"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type string `json:"type"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
