package server

import (
	"encoding/json"
	"time"

	"github.com/lox/copsandrobbers/internal/game"
)

// MessageType identifies a feed message
type MessageType string

const (
	// Server → Client
	MessageTypeState     MessageType = "state"
	MessageTypeGameOver  MessageType = "game_over"
	MessageTypeSimulated MessageType = "simulated"
	MessageTypeError     MessageType = "error"

	// Client → Server
	MessageTypeSimulate MessageType = "simulate"
	MessageTypePause    MessageType = "pause"
	MessageTypeResume   MessageType = "resume"
)

// MaxSimulateGames caps a single simulate request.
const MaxSimulateGames = 1_000_000

// Message is the envelope for everything the server sends
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Command is a client request: {"type":"simulate","games":1000}
type Command struct {
	Type  MessageType `json:"type"`
	Games int         `json:"games,omitempty"`
}

// GameOverData announces a finished game
type GameOverData struct {
	GameID         string `json:"gameId"`
	Game           int    `json:"game"`
	Winner         string `json:"winner"`
	Rounds         int    `json:"rounds"`
	CopPositions   []int  `json:"copPositions"`
	RobberPosition int    `json:"robberPosition"`
}

// SimulatedData reports a completed fast-forward
type SimulatedData struct {
	Games    int           `json:"games"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// ErrorData describes a rejected command
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
