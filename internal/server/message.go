package server

import (
	"encoding/json"
	"time"

	"github.com/larkvale/cardchamber/internal/game"
)

// MessageType identifies a WebSocket message
type MessageType string

// Client → server message types
const (
	MessageTypeCreateRoom MessageType = "create_room"
	MessageTypeJoinRoom   MessageType = "join_room"
	MessageTypeLeaveRoom  MessageType = "leave_room"
	MessageTypeStartGame  MessageType = "start_game"
	MessageTypePlayCard   MessageType = "play_card"
	MessageTypeDrawCard   MessageType = "draw_card"
	MessageTypeTrigger    MessageType = "trigger"
	MessageTypeChat       MessageType = "chat"
)

// Server → client message types
const (
	MessageTypeRoomJoined   MessageType = "room_joined"
	MessageTypeNotification MessageType = "notification"
	MessageTypeGameStarted  MessageType = "game_started"
	MessageTypeGameOver     MessageType = "game_over"
	MessageTypeSound        MessageType = "sound"
	MessageTypeChatMessage  MessageType = "chat_msg"
	MessageTypeState        MessageType = "state"
	MessageTypeError        MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type CreateRoomData struct {
	Name string `json:"name"`
}

type JoinRoomData struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type PlayCardData struct {
	Index    int    `json:"index"`
	Category string `json:"category,omitempty"` // required when playing a wild
}

type ChatData struct {
	Text string `json:"text"`
}

// Server → Client Messages

type RoomJoinedData struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

type NotificationData struct {
	Text string `json:"text"`
}

type GameStartedData struct {
	Starter string `json:"starter"`
	Players int    `json:"players"`
}

type GameOverData struct {
	Winner string `json:"winner,omitempty"`
}

type SoundData struct {
	Cue string `json:"cue"`
}

type ChatMessageData struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// StateData carries the full authoritative snapshot for one client.
type StateData struct {
	State game.Snapshot `json:"state"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
