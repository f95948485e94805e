package server

import (
	"github.com/charmbracelet/log"

	"github.com/larkvale/cardchamber/internal/game"
)

// roomSubscriber listens on a session's event bus and forwards events to
// the room's connections as wire messages. State changes fan out as
// per-viewer snapshots; everything else is a plain broadcast.
type roomSubscriber struct {
	room   *Room
	logger *log.Logger
}

// OnEvent implements the game.EventSubscriber interface
func (sub *roomSubscriber) OnEvent(event game.Event) {
	switch e := event.(type) {
	case game.NotificationEvent:
		sub.broadcast(MessageTypeNotification, NotificationData{Text: e.Text})
	case game.GameStartedEvent:
		sub.broadcast(MessageTypeGameStarted, GameStartedData{Starter: e.StarterName, Players: e.PlayerCount})
	case game.GameOverEvent:
		sub.broadcast(MessageTypeGameOver, GameOverData{Winner: e.WinnerName})
	case game.SoundEvent:
		sub.broadcast(MessageTypeSound, SoundData{Cue: e.Cue})
	case game.ChatEvent:
		sub.broadcast(MessageTypeChatMessage, ChatMessageData{User: e.User, Text: e.Text})
	case game.StateChangedEvent:
		sub.room.BroadcastState()
	}
}

func (sub *roomSubscriber) broadcast(msgType MessageType, data interface{}) {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		sub.logger.Error("Failed to create message", "type", msgType, "error", err)
		return
	}
	sub.room.Broadcast(msg)
}
