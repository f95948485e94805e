package game

import "time"

// EventType represents a game event type with type safety
type EventType string

// EventType constants for session domain events
const (
	EventTypeNotification EventType = "notification"
	EventTypeGameStarted  EventType = "game_started"
	EventTypeGameOver     EventType = "game_over"
	EventTypeSound        EventType = "sound"
	EventTypeChat         EventType = "chat_msg"
	EventTypeStateChanged EventType = "state_changed"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents anything that happens inside a session that connected
// clients should hear about. Events are queued while the session lock is
// held and published once it is released, so subscribers may call back
// into the session.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// NotificationEvent carries a plain-text announcement for the whole room:
// joins, leaves, host changes, hazard outcomes.
type NotificationEvent struct {
	Text      string
	timestamp time.Time
}

func (e NotificationEvent) EventType() EventType { return EventTypeNotification }
func (e NotificationEvent) Timestamp() time.Time { return e.timestamp }

// NewNotificationEvent creates a new notification event
func NewNotificationEvent(text string) NotificationEvent {
	return NotificationEvent{Text: text, timestamp: time.Now()}
}

// GameStartedEvent is published when the host successfully starts the game.
type GameStartedEvent struct {
	StarterName string
	PlayerCount int
	timestamp   time.Time
}

func (e GameStartedEvent) EventType() EventType { return EventTypeGameStarted }
func (e GameStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartedEvent creates a new game started event
func NewGameStartedEvent(starterName string, playerCount int) GameStartedEvent {
	return GameStartedEvent{StarterName: starterName, PlayerCount: playerCount, timestamp: time.Now()}
}

// GameOverEvent is published when a player empties their hand or the last
// eligible player is eliminated.
type GameOverEvent struct {
	WinnerName string // empty when the game stalled with no survivors
	timestamp  time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(winnerName string) GameOverEvent {
	return GameOverEvent{WinnerName: winnerName, timestamp: time.Now()}
}

// Sound cues sent alongside hazard resolution.
const (
	SoundTriggerFatal    = "bang"
	SoundTriggerSurvived = "click"
)

// SoundEvent asks clients to play a named audio cue.
type SoundEvent struct {
	Cue       string
	timestamp time.Time
}

func (e SoundEvent) EventType() EventType { return EventTypeSound }
func (e SoundEvent) Timestamp() time.Time { return e.timestamp }

// NewSoundEvent creates a new sound event
func NewSoundEvent(cue string) SoundEvent {
	return SoundEvent{Cue: cue, timestamp: time.Now()}
}

// ChatEvent relays a chat line tagged with the sender's display name.
type ChatEvent struct {
	User      string
	Text      string
	timestamp time.Time
}

func (e ChatEvent) EventType() EventType { return EventTypeChat }
func (e ChatEvent) Timestamp() time.Time { return e.timestamp }

// NewChatEvent creates a new chat event
func NewChatEvent(user, text string) ChatEvent {
	return ChatEvent{User: user, Text: text, timestamp: time.Now()}
}

// StateChangedEvent is published after every applied command so subscribers
// can push fresh snapshots to clients. The session itself does not track
// field-level dirtiness; consumers resynchronize from the full snapshot.
type StateChangedEvent struct {
	timestamp time.Time
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }
func (e StateChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewStateChangedEvent creates a new state changed event
func NewStateChangedEvent() StateChangedEvent {
	return StateChangedEvent{timestamp: time.Now()}
}

// EventSubscriber can subscribe to session events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
