package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/larkvale/cardchamber/internal/game"
)

// Room lifecycle errors surfaced to clients as error messages.
var (
	ErrRoomNotFound  = errors.New("server: room not found")
	ErrAlreadyInRoom = errors.New("server: already in a room")
	ErrNotInRoom     = errors.New("server: not in a room")
)

// roomCodeLength is the number of characters in a room code.
const roomCodeLength = 6

// Room couples one game session with the connections subscribed to it.
type Room struct {
	Code      string
	Session   *game.Session
	CreatedAt time.Time

	mu      sync.RWMutex
	clients map[string]sender // playerID -> connection
}

// sender is the part of a connection the room needs for fan-out.
type sender interface {
	ID() string
	SendMessage(msg *Message) error
	SetRoom(code string)
}

func (r *Room) addClient(c sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID()] = c
}

func (r *Room) removeClient(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Broadcast sends a message to every connection in the room.
func (r *Room) Broadcast(msg *Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		_ = c.SendMessage(msg)
	}
}

// BroadcastState pushes a fresh snapshot to every connection. Snapshots are
// built per viewer so hand contents only reach their owner.
func (r *Room) BroadcastState() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, c := range r.clients {
		msg, err := NewMessage(MessageTypeState, StateData{State: r.Session.Snapshot(id)})
		if err != nil {
			continue
		}
		_ = c.SendMessage(msg)
	}
}

// RoomService owns all rooms: creation, join/leave routing, command
// dispatch into sessions and the idle-lobby sweep. Each room's game state
// lives behind its session's own lock; the service lock only guards the
// room table.
type RoomService struct {
	logger       *log.Logger
	clock        quartz.Clock
	maxClients   int
	lobbyTimeout time.Duration
	seed         int64

	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRoomService creates a new room service
func NewRoomService(cfg RoomSettings, clock quartz.Clock, logger *log.Logger) *RoomService {
	seed := cfg.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RoomService{
		logger:       logger.WithPrefix("rooms"),
		clock:        clock,
		maxClients:   cfg.MaxClients,
		lobbyTimeout: time.Duration(cfg.LobbyTimeoutMinute) * time.Minute,
		seed:         seed,
		rooms:        make(map[string]*Room),
	}
}

// CreateRoom opens a new room with the caller as its first (host) player.
func (rs *RoomService) CreateRoom(c sender, name string) (*Room, error) {
	rs.mu.Lock()
	code := rs.generateRoomCode()
	rs.seed++
	session := game.NewSession(code, rand.New(rand.NewSource(rs.seed)), rs.logger)
	room := &Room{
		Code:      code,
		Session:   session,
		CreatedAt: rs.clock.Now(),
		clients:   make(map[string]sender),
	}
	session.GetEventBus().Subscribe(&roomSubscriber{room: room, logger: rs.logger.With("room", code)})
	rs.rooms[code] = room
	rs.mu.Unlock()

	room.addClient(c)
	if err := room.Session.Join(c.ID(), name); err != nil {
		// Cannot happen on a fresh room, but do not leak a broken one.
		room.removeClient(c.ID())
		rs.mu.Lock()
		delete(rs.rooms, code)
		rs.mu.Unlock()
		return nil, err
	}
	c.SetRoom(code)

	rs.logger.Info("Room created", "room", code)
	return room, nil
}

// JoinRoom adds the caller to an existing room. Fails when the room does
// not exist, is full, or the game has already started.
func (rs *RoomService) JoinRoom(c sender, code, name string) (*Room, error) {
	room := rs.GetRoom(code)
	if room == nil {
		return nil, ErrRoomNotFound
	}

	room.mu.RLock()
	clientCount := len(room.clients)
	room.mu.RUnlock()
	if clientCount >= rs.maxClients {
		return nil, game.ErrSessionFull
	}

	// Register the connection first so the join snapshot reaches it.
	room.addClient(c)
	if err := room.Session.Join(c.ID(), name); err != nil {
		room.removeClient(c.ID())
		return nil, err
	}
	c.SetRoom(code)

	return room, nil
}

// LeaveRoom removes the caller from its room, tearing the room down when
// the last player leaves.
func (rs *RoomService) LeaveRoom(c sender, code string) {
	room := rs.GetRoom(code)
	if room == nil {
		return
	}

	room.removeClient(c.ID())
	room.Session.Leave(c.ID())
	c.SetRoom("")

	if room.Session.IsEmpty() {
		rs.mu.Lock()
		delete(rs.rooms, code)
		rs.mu.Unlock()
		rs.logger.Info("Room closed", "room", code)
	}
}

// GetRoom returns a room by code, or nil.
func (rs *RoomService) GetRoom(code string) *Room {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.rooms[code]
}

// RoomCount returns the number of open rooms.
func (rs *RoomService) RoomCount() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.rooms)
}

// Gameplay command routing. Unknown rooms are ignored; the session itself
// silently rejects anything illegal, so none of these return errors.

// StartGame asks the session to start on behalf of the caller.
func (rs *RoomService) StartGame(c sender, code string) {
	if room := rs.GetRoom(code); room != nil {
		room.Session.HandleStart(c.ID())
	}
}

// PlayCard plays a card from the caller's hand.
func (rs *RoomService) PlayCard(c sender, code string, data PlayCardData) {
	if room := rs.GetRoom(code); room != nil {
		room.Session.HandlePlay(c.ID(), data.Index, game.Category(data.Category))
	}
}

// DrawCard draws a card for the caller.
func (rs *RoomService) DrawCard(c sender, code string) {
	if room := rs.GetRoom(code); room != nil {
		room.Session.HandleDraw(c.ID())
	}
}

// Trigger pulls the chamber trigger for the caller.
func (rs *RoomService) Trigger(c sender, code string) {
	if room := rs.GetRoom(code); room != nil {
		room.Session.HandleTrigger(c.ID())
	}
}

// Chat relays a chat line from the caller.
func (rs *RoomService) Chat(c sender, code string, data ChatData) {
	if room := rs.GetRoom(code); room != nil {
		room.Session.HandleChat(c.ID(), data.Text)
	}
}

// RunJanitor sweeps idle lobbies until the context is cancelled. The sweep
// interval runs off the injected clock so tests can drive it.
func (rs *RoomService) RunJanitor(ctx context.Context) error {
	waiter := rs.clock.TickerFunc(ctx, time.Minute, func() error {
		rs.sweepIdleRooms()
		return nil
	}, "janitor")
	return waiter.Wait()
}

// sweepIdleRooms closes rooms that sat in the lobby past the timeout.
func (rs *RoomService) sweepIdleRooms() {
	now := rs.clock.Now()

	rs.mu.Lock()
	var expired []*Room
	for code, room := range rs.rooms {
		if room.Session.Phase() == game.Lobby && now.Sub(room.CreatedAt) > rs.lobbyTimeout {
			expired = append(expired, room)
			delete(rs.rooms, code)
		}
	}
	rs.mu.Unlock()

	for _, room := range expired {
		rs.logger.Info("Idle room swept", "room", room.Code, "age", now.Sub(room.CreatedAt))
		if msg, err := NewMessage(MessageTypeNotification, NotificationData{Text: "room closed after sitting idle"}); err == nil {
			room.Broadcast(msg)
		}
		room.mu.Lock()
		for _, c := range room.clients {
			c.SetRoom("")
		}
		room.clients = make(map[string]sender)
		room.mu.Unlock()
	}
}

// generateRoomCode returns a short code not currently in use. Callers must
// hold the service lock.
func (rs *RoomService) generateRoomCode() string {
	for {
		code := uuid.NewString()[:roomCodeLength]
		if _, exists := rs.rooms[code]; !exists {
			return code
		}
	}
}
