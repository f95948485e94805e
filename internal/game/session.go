package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
)

// Phase represents the lifecycle state of a session
type Phase int

const (
	Lobby Phase = iota
	Playing
	Ended
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Lobby:
		return "lobby"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

const (
	// MaxSeats is the seat capacity of a session.
	MaxSeats = 4

	// MinPlayers is the smallest roster the host may start a game with.
	MinPlayers = 2

	// hazardChambers is the size of the chamber model: one fatal slot in six.
	hazardChambers = 6
)

// Join errors surfaced to the lifecycle layer. Gameplay commands are never
// surfaced as errors; an illegal command is silently ignored.
var (
	ErrSessionFull    = errors.New("game: session is full")
	ErrGameInProgress = errors.New("game: game already in progress")
)

// Session is the authoritative state machine for one room. All exported
// methods take the session lock for the full validate-and-apply step, so at
// most one command mutates the state at a time. Sessions share nothing;
// any number of them may run concurrently.
//
// Events are queued under the lock and published once it is released, so
// subscribers may safely call back into the session (e.g. to take a
// snapshot).
type Session struct {
	id     string
	logger *log.Logger
	events EventBus
	rng    *rand.Rand

	mu          sync.Mutex
	players     map[string]*Player
	joinOrder   []string
	seats       [MaxSeats]string
	turnOrder   []string
	turnIndex   int
	currentTurn string
	phase       Phase
	hostID      string
	tableCard   Card
	hazardSlot  int
	queued      []Event
}

// NewSession creates an empty session in the lobby phase. The RNG drives
// shuffling, drawn cards and hazard resolution; inject a seeded source for
// deterministic tests.
func NewSession(id string, rng *rand.Rand, logger *log.Logger) *Session {
	return &Session{
		id:      id,
		logger:  logger.WithPrefix("session").With("session", id),
		events:  NewEventBus(),
		rng:     rng,
		players: make(map[string]*Player),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// GetEventBus returns the event bus for subscribing to session events
func (s *Session) GetEventBus() EventBus {
	return s.events
}

// emit queues an event for publication. Callers must hold the session lock.
func (s *Session) emit(e Event) {
	s.queued = append(s.queued, e)
}

// flush publishes all queued events. It must run after the session lock has
// been released; handlers arrange this by deferring flush before locking.
func (s *Session) flush() {
	s.mu.Lock()
	queued := s.queued
	s.queued = nil
	s.mu.Unlock()

	for _, e := range queued {
		s.events.Publish(e)
	}
}

// Join adds a new player. Rejected with an error once the game has started
// or when all seats are taken; the first joiner becomes host.
func (s *Session) Join(playerID, requestedName string) error {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Lobby {
		return ErrGameInProgress
	}
	seat, ok := s.firstFreeSeat()
	if !ok {
		return ErrSessionFull
	}

	player := &Player{
		ID:      playerID,
		Name:    SanitizeName(requestedName),
		Seat:    seat,
		IsHost:  len(s.players) == 0,
		IsAlive: true,
	}
	s.players[playerID] = player
	s.joinOrder = append(s.joinOrder, playerID)
	s.seats[seat] = playerID
	if player.IsHost {
		s.hostID = playerID
	}

	s.logger.Info("Player joined", "player", player.Name, "seat", seat, "host", player.IsHost)
	s.emit(NewNotificationEvent(fmt.Sprintf("%s joined the room", player.Name)))
	s.emit(NewStateChangedEvent())
	return nil
}

// Leave removes a player, frees their seat and reassigns the host role if
// needed. A leaver holding the current turn passes it on immediately; the
// turn engine treats their turnOrder slot as eliminated from then on.
func (s *Session) Leave(playerID string) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return
	}

	delete(s.players, playerID)
	s.seats[player.Seat] = ""
	for i, id := range s.joinOrder {
		if id == playerID {
			s.joinOrder = append(s.joinOrder[:i], s.joinOrder[i+1:]...)
			break
		}
	}

	s.logger.Info("Player left", "player", player.Name, "seat", player.Seat)
	s.emit(NewNotificationEvent(fmt.Sprintf("%s left the room", player.Name)))

	if len(s.players) == 0 {
		s.hostID = ""
		return
	}

	if player.IsHost {
		next := s.players[s.joinOrder[0]]
		next.IsHost = true
		s.hostID = next.ID
		s.logger.Info("Host reassigned", "player", next.Name)
		s.emit(NewNotificationEvent(fmt.Sprintf("%s is now the host", next.Name)))
	}

	if s.phase == Playing && s.currentTurn == playerID {
		if !s.advanceTurn(1) {
			s.endStalled()
			return
		}
	}
	s.emit(NewStateChangedEvent())
}

// HandleStart begins the game: deals hands, snapshots the turn order, picks
// the opening table card and spins the hazard chamber. Only the host may
// start, with at least MinPlayers present, and only from the lobby.
func (s *Session) HandleStart(requesterID string) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if requesterID != s.hostID || s.phase != Lobby || len(s.players) < MinPlayers {
		s.logger.Debug("Start rejected", "requester", requesterID, "phase", s.phase, "players", len(s.players))
		return
	}

	roster := make([]*Player, 0, len(s.players))
	for _, id := range s.joinOrder {
		roster = append(roster, s.players[id])
	}

	deck := NewDeck(s.rng)
	deck.Deal(roster)

	opening, err := deck.OpeningCard()
	if err != nil {
		// Unreachable with a full deck, but never start on a corrupt
		// one. Hands are cleared so the lobby state stays consistent.
		for _, p := range roster {
			p.Hand = p.Hand[:0]
		}
		s.logger.Error("Game setup failed", "error", err)
		s.emit(NewNotificationEvent("game setup failed, still in lobby"))
		return
	}

	s.turnOrder = append([]string(nil), s.joinOrder...)
	s.turnIndex = 0
	s.currentTurn = s.turnOrder[0]
	s.tableCard = opening
	s.hazardSlot = s.rng.Intn(hazardChambers)
	s.phase = Playing

	starter := s.players[requesterID]
	s.logger.Info("Game started", "starter", starter.Name, "players", len(roster), "opening", opening.String())
	s.emit(NewGameStartedEvent(starter.Name, len(roster)))
	s.emit(NewStateChangedEvent())
}

// HandlePlay plays the card at cardIndex from the sender's hand onto the
// table. Out-of-turn, out-of-range and illegal plays are ignored without
// touching any state. A wild requires a non-black chosen category.
func (s *Session) HandlePlay(playerID string, cardIndex int, chosen Category) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok || s.phase != Playing || s.currentTurn != playerID {
		return
	}
	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return
	}

	card := player.Hand[cardIndex]
	if !card.Playable(s.tableCard) {
		s.logger.Debug("Illegal play ignored", "player", player.Name, "card", card.String(), "table", s.tableCard.String())
		return
	}
	if card.IsWild() && (!chosen.Valid() || chosen == Black) {
		return
	}

	player.removeCard(cardIndex)
	s.tableCard = card.Resolve(chosen)
	s.logger.Info("Card played", "player", player.Name, "card", s.tableCard.String(), "remaining", len(player.Hand))

	if len(player.Hand) == 0 {
		s.endWithWinner(player)
		return
	}

	advances := 1
	if card.skipsNext() {
		advances = 2
	}
	if !s.advanceTurn(advances) {
		s.endStalled()
		return
	}
	s.emit(NewStateChangedEvent())
}

// HandleDraw gives the current player one synthesized card and passes the
// turn. Ignored for anyone but the current player.
func (s *Session) HandleDraw(playerID string) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok || s.phase != Playing || s.currentTurn != playerID {
		return
	}

	card := RandomCard(s.rng)
	player.Hand = append(player.Hand, card)
	s.logger.Info("Card drawn", "player", player.Name, "hand", len(player.Hand))

	if !s.advanceTurn(1) {
		s.endStalled()
		return
	}
	s.emit(NewStateChangedEvent())
}

// HandleTrigger resolves the chamber hazard for the current player: a 1 in
// 6 chance of elimination. The turn always passes afterward, whatever the
// outcome. Ignored for anyone but the current player.
func (s *Session) HandleTrigger(playerID string) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok || s.phase != Playing || s.currentTurn != playerID {
		return
	}

	if s.rng.Intn(hazardChambers) == 0 {
		player.IsAlive = false
		s.logger.Info("Player eliminated by hazard", "player", player.Name)
		s.emit(NewSoundEvent(SoundTriggerFatal))
		s.emit(NewNotificationEvent(fmt.Sprintf("%s pulled the trigger... and is out", player.Name)))
	} else {
		s.logger.Info("Player survived hazard", "player", player.Name)
		s.emit(NewSoundEvent(SoundTriggerSurvived))
		s.emit(NewNotificationEvent(fmt.Sprintf("%s pulled the trigger and survived", player.Name)))
	}

	if !s.advanceTurn(1) {
		s.endStalled()
		return
	}
	s.emit(NewStateChangedEvent())
}

// HandleChat relays a chat line tagged with the sender's display name. Chat
// never mutates game state and stays allowed after the game ends. Unknown
// senders are dropped.
func (s *Session) HandleChat(playerID, text string) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok || text == "" {
		return
	}
	s.emit(NewChatEvent(player.Name, text))
}

// advanceTurn steps the turn pointer forward the given number of times,
// skipping turnOrder entries that are dead or no longer present. Each step
// scans at most len(turnOrder) slots, so it terminates even when nobody is
// eligible; in that case the turn pointer is left unchanged and false is
// returned.
func (s *Session) advanceTurn(times int) bool {
	for range times {
		if !s.advanceOnce() {
			return false
		}
	}
	return true
}

func (s *Session) advanceOnce() bool {
	n := len(s.turnOrder)
	index := s.turnIndex
	for range n {
		index = (index + 1) % n
		id := s.turnOrder[index]
		if p, ok := s.players[id]; ok && p.IsAlive {
			s.turnIndex = index
			s.currentTurn = id
			return true
		}
	}
	return false
}

// endWithWinner transitions to the ended phase after a player empties
// their hand.
func (s *Session) endWithWinner(winner *Player) {
	s.phase = Ended
	s.logger.Info("Game over", "winner", winner.Name)
	s.emit(NewGameOverEvent(winner.Name))
	s.emit(NewStateChangedEvent())
}

// endStalled transitions to the ended phase when no eligible player
// remains to take a turn.
func (s *Session) endStalled() {
	if s.phase != Playing {
		return
	}
	s.phase = Ended
	s.logger.Info("Game over", "reason", "no eligible players remain")
	s.emit(NewGameOverEvent(""))
	s.emit(NewStateChangedEvent())
}

// firstFreeSeat returns the lowest unoccupied seat index.
func (s *Session) firstFreeSeat() (int, bool) {
	for i, id := range s.seats {
		if id == "" {
			return i, true
		}
	}
	return 0, false
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// PlayerCount returns the number of players currently in the session.
func (s *Session) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// IsEmpty reports whether every player has left.
func (s *Session) IsEmpty() bool {
	return s.PlayerCount() == 0
}

// HostID returns the id of the current host, or "" for an empty session.
func (s *Session) HostID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hostID
}

// CurrentTurn returns the id of the player whose turn it is.
func (s *Session) CurrentTurn() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTurn
}
