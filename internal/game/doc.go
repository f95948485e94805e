// Package game implements the authoritative session engine for a four-seat
// card game with a chamber hazard.
//
// The main type is Session, which owns the full state of one room: the
// roster, hands, turn order, table card and hazard. Clients are untrusted;
// every command is validated against the current state before anything is
// mutated, and illegal commands are dropped silently.
//
// # Basic Usage
//
// Create a session, add players and route commands into it:
//
//	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
//	s := game.NewSession("room1", rng, logger)
//	s.Join("conn-a", "Alice")
//	s.Join("conn-b", "Bob")
//	s.HandleStart("conn-a")
//	s.HandlePlay("conn-a", 2, "")
//
// Subscribers on the session's event bus receive notifications, sound cues
// and state-changed signals after each applied command; the transport layer
// turns those into broadcasts and per-client snapshots.
//
// # Deterministic Testing
//
// All randomness (shuffling, drawn cards, hazard resolution) flows through
// the *rand.Rand passed to NewSession, so a fixed seed makes a whole game
// reproducible.
//
// # Concurrency
//
// Each exported Session method holds the session mutex for its entire
// validate-and-apply step. Commands therefore serialize per session while
// independent sessions run concurrently without shared state.
package game
