package game

import "strings"

// MaxNameLength is the longest display name a player may use.
const MaxNameLength = 12

// Player represents a participant in a session. Player records are owned
// exclusively by their session and must only be touched while the session
// lock is held.
type Player struct {
	ID      string
	Name    string
	Seat    int
	IsHost  bool
	IsAlive bool
	Hand    []Card
}

// removeCard deletes the card at index i, preserving hand order.
func (p *Player) removeCard(i int) Card {
	card := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return card
}

// SanitizeName trims a requested display name to something printable and at
// most MaxNameLength runes. Empty results fall back to "player".
func SanitizeName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	runes := []rune(cleaned)
	if len(runes) > MaxNameLength {
		cleaned = string(runes[:MaxNameLength])
	}
	if cleaned == "" {
		return "player"
	}
	return cleaned
}
