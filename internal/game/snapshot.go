package game

// PlayerSnapshot is the wire view of one player. Hand contents are included
// only for the viewer the snapshot was built for; everyone else sees a
// count.
type PlayerSnapshot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Seat      int    `json:"seat"`
	IsHost    bool   `json:"isHost"`
	IsAlive   bool   `json:"isAlive"`
	HandCount int    `json:"handCount"`
	Hand      []Card `json:"hand,omitempty"`
}

// Snapshot is the full authoritative state pushed to clients after every
// applied command. Clients resynchronize from it wholesale; there is no
// field-level delta tracking.
type Snapshot struct {
	SessionID   string           `json:"sessionId"`
	Phase       string           `json:"phase"`
	Players     []PlayerSnapshot `json:"players"`
	HostID      string           `json:"hostId"`
	CurrentTurn string           `json:"currentTurn,omitempty"`
	TableCard   *Card            `json:"tableCard,omitempty"`
	HazardSlot  int              `json:"hazardSlot"`
}

// Snapshot builds the state view for one viewer. Players appear in join
// order.
func (s *Session) Snapshot(viewerID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		SessionID:  s.id,
		Phase:      s.phase.String(),
		HostID:     s.hostID,
		HazardSlot: s.hazardSlot,
		Players:    make([]PlayerSnapshot, 0, len(s.players)),
	}
	if s.phase != Lobby {
		snap.CurrentTurn = s.currentTurn
		table := s.tableCard
		snap.TableCard = &table
	}

	for _, id := range s.joinOrder {
		p := s.players[id]
		ps := PlayerSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			Seat:      p.Seat,
			IsHost:    p.IsHost,
			IsAlive:   p.IsAlive,
			HandCount: len(p.Hand),
		}
		if p.ID == viewerID {
			ps.Hand = append([]Card(nil), p.Hand...)
		}
		snap.Players = append(snap.Players, ps)
	}
	return snap
}
