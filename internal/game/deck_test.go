package game

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(42)))

	if deck.Remaining() != DeckSize {
		t.Errorf("Expected %d cards, got %d", DeckSize, deck.Remaining())
	}

	// Count composition: 13 ranks per color plus one wild each
	byCategory := make(map[Category]int)
	wilds := 0
	for {
		card, ok := deck.Draw()
		if !ok {
			break
		}
		byCategory[card.Category]++
		if card.Rank == RankWild {
			if card.Category != Black {
				t.Errorf("Wild with non-black category: %v", card)
			}
			wilds++
		}
	}

	for _, color := range Colors {
		if byCategory[color] != 13 {
			t.Errorf("Expected 13 %s cards, got %d", color, byCategory[color])
		}
	}
	if byCategory[Black] != 4 || wilds != 4 {
		t.Errorf("Expected 4 black wilds, got %d black / %d wild", byCategory[Black], wilds)
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	a := NewDeck(rand.New(rand.NewSource(7)))
	b := NewDeck(rand.New(rand.NewSource(7)))

	for a.Remaining() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("Same seed produced different decks: %v vs %v", ca, cb)
		}
	}
}

func TestDeckDeal(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(42)))
	players := []*Player{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	}

	deck.Deal(players)

	for _, p := range players {
		if len(p.Hand) != 7 {
			t.Errorf("Player %s expected 7 cards, got %d", p.Name, len(p.Hand))
		}
	}
	if deck.Remaining() != DeckSize-14 {
		t.Errorf("Expected %d cards remaining, got %d", DeckSize-14, deck.Remaining())
	}

	// Hands plus remainder must add back up to a full deck with no card
	// dealt twice beyond its printed multiplicity.
	counts := make(map[Card]int)
	for _, p := range players {
		for _, c := range p.Hand {
			counts[c]++
		}
	}
	for {
		c, ok := deck.Draw()
		if !ok {
			break
		}
		counts[c]++
	}

	total := 0
	for card, n := range counts {
		total += n
		limit := 1
		if card.Rank == RankWild {
			limit = 4
		}
		if n > limit {
			t.Errorf("Card %v appears %d times, limit %d", card, n, limit)
		}
	}
	if total != DeckSize {
		t.Errorf("Expected %d cards in total, got %d", DeckSize, total)
	}
}

func TestDeckDealClearsHands(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	p := &Player{ID: "a", Name: "Alice", Hand: []Card{{Category: Red, Rank: "1"}}}

	deck.Deal([]*Player{p})

	if len(p.Hand) != 7 {
		t.Errorf("Deal should replace the old hand, got %d cards", len(p.Hand))
	}
}

func TestOpeningCardNeverBlack(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		deck := NewDeck(rand.New(rand.NewSource(seed)))
		card, err := deck.OpeningCard()
		if err != nil {
			t.Fatalf("Seed %d: %v", seed, err)
		}
		if card.Category == Black {
			t.Fatalf("Seed %d: opening card is black: %v", seed, card)
		}
	}
}

func TestOpeningCardExhausted(t *testing.T) {
	deck := &Deck{cards: []Card{
		{Category: Black, Rank: RankWild},
		{Category: Black, Rank: RankWild},
	}}

	if _, err := deck.OpeningCard(); err != ErrNoOpeningCard {
		t.Errorf("Expected ErrNoOpeningCard, got %v", err)
	}
}

func TestRandomCard(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 1000 {
		card := RandomCard(rng)
		if card.Category == Black {
			t.Fatalf("Drawn card should never be black: %v", card)
		}
		if card.Rank < "0" || card.Rank > "8" || len(card.Rank) != 1 {
			t.Fatalf("Drawn rank outside 0..8: %q", card.Rank)
		}
	}
}
