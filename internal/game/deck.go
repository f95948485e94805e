package game

import (
	"errors"
	"math/rand"
)

// DeckSize is the number of cards in a freshly built deck: four colors of
// thirteen ranks plus four wilds.
const DeckSize = 4*13 + 4

// ErrNoOpeningCard is returned when the deck runs out before a non-black
// opening card is found. With only four black cards in the deck this is
// unreachable in practice, but setup refuses to proceed with a corrupt
// deck rather than start a game with no table card.
var ErrNoOpeningCard = errors.New("game: deck exhausted before opening card")

// Deck is a shuffled pile of cards consumed from the top. It only exists
// during dealing; once hands are dealt and the opening card is chosen the
// remainder is discarded.
type Deck struct {
	cards []Card
}

// NewDeck builds and shuffles a full deck using the provided RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, color := range Colors {
		for _, rank := range colorRanks {
			d.cards = append(d.cards, Card{Category: color, Rank: rank})
		}
		d.cards = append(d.cards, Card{Category: Black, Rank: RankWild})
	}
	d.shuffle(rng)
	return d
}

// shuffle performs a Fisher-Yates shuffle
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// OpeningCard pops cards until a non-black one is found and returns it.
// Skipped wilds are consumed permanently.
func (d *Deck) OpeningCard() (Card, error) {
	for {
		card, ok := d.Draw()
		if !ok {
			return Card{}, ErrNoOpeningCard
		}
		if card.Category != Black {
			return card, nil
		}
	}
}

// handSize is the number of cards dealt to each player at game start.
const handSize = 7

// Deal clears each player's hand and deals handSize cards apiece, consuming
// the deck. Players are dealt in the order given.
func (d *Deck) Deal(players []*Player) {
	for _, p := range players {
		p.Hand = p.Hand[:0]
		for range handSize {
			card, ok := d.Draw()
			if !ok {
				return
			}
			p.Hand = append(p.Hand, card)
		}
	}
}

// RandomCard synthesizes a drawn card: a uniform color with a uniform
// numeric rank "0".."8". Draws do not deplete a shared deck; the dealt deck
// is discarded after setup.
func RandomCard(rng *rand.Rand) Card {
	return Card{
		Category: Colors[rng.Intn(len(Colors))],
		Rank:     colorRanks[rng.Intn(9)],
	}
}
