package game

// Category is the color of a card. Black is reserved for wilds and matches
// any table card when played.
type Category string

// Category constants
const (
	Red    Category = "red"
	Blue   Category = "blue"
	Green  Category = "green"
	Yellow Category = "yellow"
	Black  Category = "black"
)

// Colors lists the four playable (non-black) categories in deck order.
var Colors = []Category{Red, Blue, Green, Yellow}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case Red, Blue, Green, Yellow, Black:
		return true
	}
	return false
}

// Rank constants for the non-numeric ranks. Numeric ranks are the strings
// "0" through "9".
const (
	RankSkip    = "skip"
	RankReverse = "reverse"
	RankDrawTwo = "+2"
	RankWild    = "wild"
)

// colorRanks are the ranks printed in each of the four colors.
var colorRanks = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", RankSkip, RankReverse, RankDrawTwo}

// Card is an immutable color/rank pair. Cards have no identity beyond value
// equality; two red 5s are interchangeable for rule purposes.
type Card struct {
	Category Category `json:"category"`
	Rank     string   `json:"rank"`
}

// String returns a short human-readable form like "red 5" or "black wild"
func (c Card) String() string {
	return c.Category.String() + " " + c.Rank
}

// IsWild reports whether the card is a black wild.
func (c Card) IsWild() bool {
	return c.Category == Black
}

// Playable reports whether the card may legally be played on top of the
// given table card: wilds always, otherwise a category or rank match.
func (c Card) Playable(table Card) bool {
	if c.Category == Black {
		return true
	}
	return c.Category == table.Category || c.Rank == table.Rank
}

// Resolve returns the card that lands on the table after playing c. For a
// wild the chosen category overrides black; other cards pass through
// unchanged.
func (c Card) Resolve(chosen Category) Card {
	if c.Category != Black {
		return c
	}
	return Card{Category: chosen, Rank: c.Rank}
}

// skipsNext reports whether playing the card costs the next player their
// turn. With at most four seats, reverse degenerates to a skip.
func (c Card) skipsNext() bool {
	return c.Rank == RankSkip || c.Rank == RankReverse
}
