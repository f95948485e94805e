package game

import "testing"

func TestCardPlayable(t *testing.T) {
	table := Card{Category: Red, Rank: "5"}

	tests := []struct {
		name     string
		card     Card
		playable bool
	}{
		{"category match", Card{Category: Red, Rank: "9"}, true},
		{"rank match", Card{Category: Blue, Rank: "5"}, true},
		{"wild always plays", Card{Category: Black, Rank: RankWild}, true},
		{"no match", Card{Category: Green, Rank: "2"}, false},
		{"action card category match", Card{Category: Red, Rank: RankSkip}, true},
		{"action card no match", Card{Category: Yellow, Rank: RankReverse}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.Playable(table); got != tt.playable {
				t.Errorf("Playable(%v on %v) = %v, want %v", tt.card, table, got, tt.playable)
			}
		})
	}
}

func TestCardResolve(t *testing.T) {
	wild := Card{Category: Black, Rank: RankWild}
	resolved := wild.Resolve(Green)
	if resolved.Category != Green {
		t.Errorf("Expected resolved wild to be green, got %s", resolved.Category)
	}
	if resolved.Rank != RankWild {
		t.Errorf("Resolve should not change the rank, got %s", resolved.Rank)
	}

	// Non-wilds ignore the chosen category
	red := Card{Category: Red, Rank: "3"}
	if got := red.Resolve(Blue); got != red {
		t.Errorf("Resolve on non-wild changed the card: %v", got)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{Red, Blue, Green, Yellow, Black} {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Category("purple").Valid() {
		t.Error("unknown category should not be valid")
	}
}

func TestSkipsNext(t *testing.T) {
	if !(Card{Category: Red, Rank: RankSkip}).skipsNext() {
		t.Error("skip should skip the next player")
	}
	if !(Card{Category: Red, Rank: RankReverse}).skipsNext() {
		t.Error("reverse should skip the next player")
	}
	if (Card{Category: Red, Rank: "7"}).skipsNext() {
		t.Error("numeric card should not skip")
	}
}
