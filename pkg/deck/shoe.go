package deck

import (
	"fmt"
	"math/rand"

	"blackjack-server/internal/rng"
)

// cutPenetration is the fraction of the shoe dealt before a reshuffle
// is requested
const cutPenetration = 0.8

// Shoe holds one or more shuffled decks that cards are dealt from
type Shoe struct {
	cards []*Card
	decks int
	seed  int64
	rng   *rand.Rand
}

// NewShoe returns a new shoe with the specified number of decks.
// Important! the shoe is unshuffled. You must call the Shuffle() method
// before dealing from it.
func NewShoe(decks int) *Shoe {
	if decks <= 0 {
		panic("decks must be > 0")
	}

	s := &Shoe{
		decks: decks,
		seed:  -1,
	}

	s.buildShoe()
	return s
}

// ShoeByName returns a dealable shoe for the configured logical name.
// Unlike NewShoe, the returned shoe is already shuffled.
func ShoeByName(name string) (*Shoe, error) {
	var decks int
	switch name {
	case "", "standard":
		decks = 6
	case "double-deck":
		decks = 2
	case "single-deck":
		decks = 1
	default:
		return nil, fmt.Errorf("no shoe with name: %s", name)
	}

	shoe := NewShoe(decks)
	shoe.Shuffle()
	return shoe, nil
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (s *Shoe) SetSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Shoe) buildShoe() {
	cards := make([]*Card, 0, s.decks*52)
	for i := 0; i < s.decks; i++ {
		for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
			for rank := 2; rank <= 14; rank++ {
				cards = append(cards, &Card{
					Rank: rank,
					Suit: suit,
				})
			}
		}
	}

	s.cards = cards
}

// Shuffle rebuilds the shoe and shuffles it
func (s *Shoe) Shuffle() {
	s.buildShoe()

	if s.rng == nil {
		s.SetSeed(rng.Seed())
	}

	for j := len(s.cards) - 1; j > 0; j-- {
		i := s.rng.Intn(j + 1)

		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// ShuffleNeeded returns true once the shoe is dealt past its cut point
func (s *Shoe) ShuffleNeeded() bool {
	capacity := s.decks * 52
	return len(s.cards) <= capacity-int(float64(capacity)*cutPenetration)
}

// Next returns the next card from the shoe.
// An exhausted shoe reshuffles in place so the table never stalls
// waiting for cards mid-hand.
func (s *Shoe) Next() *Card {
	if len(s.cards) == 0 {
		s.Shuffle()
	}

	card := s.cards[0]
	s.cards = s.cards[1:]

	return card
}

// Size returns the number of cards left in the shoe
func (s *Shoe) Size() int {
	return len(s.cards)
}
