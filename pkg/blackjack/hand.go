package blackjack

import (
	"blackjack-server/pkg/deck"
)

// charlieSize is the number of cards that makes a Charlie when the hand
// hasn't busted
const charlieSize = 5

// Hand is an ordered set of cards tied to a hand identity. The dealer
// engine owns the authoritative copy; a hand revalues itself on every
// hit.
type Hand struct {
	hid   *Hid
	cards []*deck.Card
	value int
}

// NewHand returns an empty hand for the given identity
func NewHand(hid *Hid) *Hand {
	return &Hand{
		hid:   hid,
		cards: make([]*deck.Card, 0, 5),
	}
}

// Hid returns the hand's identity
func (h *Hand) Hid() *Hid {
	return h.hid
}

// Hit appends a card to the hand and revalues it
func (h *Hand) Hit(card *deck.Card) {
	h.cards = append(h.cards, card)
	h.value = handValue(h.cards)
}

// Size returns the number of cards in the hand
func (h *Hand) Size() int {
	return len(h.cards)
}

// Cards returns a snapshot copy of the hand's cards
func (h *Hand) Cards() []*deck.Card {
	cards := make([]*deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Value returns the best blackjack total for the hand
func (h *Hand) Value() int {
	return h.value
}

// IsBlackjack returns true for a two-card 21
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.value == 21
}

// IsBroke returns true if the hand busted
func (h *Hand) IsBroke() bool {
	return h.value > 21
}

// IsCharlie returns true for a five-or-more card hand that hasn't busted
func (h *Hand) IsCharlie() bool {
	return len(h.cards) >= charlieSize && h.value <= 21
}

// Dubble doubles the wager on the hand
func (h *Hand) Dubble() {
	h.hid.MultiplyAmt(2)
}

// handValue computes the best blackjack total for the cards. Aces count
// eleven unless that would bust the hand; at most one ace can count
// eleven in a total <= 21.
func handValue(cards []*deck.Card) int {
	total := 0
	aces := 0

	for _, card := range cards {
		if card.IsAce() {
			aces++
			total++
			continue
		}

		total += card.BlackjackValue()
	}

	if aces > 0 && total+10 <= 21 {
		total += 10
	}

	return total
}
