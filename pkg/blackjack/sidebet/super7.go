package sidebet

import (
	"blackjack-server/pkg/blackjack"
)

// super-seven payout ladder, per leading seven in the hand
const (
	oneSevenPays    = 3
	twoSevensPays   = 50
	threeSevensPays = 500
)

// super7 pays on sevens dealt off the top of the hand: one seven pays
// 3:1, two in a row pay 50:1, and three pay 500:1. The run is broken by
// the first non-seven.
type super7 struct{}

// Apply computes the side-bet payout for the hand. No side wager, or no
// leading seven, means no payout.
func (super7) Apply(hand *blackjack.Hand) float64 {
	wager := hand.Hid().SideAmt
	if wager == 0 {
		return 0
	}

	sevens := 0
	for _, card := range hand.Cards() {
		if card.Rank != 7 {
			break
		}

		sevens++
	}

	switch {
	case sevens >= 3:
		return wager * threeSevensPays
	case sevens == 2:
		return wager * twoSevensPays
	case sevens == 1:
		return wager * oneSevenPays
	}

	return 0
}
