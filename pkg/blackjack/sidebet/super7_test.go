package sidebet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
)

func handWithSide(side float64, cards string) *blackjack.Hand {
	hand := blackjack.NewHand(blackjack.NewHid(blackjack.SeatYou, 25, side))
	for _, card := range deck.CardsFromString(cards) {
		hand.Hit(card)
	}

	return hand
}

func TestSuper7_Apply(t *testing.T) {
	a := assert.New(t)

	rule, err := Get("super7")
	a.NoError(err)

	a.Equal(15.0, rule.Apply(handWithSide(5, "7c,10c")))
	a.Equal(250.0, rule.Apply(handWithSide(5, "7c,7d,10c")))
	a.Equal(2500.0, rule.Apply(handWithSide(5, "7c,7d,7h")))

	// the run must start on the first card
	a.Equal(0.0, rule.Apply(handWithSide(5, "10c,7c")))

	// no side wager, no payout
	a.Equal(0.0, rule.Apply(handWithSide(0, "7c,10c")))
}

func TestGet(t *testing.T) {
	a := assert.New(t)

	rule, err := Get("")
	a.NoError(err)
	a.Nil(rule)

	rule, err = Get("lucky-ladies")
	a.EqualError(err, "no side-bet rule with name: lucky-ladies")
	a.Nil(rule)
}
