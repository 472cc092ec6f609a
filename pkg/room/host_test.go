package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/blackjack"
)

type fixedPayRule struct {
	pay float64
}

func (f fixedPayRule) Apply(hand *blackjack.Hand) float64 {
	return f.pay
}

func TestTrackedSideRule_recordsPayouts(t *testing.T) {
	a := assert.New(t)

	hid := blackjack.NewHid(blackjack.SeatYou, 25, 5)
	hand := blackjack.NewHand(hid)

	tracked := &trackedSideRule{rule: fixedPayRule{pay: 0}, pay: make(map[string]float64)}
	a.Equal(0., tracked.Apply(hand))
	_, ok := tracked.pay[hid.Key]
	a.False(ok)

	tracked.rule = fixedPayRule{pay: 15}
	a.Equal(15., tracked.Apply(hand))
	a.Equal(15., tracked.pay[hid.Key])
}

func TestHost_settlementDelta(t *testing.T) {
	a := assert.New(t)

	hid := *blackjack.NewHid(blackjack.SeatYou, 25, 5)

	// no side-bet rule at the table: the side wager is simply lost
	h := &Host{sideWager: 5}
	a.Equal(-30, h.settlementDelta(hid, blackjack.Loss))
	a.Equal(20, h.settlementDelta(hid, blackjack.Profit))
	a.Equal(-5, h.settlementDelta(hid, blackjack.Push))

	// a rule that did not pay: same as above
	h.sideRule = &trackedSideRule{rule: fixedPayRule{}, pay: make(map[string]float64)}
	a.Equal(-30, h.settlementDelta(hid, blackjack.Loss))

	// a payout is credited even when it exactly equals the wager
	h.sideRule.pay[hid.Key] = 5
	a.Equal(-20, h.settlementDelta(hid, blackjack.Loss))
	a.Equal(30, h.settlementDelta(hid, blackjack.Profit))

	h.sideRule.pay[hid.Key] = 250
	a.Equal(225, h.settlementDelta(hid, blackjack.Loss))

	// no side wager, no payout
	h = &Host{}
	plain := *blackjack.NewHid(blackjack.SeatYou, 50, 0)
	a.Equal(50, h.settlementDelta(plain, blackjack.Profit))
	a.Equal(0, h.settlementDelta(plain, blackjack.Push))
}
