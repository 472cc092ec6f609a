package bot

import (
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
)

// strategy decides whether to draw another card given the hand's total
// and the dealer's exposed card value (zero when unknown)
type strategy func(value, dealerUp int) bool

// tableBot plays one seat by following a strategy. It tracks its own
// hand from the deal notifications and submits decisions through the
// driver, one per prompt: it acts when it receives its turn, and again
// after each card it drew, until the strategy stands or the hand
// resolves.
type tableBot struct {
	logger   logrus.FieldLogger
	name     string
	strategy strategy

	hid      blackjack.Hid
	driver   blackjack.Driver
	hand     *blackjack.Hand
	dealerUp int
	myTurn   bool
	done     bool
}

func newTableBot(logger logrus.FieldLogger, name string, s strategy) *tableBot {
	return &tableBot{
		logger:   logger.WithField("bot", name),
		name:     name,
		strategy: s,
	}
}

// Sit hands the bot its identity for the round
func (b *tableBot) Sit(hid blackjack.Hid) {
	b.hid = hid
}

// SetDealer hands the bot its decision surface
func (b *tableBot) SetDealer(driver blackjack.Driver) {
	b.driver = driver
}

// StartGame resets the bot for a fresh round
func (b *tableBot) StartGame(hids []blackjack.Hid, shoeSize int) {
	hid := b.hid
	b.hand = blackjack.NewHand(&hid)
	b.dealerUp = 0
	b.myTurn = false
	b.done = false
}

// Deal tracks the bot's own cards and the dealer's exposed card. A card
// drawn on the bot's turn triggers the next decision.
func (b *tableBot) Deal(hid blackjack.Hid, card *deck.Card, value int) {
	if card == nil {
		return
	}

	if hid.Key == b.hid.Key {
		b.hand.Hit(card)
		if b.myTurn && !b.done {
			b.act()
		}

		return
	}

	if hid.Seat == blackjack.SeatDealer && b.dealerUp == 0 {
		b.dealerUp = card.BlackjackValue()
	}
}

// Play acts when the turn is the bot's own and otherwise just notes the
// turn moved on
func (b *tableBot) Play(hid blackjack.Hid) {
	if hid.Key != b.hid.Key {
		b.myTurn = false
		return
	}

	b.myTurn = true
	b.done = false
	b.act()
}

// act submits one decision. A hand at 21 or beyond needs no action; the
// table moves on by itself.
func (b *tableBot) act() {
	value := b.hand.Value()
	if value >= 21 {
		b.done = true
		return
	}

	if b.strategy(value, b.dealerUp) {
		b.logger.WithField("value", value).Debug("bot hits")
		b.driver.Hit(b, b.hid)
		return
	}

	b.done = true
	b.logger.WithField("value", value).Debug("bot stays")
	b.driver.Stay(b, b.hid)
}

func (b *tableBot) Blackjack(hid blackjack.Hid) {
	if hid.Key == b.hid.Key {
		b.done = true
	}
}

func (b *tableBot) Bust(hid blackjack.Hid) {
	if hid.Key == b.hid.Key {
		b.done = true
	}
}

func (b *tableBot) Charlie(hid blackjack.Hid) {
	if hid.Key == b.hid.Key {
		b.done = true
	}
}

func (b *tableBot) Win(hid blackjack.Hid) {}

func (b *tableBot) Lose(hid blackjack.Hid) {}

func (b *tableBot) Push(hid blackjack.Hid) {}

func (b *tableBot) Shuffling() {}

func (b *tableBot) EndGame(shoeSize int) {
	b.myTurn = false
}
