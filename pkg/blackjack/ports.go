package blackjack

import (
	"blackjack-server/pkg/deck"
)

// Shoe supplies cards to the table
type Shoe interface {
	// Next returns the next card from the shoe
	Next() *deck.Card

	// Size returns the number of cards left in the shoe
	Size() int

	// ShuffleNeeded returns true if the shoe wants a reshuffle before
	// the next round
	ShuffleNeeded() bool

	// Shuffle reshuffles the shoe
	Shuffle()
}

// Participant receives table notifications for every seated hand. All
// Hid arguments are value snapshots; mutating them has no effect on the
// table.
type Participant interface {
	// StartGame announces a new round with every hand identity at the
	// table, the dealer's included, and the current shoe size
	StartGame(hids []Hid, shoeSize int)

	// Deal reports a card dealt to a hand along with the hand's new
	// value. A nil card means the value was recomputed without a deal.
	Deal(hid Hid, card *deck.Card, value int)

	// Play marks whose turn it is. The dealer's own hid signals the
	// dealer's turn.
	Play(hid Hid)

	// Blackjack reports a natural two-card 21
	Blackjack(hid Hid)

	// Bust reports a busted hand
	Bust(hid Hid)

	// Charlie reports a five-card Charlie
	Charlie(hid Hid)

	// Win, Lose, and Push report settlement against the dealer's hand
	Win(hid Hid)
	Lose(hid Hid)
	Push(hid Hid)

	// Shuffling announces the shoe is being shuffled
	Shuffling()

	// EndGame announces the round is over with the final shoe size
	EndGame(shoeSize int)
}

// Driver is the dealer-facing surface bots play through. Decisions
// submitted on it are queued and run after the current table request
// completes, never re-entrantly.
type Driver interface {
	Hit(p Participant, hid Hid)
	Stay(p Participant, hid Hid)
	DoubleDown(p Participant, hid Hid)
}

// Bot is an automated participant seated by the dealer. Bots do not
// receive the dealer's concealed card until the dealer's turn.
type Bot interface {
	Participant

	// Sit hands the bot the identity it will play at its assigned seat
	Sit(hid Hid)

	// SetDealer hands the bot its way of submitting decisions
	SetDealer(driver Driver)
}

// BotResolver produces a bot for a configured logical name
type BotResolver func(name string) (Bot, error)

// SideBetRule computes an additional payout for a resolved hand. A zero
// return means the rule has no effect on the hand.
type SideBetRule interface {
	Apply(hand *Hand) float64
}

// Ledger applies a profit, loss, or push adjustment for a hand
type Ledger interface {
	UpdateBankroll(p Participant, hid Hid, gain float64)
}
