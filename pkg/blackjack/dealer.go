package blackjack

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/deck"
)

// payout factors applied to a hand's wager
const (
	BlackjackPays = 3 / 2.
	CharliePays   = 2 / 1.
	Profit        = 1.0
	Loss          = -1.0
	Push          = 0.0
)

// dealerStand is the total the dealer stands on, soft or hard
const dealerStand = 17

type role int

const (
	roleHuman role = iota
	roleBot
)

// seated pairs a participant with its role at the table. The role tag
// decides whether the dealer's concealed card is withheld.
type seated struct {
	Participant
	role role
}

// Options configures a dealer
type Options struct {
	// BotRight and BotLeft are the logical names of the bots seated at
	// the two bot seats. An empty name leaves the seat open.
	BotRight string
	BotLeft  string

	// ResolveBot produces a bot for a configured name. A nil resolver
	// or a failed resolution leaves the seat open.
	ResolveBot BotResolver

	// SideRule is the optional side-bet rule evaluated on every
	// bankroll update
	SideRule SideBetRule

	// Ledger receives the profit/loss/push adjustments
	Ledger Ledger

	// DealDelay and ShuffleDelay pace the dealing. Zero disables the
	// pacing entirely.
	DealDelay    time.Duration
	ShuffleDelay time.Duration
}

// Dealer runs one blackjack table: seating, dealing, turn order, the
// dealer's own draw, and settlement.
//
// House rules:
//  1. Dealer stands on 17, hard or soft.
//  2. Blackjack pays 3:2.
//  3. Five-card Charlie pays 2:1.
//
// A dealer is confined to a single goroutine; callers serialize
// requests onto it. Bot decisions are queued internally and run after
// the request that triggered them completes.
type Dealer struct {
	logger logrus.FieldLogger
	shoe   Shoe
	opts   Options

	hands          map[string]*Hand
	players        map[string]*seated
	handSequence   []*Hid
	playerSequence []*seated
	handSeqIndex   int
	active         Participant
	dealerHand     *Hand
	holeCard       *deck.Card
	gameOver       bool

	pending  []func()
	depth    int
	draining bool

	done      chan struct{}
	closeOnce sync.Once
}

// NewDealer returns a dealer playing out of the given shoe
func NewDealer(logger logrus.FieldLogger, shoe Shoe, opts Options) (*Dealer, error) {
	if shoe == nil {
		return nil, errors.New("dealer requires a shoe")
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	d := &Dealer{
		logger:   logger,
		shoe:     shoe,
		opts:     opts,
		gameOver: true,
		done:     make(chan struct{}),
	}

	d.reset()
	return d, nil
}

// RoundOver returns true if no round is being played
func (d *Dealer) RoundOver() bool {
	return d.gameOver
}

// Close interrupts any pacing delay in progress. An interrupted delay
// proceeds immediately; it does not corrupt the round.
func (d *Dealer) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
}

// Bet starts a new round for the human participant's hand. Any prior
// round state is discarded. The two bot seats are filled best-effort
// before and after the human, in seating order right, you, left.
func (d *Dealer) Bet(you Participant, hid *Hid) {
	d.enter()
	defer d.exit()

	d.logger.WithFields(logrus.Fields{
		"amt":     hid.Amt,
		"sideAmt": hid.SideAmt,
		"hid":     hid.String(),
	}).Info("got new bet")

	d.reset()

	// seating order is fixed: bot right, you, bot left
	d.spawnBot(d.opts.BotRight, SeatRight)
	d.sit(you, roleHuman, hid)
	d.spawnBot(d.opts.BotLeft, SeatLeft)

	d.handSeqIndex = 0
	d.dealerHand = NewHand(NewHid(SeatDealer, 0, 0))

	d.startRound()
}

// Hit deals one more card to the hand. Only the active participant's
// unresolved hand may hit; anything else is dropped with a diagnostic.
func (d *Dealer) Hit(p Participant, hid Hid) {
	d.enter()
	defer d.exit()

	hand := d.validate(p, hid)
	if hand == nil {
		d.logger.WithField("hid", hid.String()).Error("got invalid HIT")
		return
	}

	card := d.shoe.Next()
	hand.Hit(card)
	d.broadcastDeal(hand, card)

	switch {
	case hand.IsBroke():
		d.updateBankroll(hand.Hid(), Loss)
		d.broadcast(func(p Participant) { p.Bust(*hand.Hid()) })
		d.advanceTurn()
	case hand.IsCharlie():
		hand.Hid().MultiplyAmt(CharliePays)
		d.updateBankroll(hand.Hid(), Profit)
		d.broadcast(func(p Participant) { p.Charlie(*hand.Hid()) })
		d.advanceTurn()
	case hand.Value() == 21:
		// don't force the player to act on 21
		d.advanceTurn()
	}
}

// Stay stands the hand down and moves to the next one
func (d *Dealer) Stay(p Participant, hid Hid) {
	d.enter()
	defer d.exit()

	if d.validate(p, hid) == nil {
		d.logger.WithField("hid", hid.String()).Error("got invalid STAY")
		return
	}

	d.advanceTurn()
}

// DoubleDown doubles the hand's wager and deals exactly one card. The
// turn advances regardless of the outcome; a non-busted double is
// settled against the dealer later.
func (d *Dealer) DoubleDown(p Participant, hid Hid) {
	d.enter()
	defer d.exit()

	hand := d.validate(p, hid)
	if hand == nil {
		d.logger.WithField("hid", hid.String()).Error("got invalid DOUBLE DOWN")
		return
	}

	hand.Dubble()
	d.logger.WithFields(logrus.Fields{
		"amt": hand.Hid().Amt,
		"hid": hand.Hid().String(),
	}).Info("got double down")

	card := d.shoe.Next()
	hand.Hit(card)
	d.broadcastDeal(hand, card)

	if hand.IsBroke() {
		d.updateBankroll(hand.Hid(), Loss)
		d.broadcast(func(p Participant) { p.Bust(*hand.Hid()) })
	}

	d.advanceTurn()
}

// reset clears out the previous round
func (d *Dealer) reset() {
	d.hands = make(map[string]*Hand)
	d.players = make(map[string]*seated)
	d.handSequence = nil
	d.playerSequence = nil
	d.handSeqIndex = 0
	d.active = nil
	d.holeCard = nil
	d.pending = nil
}

// sit registers a participant and its hand identity at the table
func (d *Dealer) sit(p Participant, r role, hid *Hid) {
	sp := &seated{Participant: p, role: r}

	d.handSequence = append(d.handSequence, hid)
	d.playerSequence = append(d.playerSequence, sp)
	d.players[hid.Key] = sp
	d.hands[hid.Key] = NewHand(hid)
}

// spawnBot seats a bot by its configured name. Failure to resolve the
// bot is not an error; the seat simply stays open.
func (d *Dealer) spawnBot(name string, seat Seat) {
	if !seat.BotSeat() {
		d.logger.WithField("seat", seat).Error("can't seat bot")
		return
	}

	if name == "" {
		d.logger.WithField("seat", seat).Debug("no bot configured")
		return
	}

	if d.opts.ResolveBot == nil {
		d.logger.WithField("bot", name).Warn("no bot resolver configured")
		return
	}

	bot, err := d.opts.ResolveBot(name)
	if err != nil {
		d.logger.WithError(err).WithField("bot", name).Error("could not spawn bot")
		return
	}

	hid := NewHid(seat, 0, 0)
	bot.Sit(*hid)
	bot.SetDealer(&queuedDriver{dealer: d})

	d.sit(bot, roleBot, hid)
	d.logger.WithFields(logrus.Fields{
		"bot":  name,
		"seat": seat,
	}).Info("spawned bot")
}

// startRound announces the round, deals the opening two cards to every
// hand plus the dealer, and hands play to the first hand
func (d *Dealer) startRound() {
	d.logger.Info("starting a round")

	d.gameOver = false

	hids := make([]Hid, 0, len(d.handSequence)+1)
	for _, hid := range d.handSequence {
		hids = append(hids, *hid)
	}
	hids = append(hids, *d.dealerHand.Hid())

	d.broadcast(func(p Participant) { p.StartGame(hids, d.shoe.Size()) })

	d.shuffleIfNeeded()

	// first card to every hand, then the dealer's concealed card
	d.dealRound()

	d.holeCard = d.shoe.Next()
	d.dealerHand.Hit(d.holeCard)
	d.pause(d.opts.DealDelay)

	dealerHid := *d.dealerHand.Hid()
	for _, sp := range d.playerSequence {
		// bots must not see the hole card until the dealer's turn
		if sp.role != roleBot {
			sp.Deal(dealerHid, d.holeCard, handValue([]*deck.Card{d.holeCard}))
		}
	}

	// second card to every hand, then the dealer's exposed card
	d.dealRound()

	upCard := d.shoe.Next()
	d.dealerHand.Hit(upCard)
	d.pause(d.opts.DealDelay)

	// the broadcast value covers the up card only; the full dealer
	// total would leak the hole card
	upValue := handValue([]*deck.Card{upCard})
	d.broadcast(func(p Participant) { p.Deal(dealerHid, upCard, upValue) })

	if upCard.IsAce() {
		d.insure()
	}

	if d.dealerHand.IsBlackjack() {
		d.closeRound()
	} else {
		d.advanceTurn()
	}
}

// insure is where an insurance offer would go when the dealer shows an
// ace. Insurance is not implemented; the round proceeds without it.
func (d *Dealer) insure() {
}

// shuffleIfNeeded reshuffles the shoe when it asks for one
func (d *Dealer) shuffleIfNeeded() {
	if !d.shoe.ShuffleNeeded() {
		return
	}

	d.shoe.Shuffle()
	d.broadcast(func(p Participant) { p.Shuffling() })
	d.pause(d.opts.ShuffleDelay)
}

// dealRound deals one card to every hand in seating order. A hand that
// completes a natural blackjack locks in a 3:2 win on the spot and
// never plays a turn.
func (d *Dealer) dealRound() {
	for _, hid := range d.handSequence {
		hand := d.hands[hid.Key]

		card := d.shoe.Next()
		hand.Hit(card)

		d.pause(d.opts.DealDelay)
		d.broadcastDeal(hand, card)

		if hand.IsBlackjack() {
			hid.MultiplyAmt(BlackjackPays)
			d.updateBankroll(hid, Profit)
			d.broadcast(func(p Participant) { p.Blackjack(*hid) })
		}
	}
}

// advanceTurn walks the turn sequence forward to the next hand that
// still has a turn to play. Hands resolved as naturals are skipped
// without a turn notification. Once the sequence is exhausted the
// dealer plays.
func (d *Dealer) advanceTurn() {
	for d.handSeqIndex < len(d.handSequence) {
		hid := d.handSequence[d.handSeqIndex]
		d.handSeqIndex++

		if d.hands[hid.Key].IsBlackjack() {
			continue
		}

		d.active = d.players[hid.Key].Participant
		d.logger.WithField("hid", hid.String()).Debug("sending turn")
		d.broadcast(func(p Participant) { p.Play(*hid) })
		return
	}

	d.closeRound()
}

// closeRound reveals the hole card, plays the dealer's hand, and
// settles every hand that wasn't already resolved during play. It is a
// no-op once the round is over.
func (d *Dealer) closeRound() {
	if d.gameOver {
		return
	}

	d.gameOver = true
	d.active = nil

	dealerHid := *d.dealerHand.Hid()

	// dealer's turn: bots get the hole card now, everyone gets the
	// turn marker
	for _, sp := range d.playerSequence {
		if sp.role == roleBot {
			sp.Deal(dealerHid, d.holeCard, d.dealerHand.Value())
		}

		sp.Play(dealerHid)
	}

	// a nil card means the hand value was recomputed without a deal
	d.broadcast(func(p Participant) { p.Deal(dealerHid, nil, d.dealerHand.Value()) })

	// the dealer only draws when someone is still standing and the
	// dealer doesn't hold a natural
	if d.handsStanding() && !d.dealerHand.IsBlackjack() {
		for d.dealerHand.Value() < dealerStand {
			card := d.shoe.Next()
			d.pause(d.opts.DealDelay)

			d.dealerHand.Hit(card)
			d.broadcastDeal(d.dealerHand, card)
		}
	}

	d.settle()
	d.wrapUp()
}

// settle compares every hand still in play against the dealer's final
// total. Hands resolved during the hit cycle are excluded.
func (d *Dealer) settle() {
	dealerValue := d.dealerHand.Value()
	dealerBroke := d.dealerHand.IsBroke()

	for _, hid := range d.handSequence {
		hand := d.hands[hid.Key]

		if hand.IsBroke() || hand.IsCharlie() || hand.IsBlackjack() {
			continue
		}

		switch {
		case hand.Value() < dealerValue && !dealerBroke:
			d.updateBankroll(hid, Loss)
			d.broadcast(func(p Participant) { p.Lose(*hid) })
		case (hand.Value() < dealerValue && dealerBroke) ||
			(hand.Value() > dealerValue && !dealerBroke):
			d.updateBankroll(hid, Profit)
			d.broadcast(func(p Participant) { p.Win(*hid) })
		case hand.Value() == dealerValue:
			d.updateBankroll(hid, Push)
			d.broadcast(func(p Participant) { p.Push(*hid) })
		}
	}
}

// wrapUp tells everyone the round is over
func (d *Dealer) wrapUp() {
	size := d.shoe.Size()
	d.broadcast(func(p Participant) { p.EndGame(size) })
}

// handsStanding returns true if at least one hand hasn't resolved as a
// bust, blackjack, or Charlie
func (d *Dealer) handsStanding() bool {
	for _, hid := range d.handSequence {
		hand := d.hands[hid.Key]

		if !hand.IsBroke() && !hand.IsBlackjack() && !hand.IsCharlie() {
			return true
		}
	}

	return false
}

// updateBankroll applies the side-bet rule and records the adjustment
// with the ledger
func (d *Dealer) updateBankroll(hid *Hid, gain float64) {
	d.applySideBet(hid)

	if d.opts.Ledger == nil {
		return
	}

	d.opts.Ledger.UpdateBankroll(d.players[hid.Key].Participant, *hid, gain)
}

// applySideBet evaluates the side-bet rule, if one is configured, on
// every bankroll update. A zero payout leaves the hand untouched.
func (d *Dealer) applySideBet(hid *Hid) {
	if d.opts.SideRule == nil {
		return
	}

	payout := d.opts.SideRule.Apply(d.hands[hid.Key])
	if payout == 0 {
		return
	}

	hid.SideAmt = payout
}

// validate returns the hand for the request, or nil if the request is
// for a nonexistent, resolved, or inactive hand, or comes from anyone
// but the active participant
func (d *Dealer) validate(p Participant, hid Hid) *Hand {
	if d.gameOver {
		return nil
	}

	hand := d.hands[hid.Key]
	if hand == nil {
		return nil
	}

	if hand.IsBroke() || hand.IsBlackjack() || hand.IsCharlie() {
		return nil
	}

	sp := d.players[hid.Key]
	if sp == nil || sp.Participant != d.active || p != d.active {
		return nil
	}

	return hand
}

// broadcast sends a notification to every seated participant in
// seating order
func (d *Dealer) broadcast(fn func(Participant)) {
	for _, sp := range d.playerSequence {
		fn(sp.Participant)
	}
}

// broadcastDeal distributes a dealt card, along with the hand's new
// value, to everyone at the table
func (d *Dealer) broadcastDeal(hand *Hand, card *deck.Card) {
	hid := *hand.Hid()
	value := hand.Value()
	d.broadcast(func(p Participant) { p.Deal(hid, card, value) })
}

// pause blocks the table for the given duration. Closing the dealer
// interrupts the pause; play simply proceeds immediately.
func (d *Dealer) pause(dur time.Duration) {
	if dur <= 0 {
		return
	}

	t := time.NewTimer(dur)
	defer t.Stop()

	select {
	case <-t.C:
	case <-d.done:
	}
}

// enter/exit bracket every public operation. Bot decisions queued
// during an operation run once the operation completes, keeping the
// state machine free of re-entrant interleaving.
func (d *Dealer) enter() {
	d.depth++
}

func (d *Dealer) exit() {
	d.depth--
	if d.depth > 0 || d.draining {
		return
	}

	d.draining = true
	for len(d.pending) > 0 {
		fn := d.pending[0]
		d.pending = d.pending[1:]
		fn()
	}
	d.draining = false
}

func (d *Dealer) enqueue(fn func()) {
	d.pending = append(d.pending, fn)
}

// queuedDriver is the Driver bots play through; it defers their
// decisions until the current table request completes
type queuedDriver struct {
	dealer *Dealer
}

func (q *queuedDriver) Hit(p Participant, hid Hid) {
	q.dealer.enqueue(func() { q.dealer.Hit(p, hid) })
}

func (q *queuedDriver) Stay(p Participant, hid Hid) {
	q.dealer.enqueue(func() { q.dealer.Stay(p, hid) })
}

func (q *queuedDriver) DoubleDown(p Participant, hid Hid) {
	q.dealer.enqueue(func() { q.dealer.DoubleDown(p, hid) })
}
