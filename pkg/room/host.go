package room

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"blackjack-server/internal/config"
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/blackjack/bot"
	"blackjack-server/pkg/blackjack/sidebet"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/table"
)

// Host runs one blackjack table. All engine access happens on the
// host's run loop, one request at a time; clients only ever enqueue.
//
// A table plays one round at a time for a single human seat: whoever
// places the bet is the round's participant, and the configured bots
// fill the side seats.
type Host struct {
	pitBoss *PitBoss
	table   *table.Table
	logger  logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	engine *blackjack.Dealer

	// round state; only touched from the run loop
	seated    *Client
	hid       *blackjack.Hid
	round     *table.Round
	sideWager float64
	sideRule  *trackedSideRule

	execInRunLoop chan func()
	close         chan bool
}

// NewHost creates a host for the table, with the shoe, bots, and
// side-bet rule the table is configured with
func NewHost(pitBoss *PitBoss, tbl *table.Table) (*Host, error) {
	logger := logrus.WithFields(logrus.Fields{
		"uuid": tbl.UUID,
		"name": tbl.Name,
	})

	shoe, err := deck.ShoeByName(tbl.Shoe)
	if err != nil {
		return nil, err
	}

	sideRule, err := sidebet.Get(tbl.SideBet)
	if err != nil {
		return nil, err
	}

	h := &Host{
		pitBoss:       pitBoss,
		table:         tbl,
		logger:        logger,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	var engineRule blackjack.SideBetRule
	if sideRule != nil {
		h.sideRule = &trackedSideRule{rule: sideRule, pay: make(map[string]float64)}
		engineRule = h.sideRule
	}

	cfg := config.Instance()
	engine, err := blackjack.NewDealer(logger, shoe, blackjack.Options{
		BotRight:     tbl.BotRight,
		BotLeft:      tbl.BotLeft,
		ResolveBot:   bot.Resolver(logger),
		SideRule:     engineRule,
		Ledger:       h,
		DealDelay:    cfg.DealDelay(),
		ShuffleDelay: cfg.ShuffleDelay(),
	})
	if err != nil {
		return nil, err
	}

	h.engine = engine
	return h, nil
}

// Clients will return a slice of connected (at the time) clients
func (h *Host) Clients() []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (h *Host) StartShift() {
	go h.runLoop()
}

func (h *Host) runLoop() {
	h.logger.Debug("creating host run loop")
	for {
		select {
		case fn := <-h.execInRunLoop:
			fn()
		case <-h.close:
			h.logger.Debug("terminating host run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (h *Host) AddClient(client *Client) {
	h.lock.Lock()
	client.host = h
	h.clients[client] = true
	h.lock.Unlock()

	h.execInRunLoop <- h.sendPlayerData
}

// RemoveClient removes a client
// This method must return quickly
func (h *Host) RemoveClient(client *Client) (lastClient bool) {
	h.lock.Lock()
	delete(h.clients, client)
	nClients := len(h.clients)
	h.lock.Unlock()

	h.execInRunLoop <- func() {
		// a player who walks away mid-round forfeits the turn; the
		// round plays out as if they stood
		if h.seated == client && h.hid != nil && !h.engine.RoundOver() {
			h.engine.Stay(client, *h.hid)
			h.checkRoundOver()
		}

		h.sendPlayerData()
	}

	return nClients == 0
}

// EndShift is called when the host is no longer needed
func (h *Host) EndShift() {
	h.engine.Close()
	close(h.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (h *Host) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "bet":
		h.execInRunLoop <- func() { h.bet(c, msg) }
	case "hit":
		h.execInRunLoop <- func() { h.action(c, msg, h.engine.Hit) }
	case "stay":
		h.execInRunLoop <- func() { h.action(c, msg, h.engine.Stay) }
	case "double":
		h.execInRunLoop <- func() { h.action(c, msg, h.engine.DoubleDown) }
	default:
		h.logger.WithField("msg", msg).Warn("unknown message")
	}
}

// bet starts a new round for the client
// NOTE: must only be called from the run loop
func (h *Host) bet(c *Client, msg *PayloadIn) {
	if !h.engine.RoundOver() {
		c.send(newErrorResponse(msg.Context, errors.New("a round is already in progress")))
		return
	}

	if msg.Amt <= 0 {
		c.send(newErrorResponse(msg.Context, errors.New("bet must be positive")))
		return
	}

	if msg.SideAmt < 0 {
		c.send(newErrorResponse(msg.Context, errors.New("side bet cannot be negative")))
		return
	}

	pt, err := c.player.GetPlayerTable(context.Background(), h.table)
	if err != nil {
		c.send(newErrorResponse(msg.Context, err))
		return
	}

	if pt.Balance < int(msg.Amt)+int(msg.SideAmt) {
		c.send(newErrorResponse(msg.Context, table.UserError("insufficient balance")))
		return
	}

	round, err := h.table.CreateRound(context.Background())
	if err != nil {
		c.send(newErrorResponse(msg.Context, err))
		return
	}

	h.seated = c
	h.round = round
	h.sideWager = msg.SideAmt
	if h.sideRule != nil {
		h.sideRule.pay = make(map[string]float64)
	}
	h.hid = blackjack.NewHid(blackjack.SeatYou, msg.Amt, msg.SideAmt)

	c.send(OK(msg.Context))
	h.engine.Bet(c, h.hid)
	h.checkRoundOver()
}

// action forwards a turn decision to the engine
// NOTE: must only be called from the run loop
func (h *Host) action(c *Client, msg *PayloadIn, fn func(blackjack.Participant, blackjack.Hid)) {
	if h.seated != c || h.hid == nil {
		c.send(newErrorResponse(msg.Context, errors.New("you are not playing this round")))
		return
	}

	fn(c, *h.hid)
	h.checkRoundOver()
}

// checkRoundOver closes out the round record once the engine is done
// NOTE: must only be called from the run loop
func (h *Host) checkRoundOver() {
	if !h.engine.RoundOver() || h.round == nil {
		return
	}

	summary := map[string]interface{}{
		"wager":   h.hid.Amt,
		"sideBet": h.hid.SideAmt,
	}

	if err := h.round.End(context.Background(), summary, nil); err != nil {
		h.logger.WithError(err).Error("could not end round")
	}

	h.round = nil
	h.seated = nil
	h.hid = nil
}

// trackedSideRule wraps a side-bet rule and remembers its last payout
// per hand, so settlement never has to infer whether the rule paid from
// the wager value alone.
type trackedSideRule struct {
	rule blackjack.SideBetRule
	pay  map[string]float64
}

func (t *trackedSideRule) Apply(hand *blackjack.Hand) float64 {
	pay := t.rule.Apply(hand)
	if pay != 0 {
		t.pay[hand.Hid().Key] = pay
	}

	return pay
}

// settlementDelta converts a hand's outcome into the bankroll change
// for the seated player. The side wager is lost unless the rule paid;
// a payout is credited as net winnings.
func (h *Host) settlementDelta(hid blackjack.Hid, gain float64) int {
	delta := int(math.Round(hid.Amt * gain))

	if pay, ok := h.sideRulePayout(hid); ok {
		delta += int(math.Round(pay))
	} else {
		delta -= int(math.Round(h.sideWager))
	}

	return delta
}

func (h *Host) sideRulePayout(hid blackjack.Hid) (float64, bool) {
	if h.sideRule == nil {
		return 0, false
	}

	pay, ok := h.sideRule.pay[hid.Key]
	return pay, ok
}

// UpdateBankroll applies a settlement to the seated player's bankroll.
// Bots play with nothing at stake.
func (h *Host) UpdateBankroll(p blackjack.Participant, hid blackjack.Hid, gain float64) {
	if hid.Seat != blackjack.SeatYou || h.seated == nil {
		return
	}

	delta := h.settlementDelta(hid, gain)

	pt, err := h.seated.player.GetPlayerTable(context.Background(), h.table)
	if err != nil {
		h.logger.WithError(err).Error("could not load player bankroll")
		return
	}

	if err := pt.AdjustBalance(context.Background(), delta, "round settled", h.round); err != nil {
		h.logger.WithError(err).Error("could not adjust balance")
	}
}

// sendPlayerData broadcasts who is at the table and who is connected
// NOTE: must only be called from the run loop
func (h *Host) sendPlayerData() {
	players, err := h.table.GetPlayers(context.Background())
	if err != nil {
		h.logger.WithError(err).Error("could not get players")
		return
	}

	connectedClients := make(map[int64]*table.Player)
	for _, client := range h.Clients() {
		connectedClients[client.player.ID] = client.player
	}

	csPlayers := make(map[int64]*clientStatePlayer, len(players))
	for _, player := range players {
		_, isConnected := connectedClients[player.PlayerID]
		delete(connectedClients, player.PlayerID)
		csPlayers[player.PlayerID] = &clientStatePlayer{
			PlayerTable: player,
			IsConnected: isConnected,
			IsSeated:    true,
		}
	}

	for _, player := range connectedClients {
		csPlayers[player.ID] = &clientStatePlayer{
			PlayerTable: &table.PlayerTable{
				Player:    player,
				PlayerID:  player.ID,
				TableUUID: h.table.UUID,
			},
			IsConnected: true,
			IsSeated:    false,
		}
	}

	for _, client := range h.Clients() {
		client.send(&Response{
			Key:  "clientState",
			Data: csPlayers,
		})
	}
}
