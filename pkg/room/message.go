package room

import (
	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/table"
)

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	// Action is one of "bet", "hit", "stay", or "double"
	Action string `json:"action"`
	// Amt and SideAmt are the wagers riding on a "bet" action
	Amt     float64 `json:"amt"`
	SideAmt float64 `json:"sideAmt"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// Response is an outgoing message to a web client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

// startGameEvent announces a new round
type startGameEvent struct {
	Hids     []blackjack.Hid `json:"hids"`
	ShoeSize int             `json:"shoeSize"`
}

// dealEvent reports a card dealt to a hand. A null card means the
// hand's value was recomputed without a deal.
type dealEvent struct {
	Hid   blackjack.Hid `json:"hid"`
	Card  *deck.Card    `json:"card"`
	Value int           `json:"value"`
}

// handEvent reports a state change for a single hand (turn, blackjack,
// bust, charlie, win, lose, push)
type handEvent struct {
	Hid blackjack.Hid `json:"hid"`
}

// endGameEvent announces the end of a round
type endGameEvent struct {
	ShoeSize int `json:"shoeSize"`
}

// clientStatePlayer is the per-player entry in a clientState broadcast
type clientStatePlayer struct {
	*table.PlayerTable
	IsConnected bool `json:"isConnected"`
	IsSeated    bool `json:"isSeated"`
}
