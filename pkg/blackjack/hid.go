package blackjack

import (
	"fmt"

	"github.com/google/uuid"
)

// Hid identifies a single hand for the lifetime of a round. It carries
// the wager riding on the hand. The dealer holds the authoritative Hid;
// participants only ever receive value copies snapshotted at
// notification time.
type Hid struct {
	Key     string  `json:"key"`
	Seat    Seat    `json:"seat"`
	Amt     float64 `json:"amt"`
	SideAmt float64 `json:"sideAmt"`
}

// NewHid returns a new hand identity for the seat with the given main
// and side wagers
func NewHid(seat Seat, amt, sideAmt float64) *Hid {
	return &Hid{
		Key:     uuid.New().String(),
		Seat:    seat,
		Amt:     amt,
		SideAmt: sideAmt,
	}
}

// MultiplyAmt scales the wager, e.g. for a double-down or a premium payout
func (h *Hid) MultiplyAmt(factor float64) {
	h.Amt *= factor
}

func (h *Hid) String() string {
	return fmt.Sprintf("%s:%s", h.Seat, h.Key)
}
