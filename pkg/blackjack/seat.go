package blackjack

// Seat is a position at the table
type Seat string

// seat constants
const (
	SeatDealer Seat = "dealer"
	SeatRight  Seat = "right"
	SeatLeft   Seat = "left"
	SeatYou    Seat = "you"
)

// BotSeat returns true if the seat may be filled by a bot
func (s Seat) BotSeat() bool {
	return s == SeatRight || s == SeatLeft
}
