package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/table"
)

// Client is a player connected to the server via websockets. A client
// that placed the current bet is also the round's human participant;
// every table notification becomes a JSON message on the socket.
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// Send is a buffered channel of outgoing messages
	Send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	host *Host

	player *table.Player
	table  *table.Table
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, player *table.Player, table *table.Table) *Client {
	return &Client{
		Send:   make(chan interface{}, 256),
		Close:  make(chan string),
		Conn:   conn,
		player: player,
		table:  table,
	}
}

// String returns a traceable identifier for the player and table
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.player.Email, c.table.UUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.host == nil {
		logrus.WithField("msg", msg).Warn("received message, but host not found")
		return
	}

	c.host.ReceivedMessage(c, msg)
}

// send queues a message without blocking the table. A slow consumer
// loses messages rather than stalling the round.
func (c *Client) send(msg interface{}) {
	select {
	case c.Send <- msg:
	default:
		logrus.WithField("client", c.String()).Warn("send buffer full, dropping message")
	}
}

// StartGame tells the client a new round began
func (c *Client) StartGame(hids []blackjack.Hid, shoeSize int) {
	c.send(&Response{Key: "startGame", Data: startGameEvent{Hids: hids, ShoeSize: shoeSize}})
}

// Deal tells the client a card was dealt
func (c *Client) Deal(hid blackjack.Hid, card *deck.Card, value int) {
	c.send(&Response{Key: "deal", Data: dealEvent{Hid: hid, Card: card, Value: value}})
}

// Play tells the client whose turn it is
func (c *Client) Play(hid blackjack.Hid) {
	c.send(&Response{Key: "play", Data: handEvent{Hid: hid}})
}

// Blackjack tells the client a hand is a natural
func (c *Client) Blackjack(hid blackjack.Hid) {
	c.send(&Response{Key: "blackjack", Data: handEvent{Hid: hid}})
}

// Bust tells the client a hand busted
func (c *Client) Bust(hid blackjack.Hid) {
	c.send(&Response{Key: "bust", Data: handEvent{Hid: hid}})
}

// Charlie tells the client a hand made a five-card Charlie
func (c *Client) Charlie(hid blackjack.Hid) {
	c.send(&Response{Key: "charlie", Data: handEvent{Hid: hid}})
}

// Win tells the client a hand beat the dealer
func (c *Client) Win(hid blackjack.Hid) {
	c.send(&Response{Key: "win", Data: handEvent{Hid: hid}})
}

// Lose tells the client a hand lost to the dealer
func (c *Client) Lose(hid blackjack.Hid) {
	c.send(&Response{Key: "lose", Data: handEvent{Hid: hid}})
}

// Push tells the client a hand pushed against the dealer
func (c *Client) Push(hid blackjack.Hid) {
	c.send(&Response{Key: "push", Data: handEvent{Hid: hid}})
}

// Shuffling tells the client the shoe is being shuffled
func (c *Client) Shuffling() {
	c.send(&Response{Key: "shuffling"})
}

// EndGame tells the client the round is over
func (c *Client) EndGame(shoeSize int) {
	c.send(&Response{Key: "endGame", Data: endGameEvent{ShoeSize: shoeSize}})
}
