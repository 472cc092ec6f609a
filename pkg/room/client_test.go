package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/table"
)

func testClient() *Client {
	return NewClient(nil, &table.Player{ID: 1, Email: "test@example.com"}, &table.Table{UUID: "uuid"})
}

func nextResponse(t *testing.T, c *Client) *Response {
	t.Helper()

	select {
	case msg := <-c.Send:
		res, ok := msg.(*Response)
		if !ok {
			t.Fatalf("unexpected message type: %T", msg)
		}
		return res
	default:
		t.Fatal("no message queued")
		return nil
	}
}

func TestClient_String(t *testing.T) {
	assert.Equal(t, "test@example.com:uuid", testClient().String())
}

func TestClient_notifications(t *testing.T) {
	c := testClient()
	hid := *blackjack.NewHid(blackjack.SeatYou, 25, 5)

	c.StartGame([]blackjack.Hid{hid}, 312)
	res := nextResponse(t, c)
	assert.Equal(t, "startGame", res.Key)
	assert.Equal(t, startGameEvent{Hids: []blackjack.Hid{hid}, ShoeSize: 312}, res.Data)

	card := deck.CardFromString("14s")
	c.Deal(hid, card, 11)
	res = nextResponse(t, c)
	assert.Equal(t, "deal", res.Key)
	assert.Equal(t, dealEvent{Hid: hid, Card: card, Value: 11}, res.Data)

	c.Play(hid)
	assert.Equal(t, "play", nextResponse(t, c).Key)

	c.Blackjack(hid)
	assert.Equal(t, "blackjack", nextResponse(t, c).Key)

	c.Bust(hid)
	assert.Equal(t, "bust", nextResponse(t, c).Key)

	c.Charlie(hid)
	assert.Equal(t, "charlie", nextResponse(t, c).Key)

	c.Win(hid)
	assert.Equal(t, "win", nextResponse(t, c).Key)

	c.Lose(hid)
	assert.Equal(t, "lose", nextResponse(t, c).Key)

	c.Push(hid)
	assert.Equal(t, "push", nextResponse(t, c).Key)

	c.Shuffling()
	assert.Equal(t, "shuffling", nextResponse(t, c).Key)

	c.EndGame(208)
	res = nextResponse(t, c)
	assert.Equal(t, "endGame", res.Key)
	assert.Equal(t, endGameEvent{ShoeSize: 208}, res.Data)
}

func TestClient_sendDoesNotBlock(t *testing.T) {
	c := testClient()

	for i := 0; i < cap(c.Send)+10; i++ {
		c.send(OK())
	}

	assert.Equal(t, cap(c.Send), len(c.Send))
}

func TestOK(t *testing.T) {
	res := OK()
	assert.Equal(t, "status", res.Key)
	assert.Equal(t, "OK", res.Value)
	assert.Equal(t, "", res.Context)

	res = OK("ctx")
	assert.Equal(t, "ctx", res.Context)
}
