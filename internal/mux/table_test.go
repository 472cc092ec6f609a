package mux

import (
	"fmt"
	"testing"

	"net/http/httptest"

	"github.com/stretchr/testify/assert"

	"blackjack-server/pkg/table"
)

func Test_postTable(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	p, token := player()

	// table creation requires site-admin access
	var errObj errorResponse
	assertPost(t, ts, "/table", table.Config{Name: "my table"}, &errObj, 403, token)

	assert.NoError(t, p.SetIsSiteAdmin(cbg, true))

	errObj = errorResponse{}
	assertPost(t, ts, "/table", table.Config{Name: "my table", Shoe: "triple-deck"}, &errObj, 400, token)
	assert.Equal(t, "no shoe with name: triple-deck", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/table", table.Config{Name: "my table", BotRight: "c3po"}, &errObj, 400, token)
	assert.Equal(t, "no bot with name: c3po", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/table", table.Config{Name: "my table", SideBet: "lucky13"}, &errObj, 400, token)
	assert.Equal(t, "no side-bet rule with name: lucky13", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, "/table", table.Config{Name: "x"}, &errObj, 400, token)
	assert.Equal(t, "name must be 3-40 characters", errObj.Message)

	var tbl table.Table
	assertPost(t, ts, "/table", table.Config{
		Name:     "my table",
		Shoe:     "double-deck",
		BotRight: "b9",
		BotLeft:  "n6",
		SideBet:  "super7",
	}, &tbl, 201, token)
	assert.NotEqual(t, "", tbl.UUID)
	assert.Equal(t, "double-deck", tbl.Shoe)
	assert.Equal(t, "b9", tbl.BotRight)
	assert.Equal(t, "n6", tbl.BotLeft)
	assert.Equal(t, "super7", tbl.SideBet)
}

func Test_tableFlow(t *testing.T) {
	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	admin, adminToken := player()
	assert.NoError(t, admin.SetIsSiteAdmin(cbg, true))

	var tbl table.Table
	assertPost(t, ts, "/table", table.Config{Name: "flow table"}, &tbl, 201, adminToken)

	_, token := player()

	var resp getTableUUIDResponse
	assertGet(t, ts, fmt.Sprintf("/table/%s", tbl.UUID), &resp, 200, token)
	assert.Equal(t, tbl.UUID, resp.UUID)
	assert.Equal(t, 1, len(resp.Players))

	var pt table.PlayerTable
	assertPost(t, ts, fmt.Sprintf("/table/%s/seat", tbl.UUID), nil, &pt, 201, token)
	assert.Equal(t, tbl.UUID, pt.TableUUID)

	var errObj errorResponse
	assertPost(t, ts, fmt.Sprintf("/table/%s/seat", tbl.UUID), nil, &errObj, 400, token)
	assert.Equal(t, "player is already at the table", errObj.Message)

	resp = getTableUUIDResponse{}
	assertGet(t, ts, fmt.Sprintf("/table/%s", tbl.UUID), &resp, 200, token)
	assert.Equal(t, 2, len(resp.Players))

	// the player can now see the table in their list
	var tables []*table.WithBalance
	assertGet(t, ts, "/table", &tables, 200, token)
	assert.Equal(t, 1, len(tables))
	assert.Equal(t, tbl.UUID, tables[0].UUID)

	// an unknown table is a 404
	assertGet(t, ts, "/table/00000000-0000-4000-8000-000000000000", &errObj, 404, token)
}
