package table

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetTableByUUID(t *testing.T) {
	tbl, err := GetTableByUUID(cbg, uuid.New().String())
	assert.Equal(t, sql.ErrNoRows, err)
	assert.Nil(t, tbl)

	_, tbl2 := playerAndTable()
	tbl, err = GetTableByUUID(cbg, strings.ToLower(tbl2.UUID))
	assert.NoError(t, err)
	assert.Equal(t, tbl2.Name, tbl.Name)
	assert.Equal(t, "standard", tbl.Shoe)
	assert.Equal(t, "b9", tbl.BotRight)
	assert.Equal(t, "n6", tbl.BotLeft)
	assert.Equal(t, "super7", tbl.SideBet)
}

func TestCreateTable_coolDown(t *testing.T) {
	p := player()

	tbl, err := p.CreateTable(cbg, Config{Name: "first", Shoe: "standard"})
	assert.NoError(t, err)
	assert.NotNil(t, tbl)

	tbl, err = p.CreateTable(cbg, Config{Name: "second", Shoe: "standard"})
	assert.Equal(t, UserError("you must wait before you create another table"), err)
	assert.Nil(t, tbl)
}

func TestTable_GetPlayers(t *testing.T) {
	p1, tbl := playerAndTable()
	p2 := player()
	p3 := player()

	pt, _ := p2.Join(cbg, tbl)
	assert.NoError(t, pt.AdjustBalance(cbg, 10, "test adjustment", nil))

	_, _ = p3.Join(cbg, tbl)

	players, err := tbl.GetPlayers(cbg)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(players))

	assert.Equal(t, p1.ID, players[0].Player.ID)
	assert.Equal(t, 0, players[0].Balance)

	assert.Equal(t, p2.ID, players[1].Player.ID)
	assert.Equal(t, 10, players[1].Balance)

	assert.Equal(t, p3.ID, players[2].Player.ID)
	assert.Equal(t, 0, players[2].Balance)
}

func TestTable_Rounds(t *testing.T) {
	p, tbl := playerAndTable()

	count, err := tbl.GetRoundsCount(cbg)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	round, err := tbl.CreateRound(cbg)
	assert.NoError(t, err)
	assert.NotNil(t, round)
	assert.Equal(t, tbl.UUID, round.TableUUID)
	assert.True(t, round.Ended.IsZero())

	count, err = tbl.GetRoundsCount(cbg)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = round.End(cbg, map[string]interface{}{"dealer": 19}, map[int64]int{p.ID: -25})
	assert.NoError(t, err)
	assert.False(t, round.Ended.IsZero())

	pt, err := p.GetPlayerTable(cbg, tbl)
	assert.NoError(t, err)
	assert.Equal(t, -25, pt.Balance)

	round2, err := RoundByID(cbg, round.ID)
	assert.NoError(t, err)
	assert.False(t, round2.Ended.IsZero())
}

func TestPlayerTable_SetActive(t *testing.T) {
	p, tbl := playerAndTable()
	pt, err := p.GetPlayerTable(cbg, tbl)
	assert.NoError(t, err)
	assert.True(t, pt.Active)

	assert.NoError(t, pt.SetActive(cbg, false))
	assert.False(t, pt.Active)

	pt, _ = p.GetPlayerTable(cbg, tbl)
	assert.False(t, pt.Active)
	assert.True(t, pt.Updated.After(pt.Created))
}
