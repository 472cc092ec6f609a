package table

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"blackjack-server/internal/util"
)

func TestCreatePlayer(t *testing.T) {
	email := util.RandomEmail()
	player, err := CreatePlayer(cbg, email, "test-player", "password", "127.0.0.1")
	assert.NoError(t, err)
	assert.NotNil(t, player)
	assert.Greater(t, player.ID, int64(0))

	player2, err := CreatePlayer(cbg, email, "test-player", "password", "127.0.0.1")
	assert.Equal(t, ErrDuplicateKey, err)
	assert.Nil(t, player2)

	// case-insensitive uniqueness
	player2, err = CreatePlayer(cbg, strings.ToUpper(email), "test-player", "password", "127.0.0.1")
	assert.Equal(t, ErrDuplicateKey, err)
	assert.Nil(t, player2)
}

func TestGetPlayerByEmailAndPassword(t *testing.T) {
	email := util.RandomEmail()
	p, err := CreatePlayer(cbg, email, "test-player", "password", "127.0.0.1")
	assert.NoError(t, err)

	p2, err := GetPlayerByEmailAndPassword(cbg, email, "password")
	assert.Equal(t, ErrAccountNotVerified, err)
	assert.Nil(t, p2)

	p.Verified = true
	assert.NoError(t, p.Save(cbg))

	p2, err = GetPlayerByEmailAndPassword(cbg, email, "password")
	assert.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)

	// case-insensitive email
	p2, err = GetPlayerByEmailAndPassword(cbg, strings.ToUpper(email), "password")
	assert.NoError(t, err)
	assert.NotNil(t, p2)

	p2, err = GetPlayerByEmailAndPassword(cbg, email, "bad-password")
	assert.Equal(t, ErrInvalidEmailOrPassword, err)
	assert.Nil(t, p2)

	p2, err = GetPlayerByEmailAndPassword(cbg, email+"-not-found", "password")
	assert.Equal(t, ErrInvalidEmailOrPassword, err)
	assert.Nil(t, p2)
}

func TestGetPlayerByID(t *testing.T) {
	p := player()
	found, err := GetPlayerByID(cbg, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	found, err = GetPlayerByID(cbg, 0)
	assert.Equal(t, sql.ErrNoRows, err)
	assert.Nil(t, found)
}

func TestPlayer_Save(t *testing.T) {
	newEmail := util.RandomEmail()

	p := player()
	p.Email = newEmail
	p.DisplayName = "New Display Name"

	assert.NoError(t, p.Save(cbg))

	p1, _ := GetPlayerByID(cbg, p.ID)
	assert.Equal(t, newEmail, p1.Email)
	assert.Equal(t, "New Display Name", p1.DisplayName)
	assert.True(t, p1.Updated.After(p1.Created))
}

func TestPlayer_Join(t *testing.T) {
	_, tbl := playerAndTable()
	p := player()

	pt, err := p.Join(cbg, tbl)
	assert.NoError(t, err)
	assert.Equal(t, p.ID, pt.PlayerID)
	assert.Equal(t, 0, pt.Balance)

	pt2, err := p.Join(cbg, tbl)
	assert.Equal(t, ErrDuplicateKey, err)
	assert.Nil(t, pt2)
}

func TestPlayer_GetTables(t *testing.T) {
	p, tbl := playerAndTable()

	tables, err := p.GetTables(cbg, 0, 99)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(tables))
	assert.Equal(t, tbl.UUID, tables[0].UUID)
	assert.Equal(t, 0, tables[0].Balance)
}

func TestPlayer_ResetPassword(t *testing.T) {
	p := player()
	p.Verified = true
	assert.NoError(t, p.Save(cbg))

	resetToken, err := p.CreatePasswordResetRequest(cbg)
	assert.NoError(t, err)
	assert.NotEmpty(t, resetToken)

	assert.NoError(t, IsPasswordResetTokenValid(cbg, resetToken))
	assert.Equal(t, ErrTokenExpired, IsPasswordResetTokenValid(cbg, "bogus-token"))

	assert.NoError(t, p.ResetPassword(cbg, "new-password", resetToken))

	p2, err := GetPlayerByEmailAndPassword(cbg, p.Email, "new-password")
	assert.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)

	// a token is single-use
	assert.Error(t, p.ResetPassword(cbg, "another-password", resetToken))
}
