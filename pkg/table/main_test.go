package table

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"blackjack-server/internal/util"
	"blackjack-server/pkg/db"
)

var cbg = context.Background()

// the tests in this package run against a real postgres instance; when
// none is reachable they are skipped wholesale
func TestMain(m *testing.M) {
	dsn := util.Getenv("PG_DSN", "postgres://postgres@localhost:5432/postgres?sslmode=disable")
	conn, err := sql.Open("postgres", dsn)
	if err == nil {
		err = conn.Ping()
	}

	if err != nil {
		fmt.Println("skipping table tests, postgres is not available:", err)
		os.Exit(0)
	}

	_ = conn.Close()

	if os.Getenv("MIGRATIONS_PATH") == "" {
		os.Setenv("MIGRATIONS_PATH", "../../sql")
	}

	db.Migrate()
	os.Exit(m.Run())
}

func player() *Player {
	player, err := CreatePlayer(cbg, util.RandomEmail(), "test-player", "password", "127.0.0.1")
	if err != nil {
		panic(err)
	}

	return player
}

func playerAndTable() (*Player, *Table) {
	p := player()
	if err := p.SetIsSiteAdmin(cbg, true); err != nil {
		panic(err)
	}

	tbl, err := p.CreateTable(cbg, Config{
		Name:     "test-table",
		Shoe:     "standard",
		BotRight: "b9",
		BotLeft:  "n6",
		SideBet:  "super7",
	})
	if err != nil {
		panic(err)
	}

	return p, tbl
}
