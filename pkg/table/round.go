package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/db"
)

// Round is a record in the `rounds` table: one played round of
// blackjack at a table, with the settlement summary stored as JSON once
// the round ends
type Round struct {
	ID        int64
	TableUUID string
	data      interface{}
	Created   time.Time
	Ended     time.Time
}

const roundColumns = `id, table_uuid, data, created, ended`

// RoundByID returns a round by its ID
func RoundByID(ctx context.Context, id int64) (*Round, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
WHERE id = $1`
	row := db.Instance().QueryRowContext(ctx, query, id)
	return roundByRow(row)
}

func roundByRow(row *sql.Row) (*Round, error) {
	var r Round
	var data []byte
	var ended sql.NullTime

	if err := row.Scan(&r.ID, &r.TableUUID, &data, &r.Created, &ended); err != nil {
		return nil, err
	}

	if data != nil {
		if err := json.Unmarshal(data, &r.data); err != nil {
			return nil, err
		}
	}

	r.Ended = ended.Time

	return &r, nil
}

// End closes out the round: it stores the settlement summary and
// applies every player's balance adjustment in a single transaction
func (r *Round) End(ctx context.Context, data interface{}, balanceAdjustments map[int64]int) error {
	tbl, err := GetTableByUUID(ctx, r.TableUUID)
	if err != nil {
		return err
	}

	players, err := tbl.GetPlayers(ctx)
	if err != nil {
		return err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			if err := tx.Rollback(); err != nil {
				logrus.WithError(err).Error("could not rollback transaction")
			}

			return
		}

		if err := tx.Commit(); err != nil {
			logrus.WithError(err).Error("could not commit transaction")
		}
	}()

	r.data = data
	const query = `
UPDATE rounds
SET data = $1, ended = NOW() AT TIME ZONE 'UTC'
WHERE id = $2
RETURNING ended`

	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	row := tx.QueryRowContext(ctx, query, b, r.ID)
	var ended time.Time
	if err := row.Scan(&ended); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "SELECT adjust_balance($1, $2, $3, $4, $5)")
	if err != nil {
		return err
	}

	for _, player := range players {
		change, found := balanceAdjustments[player.PlayerID]
		if !found {
			continue
		}

		_, err := stmt.ExecContext(ctx, player.ID, player.Balance, change, r.ID, "round ended")
		if err != nil {
			return err
		}
	}

	commit = true
	r.Ended = ended
	return nil
}
