package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/db"
)

// tableCreationCoolDown is how long non-admins must wait before creating another table
const tableCreationCoolDown = time.Minute

const tableColumns = `
tables.uuid,
tables.name,
tables.player_id,
tables.shoe,
tables.bot_right,
tables.bot_left,
tables.side_bet,
tables.created`

// Table is a blackjack table. A table has many players and plays many
// rounds out of its configured shoe.
type Table struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// PlayerID is who created the table
	PlayerID int64 `json:"playerId"`
	// Shoe names the shoe the table plays out of ("standard",
	// "double-deck", "single-deck")
	Shoe string `json:"shoe"`
	// BotRight and BotLeft name the bots filling the side seats. An
	// empty name leaves the seat open.
	BotRight string `json:"botRight"`
	BotLeft  string `json:"botLeft"`
	// SideBet names the table's side-bet rule, if any
	SideBet string    `json:"sideBet"`
	Created time.Time `json:"created"`
}

// ErrPlayerNotAtTable happens when user is not a member of the table
var ErrPlayerNotAtTable = errors.New("player is not a member of the table")

// Config is the caller-supplied portion of a new table
type Config struct {
	Name     string `json:"name"`
	Shoe     string `json:"shoe"`
	BotRight string `json:"botRight"`
	BotLeft  string `json:"botLeft"`
	SideBet  string `json:"sideBet"`
}

// CreateTable creates a new table and seats its creator
func (p *Player) CreateTable(ctx context.Context, config Config) (*Table, error) {
	if err := p.canCreateTable(ctx); err != nil {
		return nil, err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO tables (uuid, name, player_id, shoe, bot_right, bot_left, side_bet)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created
`
	var created time.Time
	row := tx.QueryRowContext(ctx, query, u, config.Name, p.ID, config.Shoe, config.BotRight, config.BotLeft, config.SideBet)
	if err := row.Scan(&created); err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
INSERT INTO players_tables (player_id, table_uuid, is_table_admin)
VALUES ($1, $2, true)`
	if _, err = tx.ExecContext(ctx, query2, p.ID, u); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Table{
		UUID:     u,
		Name:     config.Name,
		PlayerID: p.ID,
		Shoe:     config.Shoe,
		BotRight: config.BotRight,
		BotLeft:  config.BotLeft,
		SideBet:  config.SideBet,
		Created:  created,
	}, nil
}

// canCreateTable will see if the user is allowed to create a table
// returns nil if the user can create a table
func (p *Player) canCreateTable(ctx context.Context) error {
	// site admins can always create a table
	if p.IsSiteAdmin {
		return nil
	}

	const query = `
SELECT COUNT(*)
FROM tables
WHERE player_id = $1
  AND created >= $2 AT TIME ZONE 'UTC'`

	row := db.Instance().QueryRowContext(ctx, query, p.ID, time.Now().In(time.UTC).Add(tableCreationCoolDown*-1))
	var count int
	if err := row.Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		return UserError("you must wait before you create another table")
	}

	return nil
}

func getTableByRow(row db.Scanner, additionalColumns ...interface{}) (*Table, error) {
	var t Table
	columns := []interface{}{
		&t.UUID,
		&t.Name,
		&t.PlayerID,
		&t.Shoe,
		&t.BotRight,
		&t.BotLeft,
		&t.SideBet,
		&t.Created,
	}

	if len(additionalColumns) > 0 {
		columns = append(columns, additionalColumns...)
	}

	if err := row.Scan(columns...); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, uuid string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getTableByRow(row)
}

// Reload will refresh the data from the database
func (t *Table) Reload(ctx context.Context) error {
	tbl, err := GetTableByUUID(ctx, t.UUID)
	if err != nil {
		return err
	}

	*t = *tbl
	return nil
}

// GetPlayers returns all players at the table
func (t *Table) GetPlayers(ctx context.Context) ([]*PlayerTable, error) {
	const query = `
SELECT ` + playerColumns + `, ` + playerTableColumns + `
FROM players_tables
INNER JOIN players ON players_tables.player_id = players.id
WHERE players_tables.table_uuid = $1
ORDER BY players_tables.id`

	rows, err := db.Instance().QueryContext(ctx, query, t.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*PlayerTable, 0)
	for rows.Next() {
		p, err := getPlayerTableByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, p)
	}

	return records, nil
}

// CreateRound records the start of a new round at the table
func (t *Table) CreateRound(ctx context.Context) (*Round, error) {
	const query = `
INSERT INTO rounds (table_uuid)
VALUES ($1)
RETURNING ` + roundColumns

	row := db.Instance().QueryRowContext(ctx, query, t.UUID)
	return roundByRow(row)
}

// GetRoundsCount returns the number of rounds played at the table
func (t *Table) GetRoundsCount(ctx context.Context) (int64, error) {
	const query = `
SELECT COUNT(id)
FROM rounds
WHERE table_uuid = $1`

	var count int64
	if err := db.Instance().QueryRowContext(ctx, query, t.UUID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
