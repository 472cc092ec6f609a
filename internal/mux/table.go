package mux

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"blackjack-server/pkg/blackjack/bot"
	"blackjack-server/pkg/blackjack/sidebet"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/table"
)

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		tables, err := player.GetTables(r.Context(), offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, tables)
	}
}

var wordChar = regexp.MustCompile(`\w`)

// validateTableConfig ensures every named shoe, bot, and side-bet rule
// actually exists before a table row is written
func validateTableConfig(config table.Config) error {
	if _, err := deck.ShoeByName(config.Shoe); err != nil {
		return err
	}

	for _, name := range []string{config.BotRight, config.BotLeft} {
		if name == "" {
			continue
		}

		if _, err := bot.Get(name, logrus.StandardLogger()); err != nil {
			return err
		}
	}

	if _, err := sidebet.Get(config.SideBet); err != nil {
		return err
	}

	return nil
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var config table.Config
		if !decodeRequest(w, r, &config) {
			return
		}

		if !wordChar.MatchString(config.Name) || len(config.Name) < 3 || len(config.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		if err := validateTableConfig(config); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		tbl, err := player.CreateTable(r.Context(), config)
		if err != nil {
			var ue table.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, tbl)
	}
}

type getTableUUIDResponse struct {
	*table.Table
	Players []*table.PlayerTable `json:"players"`
	Rounds  int64                `json:"rounds"`
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)
		players, err := tbl.GetPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		rounds, err := tbl.GetRoundsCount(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, getTableUUIDResponse{
			Table:   tbl,
			Players: players,
			Rounds:  rounds,
		})
	})
}

func (m *Mux) postTableUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		playerTable, err := player.Join(r.Context(), tbl)
		if err != nil {
			if err == table.ErrDuplicateKey {
				writeJSONError(w, http.StatusBadRequest, errors.New("player is already at the table"))
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		writeJSON(w, http.StatusCreated, playerTable)
	})
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := mux.Vars(r)["uuid"]
		tbl, err := table.GetTableByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, tbl)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
