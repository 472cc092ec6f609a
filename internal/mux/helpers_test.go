package mux

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	appconfig "blackjack-server/internal/config"
	"blackjack-server/internal/jwt"
	"blackjack-server/internal/util"
	"blackjack-server/pkg/db"
	"blackjack-server/pkg/table"
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
		fmt.Println("skipping mux tests, postgres is not available:", err)
		os.Exit(0)
	}

	_ = conn.Close()

	if os.Getenv("MIGRATIONS_PATH") == "" {
		os.Setenv("MIGRATIONS_PATH", "../../sql")
	}

	db.Migrate()
	setupJWT()
	os.Exit(m.Run())
}

func setupJWT() {
	os.Setenv("BJ_JWT_PUBLIC_KEY", "testdata/public.pem")
	os.Setenv("BJ_JWT_PRIVATE_KEY", "testdata/private.key")
	if err := appconfig.Load(); err != nil {
		panic(err)
	}

	jwt.LoadKeys()
}

// player creates a verified player and returns it along with a signed JWT
func player() (*table.Player, string) {
	p, err := table.CreatePlayer(cbg, util.RandomEmail(), "Player", "password", "")
	if err != nil {
		panic(err)
	}

	p.Verified = true
	if err := p.Save(cbg); err != nil {
		panic(err)
	}

	j, err := jwt.Sign(p.ID)
	if err != nil {
		panic(err)
	}

	return p, j
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := ioutil.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}
