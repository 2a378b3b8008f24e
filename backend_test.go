package centime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/centime-app/centime/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Checking","kind":"cash","balance":"1000.50","currency":"EUR"}]`))
	})
	mux.HandleFunc("GET /transactions", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":10,"account_id":1,"date":"2024-06-01","payee":"Shop","category":"Groceries","amount":-20.5},
			{"id":11,"account_id":1,"date":"2024-06-02","payee":"Broker","amount":null,
			 "ticker":"ACME","shares":"2","price_per_share":100,"fee":1,"currency":"USD"}
		]`))
	})
	mux.HandleFunc("GET /prices/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-06-30", r.URL.Query().Get("to"))
		w.Write([]byte(`[{"date":"2024-06-03","price":101.5}]`))
	})
	mux.HandleFunc("GET /summary/current", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":"12345.67"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPBackend(t *testing.T) {
	server := testServer(t)
	backend := NewHTTPBackend(server.URL, server.Client(), zerolog.Nop())
	ctx := context.Background()

	accounts, err := backend.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, Ident("1"), accounts[0].ID)
	assert.Equal(t, Numeric(1000.50), accounts[0].Balance)

	txs, err := backend.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, Ident("1"), txs[0].AccountID)
	assert.Equal(t, Numeric(-20.5), txs[0].Amount)
	assert.Equal(t, "ACME", txs[1].Ticker)
	assert.Equal(t, Numeric(2), txs[1].Shares)

	rng := date.Between(date.MustParse("2024-06-01"), date.MustParse("2024-06-30"))
	points, err := backend.DailyPrices(ctx, "ACME", rng)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "ACME", points[0].Symbol, "symbol is filled in when the payload omits it")
	assert.Equal(t, 101.5, points[0].Price)

	total, err := backend.CurrentTotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12345.67, total)
}

func TestHTTPBackendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	backend := NewHTTPBackend(server.URL, server.Client(), zerolog.Nop())
	_, err := backend.Accounts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
