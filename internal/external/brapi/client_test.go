package brapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/pkg/httputil"
	"github.com/wonny/fiidash/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/quote/list", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fund", r.URL.Query().Get("type"))
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		w.Write([]byte(`{"stocks":[{"stock":"MXRF11"},{"stock":""},{"stock":"HGLG11"}]}`))
	})
	mux.HandleFunc("/api/quote/MXRF11", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("fundamental"))
		w.Write([]byte(`{"results":[{"symbol":"MXRF11","longName":"Maxi Renda","regularMarketPrice":10.12,"dividendYield":0.125,"priceToBook":1.01,"bookValue":10.02,"lastDividend":{"value":0.1}}]}`))
	})
	mux.HandleFunc("/api/quote/HGLG11", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":true,"message":"Não encontramos a ação HGLG11"}`))
	})
	mux.HandleFunc("/api/quote/EMPTY11", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newClient(baseURL string) *Client {
	httpClient := httputil.New("brapi", time.Second, logger.Nop()).DisableRetry()
	return NewClient(httpClient, baseURL+"/", "secret", logger.Nop())
}

func TestListFunds(t *testing.T) {
	server := newTestServer(t)

	tickers, err := newClient(server.URL).ListFunds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MXRF11", "HGLG11"}, tickers)
}

func TestQuote(t *testing.T) {
	server := newTestServer(t)

	fund, err := newClient(server.URL).Quote(context.Background(), "MXRF11")
	require.NoError(t, err)

	assert.Equal(t, "MXRF11", fund.Symbol)
	assert.Equal(t, "Maxi Renda", fund.LongName)
	assert.Equal(t, 10.12, fund.Price())
	assert.Equal(t, 0.125, fund.DY())
	assert.Equal(t, 0.1, fund.Dividend())
	assert.True(t, fund.Sector.IsEmpty())
}

func TestQuoteNotFound(t *testing.T) {
	server := newTestServer(t)
	client := newClient(server.URL)

	for _, ticker := range []string{"HGLG11", "EMPTY11"} {
		_, err := client.Quote(context.Background(), ticker)
		assert.True(t, errors.Is(err, ErrNotFound), "%s: %v", ticker, err)
	}
}

func TestQuoteBatchSkipsFailures(t *testing.T) {
	server := newTestServer(t)

	funds, err := newClient(server.URL).QuoteBatch(context.Background(), []string{"HGLG11", "MXRF11", "EMPTY11"})
	require.NoError(t, err)

	require.Len(t, funds, 1)
	assert.Equal(t, "MXRF11", funds[0].Symbol)
}

func TestQuoteBatchCancelled(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	funds, err := newClient(server.URL).QuoteBatch(ctx, []string{"MXRF11"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, funds)
}

func TestQuoteFallsBackToTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"sector":"Shopping"}]}`))
	}))
	defer server.Close()

	fund, err := newClient(server.URL).Quote(context.Background(), "XPML11")
	require.NoError(t, err)
	assert.Equal(t, "XPML11", fund.Symbol)
	assert.Equal(t, contracts.SectorMalls, fund.Sector)
}
