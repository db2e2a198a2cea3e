package brapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/pkg/httputil"
	"github.com/wonny/fiidash/pkg/logger"
)

// ErrNotFound is returned when brapi has no quote for a ticker
var ErrNotFound = errors.New("brapi: quote not found")

// Client handles communication with the brapi.dev quote API
// ⭐ SSOT: brapi 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	token      string
}

// NewClient creates a new brapi client
func NewClient(httpClient *httputil.Client, baseURL, token string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "brapi"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

type listResponse struct {
	Stocks []struct {
		Stock  string `json:"stock"`
		Name   string `json:"name"`
		Sector string `json:"sector"`
	} `json:"stocks"`
}

type quoteResponse struct {
	Results []*contracts.FundRecord `json:"results"`
}

// ListFunds returns every fund ticker brapi knows about
func (c *Client) ListFunds(ctx context.Context) ([]string, error) {
	params := url.Values{}
	params.Set("type", "fund")

	var resp listResponse
	if err := c.httpClient.GetJSON(ctx, c.url("/api/quote/list", params), &resp); err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}

	tickers := make([]string, 0, len(resp.Stocks))
	for _, s := range resp.Stocks {
		if s.Stock != "" {
			tickers = append(tickers, s.Stock)
		}
	}

	c.logger.WithField("count", len(tickers)).Debug("Fetched fund list")
	return tickers, nil
}

// Quote returns the fundamentals of one ticker
func (c *Client) Quote(ctx context.Context, ticker string) (*contracts.FundRecord, error) {
	params := url.Values{}
	params.Set("fundamental", "true")

	var resp quoteResponse
	err := c.httpClient.GetJSON(ctx, c.url("/api/quote/"+url.PathEscape(ticker), params), &resp)
	if err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ticker, ErrNotFound)
		}
		return nil, fmt.Errorf("quote %s: %w", ticker, err)
	}

	if len(resp.Results) == 0 || resp.Results[0] == nil {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNotFound)
	}

	fund := resp.Results[0]
	if fund.Symbol == "" {
		fund.Symbol = ticker
	}
	return fund, nil
}

// QuoteBatch quotes tickers in order. A failing ticker is logged and
// skipped; only context cancellation aborts the batch.
func (c *Client) QuoteBatch(ctx context.Context, tickers []string) ([]*contracts.FundRecord, error) {
	funds := make([]*contracts.FundRecord, 0, len(tickers))
	failed := 0

	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return funds, err
		}

		fund, err := c.Quote(ctx, ticker)
		if err != nil {
			if ctx.Err() != nil {
				return funds, ctx.Err()
			}
			failed++
			c.logger.WithField("ticker", ticker).WithError(err).Warn("Skipping ticker")
			continue
		}
		funds = append(funds, fund)
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": len(tickers),
		"fetched":   len(funds),
		"failed":    failed,
	}).Debug("Quote batch completed")

	return funds, nil
}

func (c *Client) url(path string, params url.Values) string {
	if c.token != "" {
		params.Set("token", c.token)
	}
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
}
