package fundamentus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/pkg/httputil"
	"github.com/wonny/fiidash/pkg/logger"
)

// DefaultBaseURL is the public Fundamentus site
const DefaultBaseURL = "https://www.fundamentus.com.br"

// ErrSegmentNotFound is returned when the details page has no "Segmento" cell
var ErrSegmentNotFound = errors.New("fundamentus: segment not found")

// segmentSectors maps Fundamentus segment names onto dashboard sectors
var segmentSectors = map[string]contracts.Sector{
	"Títulos e Val. Mob.": contracts.SectorReceivables,
	"Logística":           contracts.SectorLogistics,
	"Shoppings":           contracts.SectorMalls,
	"Lajes Corporativas":  contracts.SectorOffices,
	"Fundo de Fundos":     contracts.SectorFundsOfFunds,
	"FOF":                 contracts.SectorFundsOfFunds,
}

// Client scrapes fund details pages from Fundamentus
// ⭐ SSOT: Fundamentus 스크래핑은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Fundamentus client
func NewClient(httpClient *httputil.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log.WithField("module", "fundamentus"),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// DetailsURL is the public details page of a ticker
func DetailsURL(baseURL, ticker string) string {
	return fmt.Sprintf("%s/detalhes.php?papel=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(ticker))
}

// Sector looks up the segment of ticker and maps it to a dashboard sector.
// Unmapped segments are returned verbatim.
func (c *Client) Sector(ctx context.Context, ticker string) (contracts.Sector, error) {
	resp, err := c.httpClient.Get(ctx, DetailsURL(c.baseURL, ticker))
	if err != nil {
		return "", fmt.Errorf("fetch details %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch details %s: unexpected status code: %d", ticker, resp.StatusCode)
	}

	// Fundamentus serves ISO-8859-1
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode details %s: %w", ticker, err)
	}

	segment, err := parseSegment(body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ticker, err)
	}

	sector := MapSegment(segment)
	c.logger.WithFields(map[string]interface{}{
		"ticker":  ticker,
		"segment": segment,
		"sector":  sector,
	}).Debug("Resolved sector")

	return sector, nil
}

// Enrich fills in the sector of funds that have none.
// Lookup failures are logged and leave the fund unclassified.
func (c *Client) Enrich(ctx context.Context, funds []*contracts.FundRecord) int {
	resolved := 0
	for _, f := range funds {
		if f == nil || !f.Sector.IsEmpty() {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		sector, err := c.Sector(ctx, f.Symbol)
		if err != nil {
			c.logger.WithField("ticker", f.Symbol).WithError(err).Warn("Sector lookup failed")
			continue
		}
		f.Sector = sector
		resolved++
	}
	return resolved
}

// MapSegment converts a Fundamentus segment name to a Sector
func MapSegment(segment string) contracts.Sector {
	segment = strings.TrimSpace(segment)
	if sector, ok := segmentSectors[segment]; ok {
		return sector
	}
	return contracts.Sector(segment)
}

// parseSegment finds the label cell "Segmento" and returns the next cell's text
func parseSegment(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var segment string
	doc.Find("td.label").EachWithBreak(func(i int, cell *goquery.Selection) bool {
		label := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cell.Text()), "?"))
		if label != "Segmento" {
			return true
		}
		segment = strings.TrimSpace(cell.Next().Text())
		return false
	})

	if segment == "" {
		return "", ErrSegmentNotFound
	}
	return segment, nil
}
