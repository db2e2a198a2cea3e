package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/settings"
	"github.com/wonny/fiidash/pkg/logger"
	"github.com/wonny/fiidash/pkg/metrics"
)

// QuoteSource lists fund tickers and quotes them (brapi)
type QuoteSource interface {
	ListFunds(ctx context.Context) ([]string, error)
	QuoteBatch(ctx context.Context, tickers []string) ([]*contracts.FundRecord, error)
}

// SectorEnricher fills in missing sectors (fundamentus)
type SectorEnricher interface {
	Enrich(ctx context.Context, funds []*contracts.FundRecord) int
}

// Collector fetches the raw fund list
// ⭐ SSOT: 원천 데이터 수집은 여기서만
type Collector struct {
	quotes   QuoteSource
	sectors  SectorEnricher
	settings settings.Collect
	logger   *logger.Logger
}

// NewCollector creates a collector. sectors may be nil.
func NewCollector(quotes QuoteSource, sectors SectorEnricher, s *settings.Settings, log *logger.Logger) *Collector {
	return &Collector{
		quotes:   quotes,
		sectors:  sectors,
		settings: s.Collect,
		logger:   log.WithField("module", "collector"),
	}
}

// Collect fetches every fund, fills sectors and keeps those priced below
// the ceiling. A missing price counts as 0.
func (c *Collector) Collect(ctx context.Context, now time.Time) (doc *dataset.Document, err error) {
	defer func() { metrics.ObserveStage("collect", err) }()

	tickers := c.settings.Tickers
	if len(tickers) == 0 {
		tickers, err = c.quotes.ListFunds(ctx)
		if err != nil {
			return nil, fmt.Errorf("list funds: %w", err)
		}
	}

	c.logger.WithField("tickers", len(tickers)).Info("Collecting quotes")

	quoted := make([]*contracts.FundRecord, 0, len(tickers))
	batches := Batches(tickers, c.settings.BatchSize)
	for i, batch := range batches {
		funds, err := c.quotes.QuoteBatch(ctx, batch)
		quoted = append(quoted, funds...)
		if err != nil {
			return nil, fmt.Errorf("quote batch %d/%d: %w", i+1, len(batches), err)
		}
	}

	kept := BelowCeiling(quoted, c.settings.PriceCeiling)

	if c.sectors != nil {
		resolved := c.sectors.Enrich(ctx, kept)
		c.logger.WithField("resolved", resolved).Debug("Sectors enriched")
	}

	c.logger.WithFields(map[string]interface{}{
		"quoted": len(quoted),
		"kept":   len(kept),
	}).Info("Collection completed")

	return dataset.NewDocument(kept, now), nil
}

// Batches splits tickers into chunks of at most size
func Batches(tickers []string, size int) [][]string {
	if size <= 0 {
		size = len(tickers)
	}
	var batches [][]string
	for start := 0; start < len(tickers); start += size {
		end := start + size
		if end > len(tickers) {
			end = len(tickers)
		}
		batches = append(batches, tickers[start:end])
	}
	return batches
}

// BelowCeiling keeps funds whose price is strictly below ceiling
func BelowCeiling(funds []*contracts.FundRecord, ceiling float64) []*contracts.FundRecord {
	kept := make([]*contracts.FundRecord, 0, len(funds))
	for _, f := range funds {
		if f != nil && f.Price() < ceiling {
			kept = append(kept, f)
		}
	}
	return kept
}
