package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/settings"
	"github.com/wonny/fiidash/pkg/logger"
	"github.com/wonny/fiidash/pkg/metrics"
)

// Processor turns a raw document into the ranked dashboard document
// ⭐ SSOT: 지표 계산 + 랭킹은 여기서만
type Processor struct {
	settings *settings.Settings
	logger   *logger.Logger
}

// NewProcessor creates a processor
func NewProcessor(s *settings.Settings, log *logger.Logger) *Processor {
	return &Processor{
		settings: s,
		logger:   log.WithField("module", "processor"),
	}
}

// Process scores and ranks every record of raw. raw is left untouched.
func (p *Processor) Process(ctx context.Context, raw *dataset.Document, now time.Time) (doc *dataset.Document, err error) {
	defer func() { metrics.ObserveStage("process", err) }()

	if raw == nil {
		return nil, dataset.ErrMissingFunds
	}

	hash, err := settings.Hash(p.settings)
	if err != nil {
		return nil, fmt.Errorf("hash settings: %w", err)
	}

	runID := uuid.NewString()
	log := p.logger.WithField("run_id", runID)

	if incomplete := CountIncomplete(raw.Funds); len(incomplete) > 0 {
		fields := make(map[string]interface{}, len(incomplete))
		for reason, n := range incomplete {
			fields["missing_"+reason] = n
		}
		log.WithFields(fields).Warn("Scoring incomplete funds with zero defaults")
	}

	scored := make([]*contracts.FundRecord, 0, len(raw.Funds))
	for _, f := range raw.Funds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		scored = append(scored, ComputeMetrics(f, p.settings.Scoring))
	}

	ranked := Rank(scored, p.settings.Ranking.Limit)

	doc = dataset.NewDocument(ranked, now)
	doc.SettingsHash = hash
	doc.RunID = runID

	fields := map[string]interface{}{
		"input":  len(raw.Funds),
		"scored": len(scored),
		"output": len(ranked),
	}
	if len(ranked) > 0 {
		fields["top_symbol"] = ranked[0].Symbol
		fields["top_score"] = ranked[0].ScoreValue()
	}
	log.WithFields(fields).Info("Processing completed")

	return doc, nil
}
