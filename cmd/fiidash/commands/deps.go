package commands

import (
	"fmt"

	"github.com/wonny/fiidash/internal/external/brapi"
	"github.com/wonny/fiidash/internal/external/fundamentus"
	"github.com/wonny/fiidash/internal/pipeline"
	"github.com/wonny/fiidash/internal/settings"
	"github.com/wonny/fiidash/pkg/config"
	"github.com/wonny/fiidash/pkg/httputil"
	"github.com/wonny/fiidash/pkg/logger"
)

// newRunner wires settings, upstream clients and the pipeline stages
func newRunner(cfg *config.Config, log *logger.Logger) (*pipeline.Runner, *settings.Settings, error) {
	s, err := settings.LoadOrDefault(cfg.SettingsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	// 1. brapi (rate limited)
	brapiHTTP := httputil.New("brapi", cfg.Brapi.Timeout, log).
		WithRateLimit(cfg.Brapi.RequestsPerSecond, 1)
	brapiClient := brapi.NewClient(brapiHTTP, cfg.Brapi.BaseURL, cfg.Brapi.Token, log)

	// 2. Fundamentus (optional sector enrichment)
	var enricher pipeline.SectorEnricher
	if cfg.Fundamentus.Enabled {
		fundHTTP := httputil.New("fundamentus", cfg.Brapi.Timeout, log).
			WithRateLimit(cfg.Brapi.RequestsPerSecond, 1)
		enricher = fundamentus.NewClient(fundHTTP, cfg.Fundamentus.BaseURL, log)
	}

	// 3. Pipeline
	collector := pipeline.NewCollector(brapiClient, enricher, s, log)
	processor := pipeline.NewProcessor(s, log)

	return pipeline.NewRunner(collector, processor, pipelinePaths(cfg), log), s, nil
}

func pipelinePaths(cfg *config.Config) pipeline.Paths {
	return pipeline.Paths{
		Raw:       cfg.RawPath(),
		Processed: cfg.ProcessedPath(),
		History:   cfg.HistoryDir(),
		Index:     cfg.IndexPath(),
	}
}
