package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/fiidash/internal/dashboard"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/pkg/logger"
	"github.com/wonny/fiidash/pkg/metrics"
)

// Paths are the files a run reads and writes
type Paths struct {
	Raw       string // fiis.json
	Processed string // fiis_processados.json
	History   string // historico/
	Index     string // index.html
}

// RunResult summarises one full refresh
type RunResult struct {
	RunID     string        `json:"run_id"`
	Collected int           `json:"collected"`
	Ranked    int           `json:"ranked"`
	Archive   string        `json:"archive,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Runner chains fetch, process and render over the data files
// ⭐ SSOT: 수집 → 가공 → 렌더 순서는 여기서만
type Runner struct {
	collector *Collector
	processor *Processor
	paths     Paths
	logger    *logger.Logger
	now       func() time.Time
}

// NewRunner creates a runner. collector may be nil when only Process and
// Render are used.
func NewRunner(collector *Collector, processor *Processor, paths Paths, log *logger.Logger) *Runner {
	return &Runner{
		collector: collector,
		processor: processor,
		paths:     paths,
		logger:    log.WithField("module", "runner"),
		now:       time.Now,
	}
}

// Fetch collects quotes, archives a snapshot and writes the raw file
func (r *Runner) Fetch(ctx context.Context) (*dataset.Document, string, error) {
	if r.collector == nil {
		return nil, "", errors.New("fetch: no collector configured")
	}

	now := r.now()
	doc, err := r.collector.Collect(ctx, now)
	if err != nil {
		return nil, "", err
	}

	archive, err := dataset.Archive(r.paths.History, doc, now)
	if err != nil {
		return nil, "", fmt.Errorf("archive raw data: %w", err)
	}
	if err := dataset.Save(r.paths.Raw, doc); err != nil {
		return nil, "", fmt.Errorf("save raw data: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"funds":   len(doc.Funds),
		"path":    r.paths.Raw,
		"archive": archive,
	}).Info("Raw data saved")

	return doc, archive, nil
}

// Process reads the raw file and writes the processed file
func (r *Runner) Process(ctx context.Context) (*dataset.Document, error) {
	raw, err := dataset.Load(r.paths.Raw)
	if err != nil {
		metrics.ObserveStage("process", err)
		return nil, fmt.Errorf("load raw data: %w", err)
	}

	doc, err := r.processor.Process(ctx, raw, r.now())
	if err != nil {
		return nil, err
	}

	if err := dataset.Save(r.paths.Processed, doc); err != nil {
		return nil, fmt.Errorf("save processed data: %w", err)
	}

	r.logger.WithFields(map[string]interface{}{
		"funds": len(doc.Funds),
		"path":  r.paths.Processed,
	}).Info("Processed data saved")

	return doc, nil
}

// Render reads the processed file and writes the dashboard page
func (r *Runner) Render(ctx context.Context) (err error) {
	defer func() { metrics.ObserveStage("render", err) }()

	doc, err := dataset.Load(r.paths.Processed)
	if err != nil {
		return fmt.Errorf("load processed data: %w", err)
	}
	if err := dashboard.WriteFile(r.paths.Index, doc); err != nil {
		return err
	}

	r.logger.WithField("path", r.paths.Index).Info("Dashboard rendered")
	return nil
}

// Run fetches, processes and renders. A failed fetch leaves the existing
// files untouched.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()

	raw, archive, err := r.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	processed, err := r.Process(ctx)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	if err := r.Render(ctx); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	result := &RunResult{
		RunID:     processed.RunID,
		Collected: len(raw.Funds),
		Ranked:    len(processed.Funds),
		Archive:   archive,
		Duration:  time.Since(start),
	}

	r.logger.WithFields(map[string]interface{}{
		"run_id":    result.RunID,
		"collected": result.Collected,
		"ranked":    result.Ranked,
		"duration":  result.Duration,
	}).Info("Refresh completed")

	return result, nil
}
