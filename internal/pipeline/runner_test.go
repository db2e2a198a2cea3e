package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/fiidash/internal/contracts"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/internal/settings"
	"github.com/wonny/fiidash/pkg/logger"
)

type recordQuotes struct{}

func (recordQuotes) ListFunds(ctx context.Context) ([]string, error) {
	return []string{"MXRF11", "HGLG11"}, nil
}

func (recordQuotes) QuoteBatch(ctx context.Context, tickers []string) ([]*contracts.FundRecord, error) {
	out := make([]*contracts.FundRecord, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, &contracts.FundRecord{
			Symbol:             t,
			Sector:             contracts.SectorReceivables,
			RegularMarketPrice: contracts.Float(9.5),
			DividendYield:      contracts.Float(0.12),
			BookValue:          contracts.Float(10),
		})
	}
	return out, nil
}

func testPaths(t *testing.T) Paths {
	dir := t.TempDir()
	return Paths{
		Raw:       filepath.Join(dir, "data", "fiis.json"),
		Processed: filepath.Join(dir, "data", "fiis_processados.json"),
		History:   filepath.Join(dir, "data", "historico"),
		Index:     filepath.Join(dir, "index.html"),
	}
}

func TestRunnerRun(t *testing.T) {
	s := settings.Default()
	log := logger.Nop()
	paths := testPaths(t)

	runner := NewRunner(NewCollector(recordQuotes{}, nil, s, log), NewProcessor(s, log), paths, log)
	runner.now = func() time.Time { return time.Date(2025, 3, 10, 18, 0, 0, 0, time.Local) }

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Collected)
	assert.Equal(t, 2, result.Ranked)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, filepath.Join(paths.History, "fiis_20250310_180000.json"), result.Archive)

	processed, err := dataset.Load(paths.Processed)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, processed.RunID)
	require.NotNil(t, processed.Funds[0].Score)

	for _, p := range []string{paths.Raw, paths.Index, result.Archive} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestRunnerFetchWithoutCollector(t *testing.T) {
	s := settings.Default()
	runner := NewRunner(nil, NewProcessor(s, logger.Nop()), testPaths(t), logger.Nop())

	_, err := runner.Run(context.Background())
	assert.ErrorContains(t, err, "no collector")
}

func TestRunnerProcessMissingRaw(t *testing.T) {
	s := settings.Default()
	runner := NewRunner(nil, NewProcessor(s, logger.Nop()), testPaths(t), logger.Nop())

	_, err := runner.Process(context.Background())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunnerRenderMissingProcessed(t *testing.T) {
	runner := NewRunner(nil, NewProcessor(settings.Default(), logger.Nop()), testPaths(t), logger.Nop())
	assert.Error(t, runner.Render(context.Background()))
}
