package jobs

import (
	"context"

	"github.com/wonny/fiidash/internal/pipeline"
	"github.com/wonny/fiidash/pkg/logger"
)

// Refresher runs fetch, process and render
type Refresher interface {
	Run(ctx context.Context) (*pipeline.RunResult, error)
}

// RefreshJob refreshes the dashboard data after market close
// ⭐ SSOT: 데이터 갱신 스케줄은 이 Job에서만
type RefreshJob struct {
	refresher Refresher
	schedule  string
	logger    *logger.Logger
}

// NewRefreshJob creates a new refresh job
func NewRefreshJob(refresher Refresher, schedule string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		refresher: refresher,
		schedule:  schedule,
		logger:    log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "refresh"
}

// Schedule returns the configured cron schedule
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh
func (j *RefreshJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled refresh")

	result, err := j.refresher.Run(ctx)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id": result.RunID,
		"ranked": result.Ranked,
	}).Info("Scheduled refresh completed")

	return nil
}
