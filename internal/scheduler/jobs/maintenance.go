package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wonny/fiidash/pkg/logger"
)

// archiveLayout matches the timestamp in historico/fiis_YYYYMMDD_HHMMSS.json
const archiveLayout = "20060102_150405"

// ArchiveCleanupJob removes raw snapshots older than the retention window
type ArchiveCleanupJob struct {
	dir       string
	retention time.Duration
	logger    *logger.Logger
	now       func() time.Time
}

// NewArchiveCleanupJob creates a new archive cleanup job
func NewArchiveCleanupJob(dir string, retention time.Duration, log *logger.Logger) *ArchiveCleanupJob {
	return &ArchiveCleanupJob{
		dir:       dir,
		retention: retention,
		logger:    log,
		now:       time.Now,
	}
}

// Name returns the job name
func (j *ArchiveCleanupJob) Name() string {
	return "archive_cleanup"
}

// Schedule returns the cron schedule (daily at 3 AM)
func (j *ArchiveCleanupJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run deletes expired archives. Files not named like an archive are kept.
func (j *ArchiveCleanupJob) Run(ctx context.Context) error {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", j.dir, err)
	}

	cutoff := j.now().Add(-j.retention)
	removed := 0

	for _, e := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "fiis_") || !strings.HasSuffix(name, ".json") {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, "fiis_"), ".json")
		ts, err := time.ParseInLocation(archiveLayout, stamp, time.Local)
		if err != nil || !ts.Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(j.dir, name)); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
		removed++
	}

	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Archive cleanup completed")
	}

	return nil
}
