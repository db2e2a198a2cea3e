package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/internal/scheduler"
	"github.com/wonny/fiidash/internal/scheduler/jobs"
	"github.com/wonny/fiidash/pkg/config"
	"github.com/wonny/fiidash/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/fiidash scheduler start
  go run ./cmd/fiidash scheduler list
  go run ./cmd/fiidash scheduler run refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- refresh: REFRESH_SCHEDULE (기본 평일 18시, 수집 → 가공 → 렌더)
- archive_cleanup: 매일 03시 (HISTORY_RETENTION 이전 스냅샷 삭제)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== FII Dashboard Scheduler ===")

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		next, _ := sched.NextRun(jobName)
		fmt.Printf("  - %s (next: %s)\n", jobName, next.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("\nPress Ctrl+C to stop")

	<-cmd.Context().Done()

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	columns := []string{"Job", "Schedule", "Next run"}
	widths := []int{16, 18, 19}
	PrintTableHeader(columns, widths)

	stats := sched.GetJobStats()
	for _, jobName := range sched.GetAllJobs() {
		next, err := sched.NextRun(jobName)
		nextStr := "-"
		if err == nil {
			nextStr = next.Format("2006-01-02 15:04:05")
		}
		PrintTableRow([]string{jobName, stats[jobName].Schedule, nextStr}, widths)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Printf("Running job: %s\n", jobName)

	result, err := sched.RunNow(cmd.Context(), jobName)
	if err != nil {
		return err
	}

	PrintKeyValue("Run ID", result.RunID, 8)
	PrintKeyValue("Attempts", strconv.Itoa(result.Attempts), 8)
	PrintKeyValue("Duration", result.Duration.String(), 8)

	if !result.Success {
		PrintWarning(fmt.Sprintf("Job %s failed: %s", jobName, result.Error))
		return fmt.Errorf("job %s failed", jobName)
	}

	PrintSuccess(fmt.Sprintf("Job %s completed", jobName))
	return nil
}

// initScheduler initializes the scheduler with all jobs
func initScheduler() (*scheduler.Scheduler, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg)

	runner, _, err := newRunner(cfg, log)
	if err != nil {
		return nil, err
	}

	return registerJobs(scheduler.New(log), cfg, runner, log)
}

func registerJobs(sched *scheduler.Scheduler, cfg *config.Config, refresher jobs.Refresher, log *logger.Logger) (*scheduler.Scheduler, error) {
	if err := sched.AddJob(jobs.NewRefreshJob(refresher, cfg.RefreshSchedule, log)); err != nil {
		return nil, fmt.Errorf("add refresh job: %w", err)
	}

	if err := sched.AddJob(jobs.NewArchiveCleanupJob(cfg.HistoryDir(), cfg.HistoryRetention, log)); err != nil {
		return nil, fmt.Errorf("add archive cleanup job: %w", err)
	}

	return sched, nil
}
