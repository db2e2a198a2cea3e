package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/fiidash/internal/api"
	"github.com/wonny/fiidash/internal/api/handlers"
	"github.com/wonny/fiidash/internal/dataset"
	"github.com/wonny/fiidash/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 + 대시보드 시작",
	Long: `대시보드 페이지와 REST API를 제공합니다.
요청마다 가공된 파일을 다시 읽으므로 갱신 결과가 바로 반영됩니다.

Endpoints:
  GET  /                        - 대시보드 페이지 (sector, minYield, maxPrice)
  GET  /health                  - Health check
  GET  /api/fiis                - 필터된 펀드 목록
  GET  /api/sectors             - 섹터 목록
  GET  /api/recommendations     - 성향별 추천
  GET  /api/charts/sectors      - 섹터 분포
  GET  /api/charts/pvp-dy       - P/VP x DY
  POST /api/refresh             - 즉시 갱신 (--allow-refresh)
  GET  /metrics                 - Prometheus

Example:
  go run ./cmd/fiidash serve
  go run ./cmd/fiidash serve --port 8080 --allow-refresh`,
	RunE: runServe,
}

var (
	servePort         string
	serveAllowRefresh bool
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (default PORT)")
	serveCmd.Flags().BoolVar(&serveAllowRefresh, "allow-refresh", false, "POST /api/refresh 활성화")
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("=== FII Dashboard Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
		"data": cfg.ProcessedPath(),
	}).Info("Initializing API server")

	// 3. Create handlers
	fundHandler := handlers.NewFundHandler(dataset.NewFileSource(cfg.ProcessedPath()), log)

	var refreshHandler *handlers.RefreshHandler
	if serveAllowRefresh {
		runner, _, err := newRunner(cfg, log)
		if err != nil {
			return err
		}
		refreshHandler = handlers.NewRefreshHandler(runner, cfg.RefreshTimeout, log)
	}

	// 4. Create router + server
	router := api.NewRouter(fundHandler, refreshHandler, log, cfg.MetricsEnabled)
	server := api.New(cfg, log, router)

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// 5. Serve until Ctrl+C, then drain
	return server.Run(cmd.Context())
}
