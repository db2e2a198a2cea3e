package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port   string
	Env    string // development, staging, production
	Server ServerConfig

	// Storage (JSON documents + generated HTML)
	DataDir      string
	OutputDir    string
	SettingsPath string

	// Upstream sources
	Brapi       BrapiConfig
	Fundamentus FundamentusConfig

	// Scheduling
	RefreshSchedule  string
	RefreshTimeout   time.Duration
	HistoryRetention time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// ServerConfig holds HTTP server timeouts.
// WriteTimeout covers the read routes; POST /api/refresh extends its own
// deadline to RefreshTimeout.
type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// BrapiConfig holds brapi.dev quote API configuration
type BrapiConfig struct {
	BaseURL           string
	Token             string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// FundamentusConfig holds the Fundamentus scraper configuration
type FundamentusConfig struct {
	BaseURL string
	Enabled bool // 섹터 누락 시에만 조회
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Server: ServerConfig{
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", "15s"),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", "30s"),
			IdleTimeout:     getEnvAsDuration("HTTP_IDLE_TIMEOUT", "60s"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", "30s"),
		},

		DataDir:      getEnv("DATA_DIR", "data"),
		OutputDir:    getEnv("OUTPUT_DIR", "."),
		SettingsPath: getEnv("SETTINGS_PATH", "config/pipeline.yaml"),

		Brapi: BrapiConfig{
			BaseURL:           getEnv("BRAPI_BASE_URL", "https://brapi.dev"),
			Token:             getEnv("BRAPI_TOKEN", ""),
			RequestsPerSecond: getEnvAsFloat("BRAPI_RPS", 2),
			Timeout:           getEnvAsDuration("BRAPI_TIMEOUT", "30s"),
		},

		Fundamentus: FundamentusConfig{
			BaseURL: getEnv("FUNDAMENTUS_BASE_URL", "https://www.fundamentus.com.br"),
			Enabled: getEnvAsBool("FUNDAMENTUS_ENABLED", true),
		},

		// 평일 18시 (장 마감 후)
		RefreshSchedule:  getEnv("REFRESH_SCHEDULE", "0 0 18 * * 1-5"),
		RefreshTimeout:   getEnvAsDuration("REFRESH_TIMEOUT", "5m"),
		HistoryRetention: getEnvAsDuration("HISTORY_RETENTION", "2160h"), // 90일

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ProcessedPath returns the path of the processed dataset served to the dashboard
func (c *Config) ProcessedPath() string {
	return filepath.Join(c.DataDir, "fiis_processados.json")
}

// RawPath returns the path of the raw fetched dataset
func (c *Config) RawPath() string {
	return filepath.Join(c.DataDir, "fiis.json")
}

// HistoryDir returns the archive directory for raw snapshots
func (c *Config) HistoryDir() string {
	return filepath.Join(c.DataDir, "historico")
}

// IndexPath returns the path of the generated dashboard page
func (c *Config) IndexPath() string {
	return filepath.Join(c.OutputDir, "index.html")
}

func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Brapi.RequestsPerSecond <= 0 {
		return fmt.Errorf("BRAPI_RPS must be > 0")
	}

	if c.Server.WriteTimeout <= 0 || c.RefreshTimeout <= 0 {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT and REFRESH_TIMEOUT must be > 0")
	}

	if c.HistoryRetention <= 0 {
		return fmt.Errorf("HISTORY_RETENTION must be > 0")
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
