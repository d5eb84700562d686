// Command departments-api converts finaldata.csv into finaldata.json once and prints a summary.
// The API server lives in cmd/departments-api.
//
// Only ENV, LOG_LEVEL, LOG_DIR, LOG_RETENTION_WEEKS and METRICS_FILE are read.
// Besides the JSON file, log lines are kept in LOG_DIR (default ./logs) as app-YYYY-Www.log.
package main

import (
	"context"
	"os"

	"github.com/giygas/departments-api/config"
	"github.com/giygas/departments-api/departmentparser"
	"github.com/giygas/departments-api/logging"
	"github.com/giygas/departments-api/metrics"
	"github.com/giygas/departments-api/validation"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env only means the defaults and the process environment are used
	_ = godotenv.Load()

	cfg, err := config.LoadConverter()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		return 1
	}

	logging.InitLogger(cfg.LogDir, cfg.LogLevel, cfg.LogRetentionWeeks)
	defer func() {
		if err := logging.Close(); err != nil {
			logging.Warn("Failed to close log file", "error", err)
		}
	}()

	logging.Debug("Configuration loaded", "env_vars", config.SetEnvVars())

	departments, err := departmentparser.Convert(context.Background(), departmentparser.InputFile, departmentparser.OutputFile)
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logging.Warn("Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}
	if err != nil {
		return 1
	}

	validation.LogReport(validation.NewDataValidator().ReportDataQuality(departments))
	departmentparser.PrintSummary(os.Stdout, departments)

	return 0
}
