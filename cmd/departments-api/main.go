// Command departments-api serves the converted departments over HTTP and
// re-runs the conversion at the configured refresh times.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/departments-api/config"
	"github.com/giygas/departments-api/data"
	"github.com/giygas/departments-api/departmentparser"
	"github.com/giygas/departments-api/handlers"
	"github.com/giygas/departments-api/health"
	"github.com/giygas/departments-api/logging"
	"github.com/giygas/departments-api/scheduler"
	"github.com/giygas/departments-api/server"
	"github.com/giygas/departments-api/validation"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	cfg, err := config.Load()
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

	logging.Info("Starting departments API", "env", cfg.Env.String(), "refresh_times", cfg.RefreshTimes, "env_vars", config.SetEnvVars())

	dataStore := data.NewDataContainer()
	dataStore.SetServerStartTime(time.Now())

	parser := departmentparser.NewDepartmentsParser(departmentparser.InputFile, departmentparser.OutputFile)
	sched := scheduler.NewScheduler(dataStore, parser, cfg.RefreshTimes)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		return 1
	}
	defer sched.Stop()

	healthChecker := health.NewHealthChecker(dataStore, sched.NextUpdate)
	httpHandler := handlers.NewHTTPHandler(dataStore, validation.NewDataValidator(), healthChecker)
	srv := server.NewServer(cfg, httpHandler)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logging.Info("Received signal", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logging.Error("Server failed to start", "error", err)
			return 1
		}
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server shutdown failed", "error", err)
		return 1
	}

	return 0
}
