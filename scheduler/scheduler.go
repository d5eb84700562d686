// Package scheduler re-runs the departments conversion at fixed times of day
// and swaps the result into the data store.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giygas/departments-api/interfaces"
	"github.com/giygas/departments-api/logging"
	"github.com/giygas/departments-api/validation"
	"github.com/go-co-op/gocron"
)

// staleAfter is the data age after which the monitor starts warning
const staleAfter = 25 * time.Hour

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles data updates and health monitoring using dependency injection
type Scheduler struct {
	dataStore    interfaces.DataStore
	parser       interfaces.Parser
	validator    interfaces.DataValidator
	scheduler    *gocron.Scheduler
	refreshTimes []string
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewScheduler creates a new scheduler refreshing at the given HH:MM times
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, refreshTimes []string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		dataStore:    dataStore,
		parser:       parser,
		validator:    validation.NewDataValidator(),
		scheduler:    gocron.NewScheduler(time.Local),
		refreshTimes: refreshTimes,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start loads the data once, then schedules the refreshes
func (s *Scheduler) Start() error {
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Days().At(strings.Join(s.refreshTimes, ";")).Do(func() {
		if err := s.updateData(); err != nil {
			logging.Error("Failed to update data", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule updates", "error", err)
		return fmt.Errorf("failed to schedule updates: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	return nil
}

// Stop stops the scheduled refreshes and the health monitoring
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
}

// NextUpdate returns the time of the next scheduled refresh, or the zero time when none is scheduled
func (s *Scheduler) NextUpdate() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

// updateData converts the spreadsheet again and swaps the result into the data store.
// The previous data stays in place when the conversion fails.
func (s *Scheduler) updateData() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Update already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting departments update", "started_at", time.Now().Format(time.RFC3339))
	start := time.Now()

	departments, err := s.parser.ParseDepartments(s.ctx)
	if err != nil {
		return fmt.Errorf("failed to parse departments: %w", err)
	}

	report := s.validator.ReportDataQuality(departments)
	validation.LogReport(report)

	s.dataStore.UpdateData(departments, report)

	logging.Info("Departments update completed", "duration", time.Since(start).String(), "department_count", len(departments))
	return nil
}

// startHealthMonitoring warns when the data has not been refreshed for too long
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if time.Since(s.dataStore.GetLastUpdated()) > staleAfter {
					logging.Warn("Departments haven't been updated in over 25 hours")
				}
			}
		}
	}()
}
