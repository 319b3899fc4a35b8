// Package jobs runs periodic maintenance tasks on a cron schedule.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/persistence"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Snapshotter is anything that can produce an export snapshot.
type Snapshotter interface {
	ExportSnapshot() persistence.Snapshot
}

// BackupJob writes the export snapshot to dir as inventory_backup_YYYY-MM-DD.json.
// A second run on the same day overwrites that day's file.
type BackupJob struct {
	source Snapshotter
	dir    string
	now    func() time.Time
}

func NewBackupJob(source Snapshotter, dir string) *BackupJob {
	return &BackupJob{source: source, dir: dir, now: time.Now}
}

// Run takes one backup and returns the written path.
func (j *BackupJob) Run() (string, error) {
	data, err := json.MarshalIndent(j.source.ExportSnapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("backup: encode: %w", err)
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	path := filepath.Join(j.dir, persistence.SnapshotFileName(j.now()))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("backup: write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	return path, nil
}

// Scheduler owns the cron instance.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithParser(cronParser)),
		logger: logger,
	}
}

// ScheduleBackup registers job under spec. An empty spec disables backups.
func (s *Scheduler) ScheduleBackup(spec string, job *BackupJob) error {
	if spec == "" {
		s.logger.Info("scheduled backups disabled")
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() {
		path, err := job.Run()
		if err != nil {
			s.logger.Error("backup failed", zap.Error(err))
			return
		}
		s.logger.Info("backup written", zap.String("path", path))
	})
	if err != nil {
		return fmt.Errorf("jobs: schedule %q: %w", spec, err)
	}
	s.logger.Info("scheduled backups enabled", zap.String("schedule", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job or ctx, whichever ends first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
