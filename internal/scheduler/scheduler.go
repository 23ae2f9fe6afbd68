package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackupRunner writes a backup and returns the files it produced.
type BackupRunner interface {
	Backup(ctx context.Context) ([]string, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	backup BackupRunner
	spec   string
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance. spec is a standard 5-field
// cron expression evaluated in loc; an empty spec disables backups.
func NewScheduler(spec string, loc *time.Location, backup BackupRunner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		backup: backup,
		spec:   spec,
		logger: logger,
	}
}

// Start registers the backup job and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("backup schedule not configured, scheduler idle")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.runBackup); err != nil {
		return err
	}

	s.logger.Info("starting scheduler", zap.String("backup_cron", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	paths, err := s.backup.Backup(ctx)
	if err != nil {
		s.logger.Error("backup failed", zap.Error(err))
		return
	}
	s.logger.Info("backup completed", zap.Strings("files", paths))
}
