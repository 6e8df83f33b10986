package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mrwolf/drmind/internal/backup"
	"github.com/mrwolf/drmind/internal/llm"
	"github.com/mrwolf/drmind/internal/models"
)

// Job names
const (
	JobProviderProbe = "provider-probe"
	JobBackup        = "daily-backup"
	JobDaySummary    = "day-summary"
)

// RunRecorder persists job executions
type RunRecorder interface {
	StartSchedulerRun(jobType string) (int64, error)
	CompleteSchedulerRun(runID int64, errMsg string) error
}

// EntryLister reads entries for the day summary
type EntryLister interface {
	ListEntries(ctx context.Context, limit int) ([]models.JournalEntry, error)
}

// Backuper writes a snapshot of all entries
type Backuper interface {
	Run(ctx context.Context) (string, error)
}

// DigestWriter is implemented by backupers that also keep day summaries
type DigestWriter interface {
	WriteDigest(d backup.Digest) (string, error)
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	scheduler gocron.Scheduler
	clock     clockwork.Clock
	runs      RunRecorder
	entries   EntryLister
	backup    Backuper
	checkers  map[string]llm.Checker
	board     *StatusBoard
	cfg       Config
}

// Config holds scheduler configuration
type Config struct {
	Timezone       string
	HealthInterval time.Duration
	Clock          clockwork.Clock
}

// New creates a new scheduler. backuper may be nil to disable the backup job.
func New(runs RunRecorder, entries EntryLister, backuper Backuper, checkers map[string]llm.Checker, board *StatusBoard, cfg Config) (*Scheduler, error) {
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		tz = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = 15 * time.Minute
	}
	if board == nil {
		board = NewStatusBoard()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(tz), gocron.WithClock(cfg.Clock))
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		clock:     cfg.Clock,
		runs:      runs,
		entries:   entries,
		backup:    backuper,
		checkers:  checkers,
		board:     board,
		cfg:       cfg,
	}, nil
}

// Board exposes the probe results for the health endpoint
func (s *Scheduler) Board() *StatusBoard {
	return s.board
}

// Start starts the scheduler and registers all jobs
func (s *Scheduler) Start() error {
	// Probe providers right away, then on the configured interval
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.cfg.HealthInterval),
		gocron.NewTask(s.probeJob),
		gocron.WithName(JobProviderProbe),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	if s.backup != nil {
		// Daily backup at 03:00
		_, err = s.scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
			gocron.NewTask(s.backupJob),
			gocron.WithName(JobBackup),
		)
		if err != nil {
			return err
		}
	}

	if s.entries != nil {
		// Day summary at 22:00
		_, err = s.scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(22, 0, 0))),
			gocron.NewTask(s.summaryJob),
			gocron.WithName(JobDaySummary),
		)
		if err != nil {
			return err
		}
	}

	s.scheduler.Start()
	log.Info().Int("jobs", len(s.scheduler.Jobs())).Msg("Scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) probeJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.ProbeNow(ctx)
}

// ProbeNow checks every provider once and updates the status board
func (s *Scheduler) ProbeNow(ctx context.Context) map[string]string {
	for name, c := range s.checkers {
		status := StatusOK
		if err := c.Check(ctx); err != nil {
			if errors.Is(err, llm.ErrNoCredential) {
				status = StatusUnconfigured
			} else {
				status = StatusUnreachable
				log.Warn().Err(err).Str("provider", name).Msg("Provider probe failed")
			}
		}
		s.board.set(name, status, s.clock.Now())
	}
	snap := s.board.Snapshot()
	log.Debug().Interface("providers", snap).Msg("Provider probe complete")
	return snap
}

func (s *Scheduler) backupJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.BackupNow(ctx); err != nil {
		log.Error().Err(err).Msg("Backup failed")
	}
}

// BackupNow runs the backup immediately and records the run
func (s *Scheduler) BackupNow(ctx context.Context) (string, error) {
	if s.backup == nil {
		return "", errors.New("backup disabled")
	}
	var path string
	err := s.track(JobBackup, func() error {
		var err error
		path, err = s.backup.Run(ctx)
		return err
	})
	return path, err
}

func (s *Scheduler) summaryJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := s.SummaryNow(ctx); err != nil {
		log.Error().Err(err).Msg("Day summary failed")
	}
}

// SummaryNow logs the entries of the last 24 hours and stores the digest
// when the backuper keeps them
func (s *Scheduler) SummaryNow(ctx context.Context) (string, error) {
	if s.entries == nil {
		return "", errors.New("no entry store")
	}
	var summary string
	err := s.track(JobDaySummary, func() error {
		entries, err := s.entries.ListEntries(ctx, 0)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		summary = FormatDaySummary(entries, now.Add(-24*time.Hour))

		if dw, ok := s.backup.(DigestWriter); ok {
			path, err := dw.WriteDigest(backup.Digest{ForDate: now.Format("2006-01-02"), Content: summary})
			if err != nil {
				return err
			}
			log.Debug().Str("path", path).Msg("Digest written")
		}
		return nil
	})
	if err == nil {
		log.Info().Str("summary", summary).Msg("Day summary")
	}
	return summary, err
}

// track records a job run when a recorder is configured
func (s *Scheduler) track(job string, fn func() error) error {
	if s.runs == nil {
		return fn()
	}
	runID, err := s.runs.StartSchedulerRun(job)
	if err != nil {
		log.Warn().Err(err).Str("job", job).Msg("Recording job start failed")
		return fn()
	}

	jobErr := fn()
	msg := ""
	if jobErr != nil {
		msg = jobErr.Error()
	}
	if err := s.runs.CompleteSchedulerRun(runID, msg); err != nil {
		log.Warn().Err(err).Str("job", job).Msg("Recording job completion failed")
	}
	return jobErr
}
