package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"SignalRelay/internal/notifier"
	"SignalRelay/internal/recorder"
)

// Scheduler posts the daily activity digest to the broadcast channel.
type Scheduler struct {
	cron      *cron.Cron
	recorder  recorder.Recorder
	telegram  *notifier.Telegram
	formatter *notifier.Formatter
	log       zerolog.Logger
}

// NewScheduler creates a Scheduler.
func NewScheduler(rec recorder.Recorder, tg *notifier.Telegram, f *notifier.Formatter, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		recorder:  rec,
		telegram:  tg,
		formatter: f,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the digest task on the given cron expression.
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.cron.AddFunc(digestCron, s.digest); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) digest() {
	sum, err := s.recorder.Summarize(time.Now().Add(-24 * time.Hour))
	if err != nil {
		s.log.Error().Err(err).Msg("digest summary failed")
		return
	}
	if sum.Signals+sum.Cancels+sum.NoPrice == 0 {
		s.log.Debug().Msg("no activity, digest skipped")
		return
	}
	s.telegram.Broadcast(s.formatter.Digest(sum.Signals, sum.Cancels, sum.NoPrice))
}
