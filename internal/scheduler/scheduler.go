// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Sweeper evicts expired entries and reports how many were dropped.
type Sweeper interface {
	Sweep(now time.Time) int
}

type Scheduler struct {
	sched  gocron.Scheduler
	logger *slog.Logger
}

func New(logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{sched: sched, logger: logger}, nil
}

// AddSweep runs s.Sweep every interval.
func (s *Scheduler) AddSweep(name string, interval time.Duration, sw Sweeper) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n := sw.Sweep(time.Now()); n > 0 {
				s.logger.Debug("sweep", "job", name, "evicted", n)
			}
		}),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
