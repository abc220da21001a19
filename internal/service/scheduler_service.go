package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the background jobs, the periodic occurrence top-up and the
// daily summary, on cron schedules in a fixed location.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Daily registers a job that fires once a day at the given wall-clock time,
// formatted HH:MM.
func (s *Scheduler) Daily(at string, job func()) error {
	spec, err := dailySpec(at)
	if err != nil {
		return err
	}
	_, err = s.cron.AddFunc(spec, job)
	return err
}

// Every registers a job that fires on the given interval, rounded down to
// whole seconds.
func (s *Scheduler) Every(interval time.Duration, job func()) error {
	if interval < time.Second {
		return fmt.Errorf("interval %s too short, want at least a second", interval)
	}
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", int(interval.Seconds())), job)
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func dailySpec(at string) (string, error) {
	parsed, err := time.Parse("15:04", at)
	if err != nil {
		return "", fmt.Errorf("invalid daily time %q, expected HH:MM: %w", at, err)
	}
	// cron field order with seconds enabled: sec min hour dom month dow.
	return fmt.Sprintf("0 %d %d * * *", parsed.Minute(), parsed.Hour()), nil
}
