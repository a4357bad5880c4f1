package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/daybot/core/internal/application/services"
	"github.com/daybot/core/internal/infrastructure/config"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

const moodPromptText = "🧘 How are you feeling right now? Rate your mood from 1 to 5."

// job is one recurring digest. A nil weekday means the job fires daily.
type job struct {
	name    string
	hour    int
	minute  int
	weekday *time.Weekday
	render  func() (string, error)
}

// dueAt reports whether the job fires at the given wall-clock minute.
func (j job) dueAt(t time.Time) bool {
	if j.weekday != nil && t.Weekday() != *j.weekday {
		return false
	}
	return t.Hour() == j.hour && t.Minute() == j.minute
}

// Scheduler drives the recurring digests. It wakes once per minute in
// the configured timezone and sends every due digest through the
// notifier.
type Scheduler struct {
	jobs     []job
	location *time.Location
	notifier ports.Notifier
	logger   *logger.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// New builds the scheduler from configuration.
func New(cfg config.SchedulerConfig, reports *services.ReportService, quotes *services.QuoteService, notifier ports.Notifier, appLogger *logger.Logger) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduler timezone: %w", err)
	}

	s := &Scheduler{
		location: location,
		notifier: notifier,
		logger:   appLogger.WithComponent("scheduler"),
		done:     make(chan struct{}),
	}

	if err := s.addJob("morning_quote", cfg.QuoteTime, nil, func() (string, error) {
		return quotes.Random(), nil
	}); err != nil {
		return nil, err
	}

	for i, at := range cfg.MoodPromptTimes {
		name := fmt.Sprintf("mood_prompt_%d", i+1)
		if err := s.addJob(name, at, nil, func() (string, error) {
			return moodPromptText, nil
		}); err != nil {
			return nil, err
		}
	}

	if err := s.addJob("checklist_report", cfg.ChecklistReportTime, nil, reports.DailyChecklistReport); err != nil {
		return nil, err
	}

	weekday, err := parseWeekday(cfg.WeeklyReportDay)
	if err != nil {
		return nil, err
	}
	if err := s.addJob("weekly_report", cfg.WeeklyReportTime, &weekday, reports.WeeklyProductivityReport); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) addJob(name, at string, weekday *time.Weekday, render func() (string, error)) error {
	hour, minute, err := parseClock(at)
	if err != nil {
		return fmt.Errorf("invalid time for job %s: %w", name, err)
	}
	s.jobs = append(s.jobs, job{name: name, hour: hour, minute: minute, weekday: weekday, render: render})
	return nil
}

// Start launches the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	go s.run(ctx)

	s.logger.Info("Scheduler started", "jobs", len(s.jobs), "timezone", s.location.String())
}

// Stop terminates the loop and waits for it to drain.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	for {
		now := time.Now().In(s.location)
		next := now.Truncate(time.Minute).Add(time.Minute)

		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}

		s.fire(ctx, next)
	}
}

// fire sends every digest due at the given minute.
func (s *Scheduler) fire(ctx context.Context, at time.Time) {
	for _, j := range s.jobs {
		if !j.dueAt(at) {
			continue
		}

		text, err := j.render()
		if err != nil {
			s.logger.Errorw("Failed to render digest", "job", j.name, "error", err.Error())
			continue
		}

		if err := s.notifier.Send(ctx, text); err != nil {
			s.logger.Errorw("Failed to deliver digest", "job", j.name, "error", err.Error())
			continue
		}

		s.logger.Infow("Digest delivered", "job", j.name)
	}
}

// parseClock splits an HH:MM wall-clock label.
func parseClock(label string) (int, int, error) {
	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", label)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", label)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", label)
	}

	return hour, minute, nil
}

func parseWeekday(label string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), label) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", label)
}
