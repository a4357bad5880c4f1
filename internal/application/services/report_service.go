package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/daybot/core/internal/domain/entities"
	"github.com/daybot/core/internal/infrastructure/logger"
	"github.com/daybot/core/internal/ports"
)

// ReportService renders the periodic text digests. It only reads from
// the repositories, it never mutates.
type ReportService struct {
	taskRepo ports.TaskRepository
	goalRepo ports.GoalRepository
	moodRepo ports.MoodRepository
	logger   *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(taskRepo ports.TaskRepository, goalRepo ports.GoalRepository, moodRepo ports.MoodRepository, logger *logger.Logger) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
		goalRepo: goalRepo,
		moodRepo: moodRepo,
		logger:   logger,
	}
}

// DailyChecklistReport lists the tasks still open today.
func (s *ReportService) DailyChecklistReport() (string, error) {
	tasks, err := s.taskRepo.GetTasks()
	if err != nil {
		return "", fmt.Errorf("failed to build checklist report: %w", err)
	}

	var open []entities.Task
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}

	if len(open) == 0 {
		return "✅ All tasks for today are done!", nil
	}

	var b strings.Builder
	b.WriteString("📝 Unfinished tasks for today:\n\n")
	for _, t := range open {
		fmt.Fprintf(&b, "🔲 %s\n", t.Text)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ActiveGoalsReport lists goals that are still in flight.
func (s *ReportService) ActiveGoalsReport() (string, error) {
	goals, err := s.goalRepo.GetGoals()
	if err != nil {
		return "", fmt.Errorf("failed to build goals report: %w", err)
	}

	var active []entities.Goal
	for _, g := range goals {
		if !g.Completed {
			active = append(active, g)
		}
	}

	if len(active) == 0 {
		return "🎉 Every goal is reached! Time to set new ones 🚀", nil
	}

	var b strings.Builder
	b.WriteString("🎯 Current goals:\n\n")
	for _, g := range active {
		fmt.Fprintf(&b, "📌 %s (%s, %d%%)\n", g.Text, g.Priority, g.Progress)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ProgressSummary reports completion percentages across tasks and goals.
func (s *ReportService) ProgressSummary() (string, error) {
	tasks, err := s.taskRepo.GetTasks()
	if err != nil {
		return "", fmt.Errorf("failed to build progress summary: %w", err)
	}
	goals, err := s.goalRepo.GetGoals()
	if err != nil {
		return "", fmt.Errorf("failed to build progress summary: %w", err)
	}

	doneTasks := countCompleted(tasks)
	doneGoals := 0
	for _, g := range goals {
		if g.Completed {
			doneGoals++
		}
	}

	taskPercent := percent(doneTasks, len(tasks))
	goalPercent := percent(doneGoals, len(goals))

	var b strings.Builder
	b.WriteString("📊 Progress for today:\n\n")
	fmt.Fprintf(&b, "✅ Tasks: %d of %d (%d%%)\n", doneTasks, len(tasks), taskPercent)
	fmt.Fprintf(&b, "🎯 Goals: %d of %d (%d%%)\n", doneGoals, len(goals), goalPercent)

	switch {
	case taskPercent == 100 && goalPercent == 100:
		b.WriteString("\n🌟 A perfect day, everything is done!")
	case taskPercent >= 70 || goalPercent >= 70:
		b.WriteString("\n🚀 Great progress, keep going!")
	case taskPercent == 0 && goalPercent == 0:
		b.WriteString("\n😴 Time to get started, you can still make it!")
	default:
		b.WriteString("\n📈 Moving forward, every step counts.")
	}

	return b.String(), nil
}

// WeeklyProductivityReport combines the trailing week of task
// completions, goal completions and mood measurements.
func (s *ReportService) WeeklyProductivityReport() (string, error) {
	tasks, err := s.taskRepo.GetTasks()
	if err != nil {
		return "", fmt.Errorf("failed to build weekly report: %w", err)
	}
	goals, err := s.goalRepo.GetGoals()
	if err != nil {
		return "", fmt.Errorf("failed to build weekly report: %w", err)
	}
	moods, err := s.moodRepo.GetRecent(7)
	if err != nil {
		return "", fmt.Errorf("failed to build weekly report: %w", err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7).Format(entities.TimestampLayout)
	tasksDone := 0
	for _, t := range tasks {
		if t.Completed && t.CompletedAt > weekAgo {
			tasksDone++
		}
	}
	goalsDone := 0
	for _, g := range goals {
		if g.Completed && g.CompletedAt > weekAgo {
			goalsDone++
		}
	}

	var b strings.Builder
	b.WriteString("📈 Productivity over the last week:\n\n")
	fmt.Fprintf(&b, "✅ Tasks completed: %d of %d\n", tasksDone, len(tasks))
	fmt.Fprintf(&b, "🎯 Goals reached: %d of %d\n", goalsDone, len(goals))

	if len(moods) > 0 {
		total := 0
		low := 0
		for _, m := range moods {
			total += m.Value
			if m.Value <= 2 {
				low++
			}
		}
		average := float64(total) / float64(len(moods))
		fmt.Fprintf(&b, "😊 Average mood: %.1f/5\n", average)
		if low > len(moods)/2 {
			b.WriteString("\n⚠️ You felt low more often than not this week. Make time to rest!")
		}
	} else {
		b.WriteString("😶 No mood entries this week.\n")
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func countCompleted(tasks []entities.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
