package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/metrics"
)

const queueSize = 100

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type EntryRepository interface {
	ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]*domain.DailyEntry, error)
}

type StreakJob struct {
	HabitID string
}

// StreakWorker refreshes the streak counters cached on habits after entries change.
type StreakWorker struct {
	habitRepo HabitRepository
	entryRepo EntryRepository
	logger    *zap.Logger
	jobs      chan StreakJob
	today     func() domain.Date
}

func NewStreakWorker(hRepo HabitRepository, eRepo EntryRepository, logger *zap.Logger) *StreakWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreakWorker{
		habitRepo: hRepo,
		entryRepo: eRepo,
		logger:    logger.Named("streak_worker"),
		jobs:      make(chan StreakJob, queueSize),
		today:     domain.Today,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		w.logger.Info("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.logger.Info("streak worker shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks. A full queue drops the job.
func (w *StreakWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StreakJob{HabitID: habitID}:
	default:
		metrics.RecordStreakJob("dropped")
		w.logger.Warn("streak queue full, dropping job", zap.String("habit_id", habitID))
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		metrics.RecordStreakJob("failed")
		w.logger.Error("failed to fetch habit", zap.String("habit_id", job.HabitID), zap.Error(err))
		return
	}

	today := w.today()
	entries, err := w.entryRepo.ListByHabitID(ctx, job.HabitID, habit.CreatedAt, today)
	if err != nil {
		metrics.RecordStreakJob("failed")
		w.logger.Error("failed to fetch entries", zap.String("habit_id", job.HabitID), zap.Error(err))
		return
	}

	current, longest := calculateStreaks(habit, entries, today)

	if habit.CurrentStreak == current && habit.LongestStreak == longest {
		metrics.RecordStreakJob("unchanged")
		return
	}

	if err := w.habitRepo.UpdateStreaks(ctx, habit.ID, current, longest); err != nil {
		metrics.RecordStreakJob("failed")
		w.logger.Error("failed to update streaks", zap.String("habit_id", habit.ID), zap.Error(err))
		return
	}

	metrics.RecordStreakJob("updated")
	w.logger.Debug("streaks updated",
		zap.String("habit_id", habit.ID),
		zap.Int("current", current),
		zap.Int("longest", longest),
	)
}

// calculateStreaks keeps yesterday's streak alive while today has no entry.
// A recorded failure today ends it.
func calculateStreaks(habit *domain.Habit, entries []*domain.DailyEntry, today domain.Date) (int, int) {
	current := progression.CurrentStreak(habit, entries, today)
	if current == 0 && !recordedOn(habit.ID, entries, today) {
		current = progression.CurrentStreak(habit, entries, today.AddDays(-1))
	}

	longest := progression.ComputeHabitStats(habit, entries, habit.CreatedAt, today).LongestStreak
	if current > longest {
		longest = current
	}
	return current, longest
}

func recordedOn(habitID string, entries []*domain.DailyEntry, date domain.Date) bool {
	for _, e := range entries {
		if e != nil && e.HabitID == habitID && e.DeletedAt == nil && e.Date.Equal(date) {
			return true
		}
	}
	return false
}
