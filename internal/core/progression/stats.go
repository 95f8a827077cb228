package progression

import "github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"

type HabitStats struct {
	HabitID           string  `json:"habit_id"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalDays         int     `json:"total_days"`
	CompletedDays     int     `json:"completed_days"`
	AverageCompletion float64 `json:"average_completion"`
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	TotalValue        float64 `json:"total_value"`
}

type Overview struct {
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	TotalHabits int          `json:"total_habits"`
	OverallRate float64      `json:"overall_completion_rate"`
	Habits      []HabitStats `json:"habits"`
}

// entriesByDate keeps one entry per day for habitID, last write winning.
func entriesByDate(habitID string, entries []*domain.DailyEntry) map[domain.Date]*domain.DailyEntry {
	byDate := make(map[domain.Date]*domain.DailyEntry, len(entries))
	for _, e := range entries {
		if e == nil || e.HabitID != habitID || e.DeletedAt != nil {
			continue
		}
		if prev, ok := byDate[e.Date]; ok && prev.UpdatedAt.After(e.UpdatedAt) {
			continue
		}
		byDate[e.Date] = e
	}
	return byDate
}

// ComputeHabitStats aggregates [start, end]. An inverted range yields zeros.
func ComputeHabitStats(h *domain.Habit, entries []*domain.DailyEntry, start, end domain.Date) HabitStats {
	stats := HabitStats{
		HabitID:   h.ID,
		StartDate: start.String(),
		EndDate:   end.String(),
	}
	if end.Before(start) {
		return stats
	}

	byDate := entriesByDate(h.ID, entries)

	sumPct := 0.0
	run := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if !h.ActiveOn(d) {
			continue
		}
		e := byDate[d]

		stats.TotalDays++
		sumPct += EntryCompletion(e, h.Direction)
		if e != nil {
			stats.TotalValue += e.ActualValue
		}

		if IsSuccess(EntryStatus(e, h.Direction)) {
			stats.CompletedDays++
			run++
			stats.LongestStreak = max(stats.LongestStreak, run)
		} else {
			run = 0
		}
	}

	if stats.TotalDays > 0 {
		stats.AverageCompletion = sumPct / float64(stats.TotalDays)
	}
	stats.CurrentStreak = streakEndingAt(h, byDate, end, start)

	return stats
}

// streakEndingAt walks back from end and counts success days, skipping days
// on which the habit was inactive. It never looks before floor.
func streakEndingAt(h *domain.Habit, byDate map[domain.Date]*domain.DailyEntry, end, floor domain.Date) int {
	if floor.Before(h.CreatedAt) {
		floor = h.CreatedAt
	}

	streak := 0
	for d := end; !d.Before(floor); d = d.AddDays(-1) {
		if !h.ActiveOn(d) {
			continue
		}
		if !IsSuccess(EntryStatus(byDate[d], h.Direction)) {
			break
		}
		streak++
	}
	return streak
}

// CurrentStreak is the success streak ending at date over the whole history.
func CurrentStreak(h *domain.Habit, entries []*domain.DailyEntry, date domain.Date) int {
	return streakEndingAt(h, entriesByDate(h.ID, entries), date, h.CreatedAt)
}

// DailyCompletionPercentage averages the completion of the habits active on
// date. Inactive habits are left out of the denominator.
func DailyCompletionPercentage(entriesForDate []*domain.DailyEntry, habits []*domain.Habit, date domain.Date) float64 {
	byHabit := make(map[string]*domain.DailyEntry, len(entriesForDate))
	for _, e := range entriesForDate {
		if e == nil || !e.Date.Equal(date) || e.DeletedAt != nil {
			continue
		}
		if prev, ok := byHabit[e.HabitID]; ok && prev.UpdatedAt.After(e.UpdatedAt) {
			continue
		}
		byHabit[e.HabitID] = e
	}

	applicable := 0
	sum := 0.0
	for _, h := range habits {
		if !h.ActiveOn(date) {
			continue
		}
		applicable++
		sum += EntryCompletion(byHabit[h.ID], h.Direction)
	}

	if applicable == 0 {
		return 0
	}
	return sum / float64(applicable)
}

// ComputeOverview runs ComputeHabitStats for every habit and derives the
// overall completed/total ratio.
func ComputeOverview(habits []*domain.Habit, entries []*domain.DailyEntry, start, end domain.Date) Overview {
	ov := Overview{
		StartDate:   start.String(),
		EndDate:     end.String(),
		TotalHabits: len(habits),
		Habits:      make([]HabitStats, 0, len(habits)),
	}

	total, completed := 0, 0
	for _, h := range habits {
		s := ComputeHabitStats(h, entries, start, end)
		total += s.TotalDays
		completed += s.CompletedDays
		ov.Habits = append(ov.Habits, s)
	}

	if total > 0 {
		ov.OverallRate = float64(completed) / float64(total) * 100
	}
	return ov
}
