// Package progression computes doses, statuses, statistics, compound effect
// and milestones for habits. Every function is pure: callers own all state.
package progression

import (
	"math"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

// RoundHalfUp rounds to the nearest integer, .5 going up.
func RoundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// ElapsedPeriods counts whole progression periods between the habit start and
// date, never negative. Habits without progression count days.
func ElapsedPeriods(h *domain.Habit, date domain.Date) int {
	var n int
	if h.Progression != nil && h.Progression.Period == domain.PeriodWeekly {
		n = domain.WeeksBetween(h.CreatedAt, date)
	} else {
		n = domain.DaysBetween(h.CreatedAt, date)
	}
	return max(n, 0)
}

// TargetDose returns the dose expected on date.
func TargetDose(h *domain.Habit, date domain.Date) float64 {
	if h.Direction == domain.DirectionMaintain || h.Progression == nil {
		return h.StartValue
	}

	elapsed := ElapsedPeriods(h, date)
	if elapsed == 0 {
		return h.StartValue
	}

	sign := 1.0
	if h.Direction == domain.DirectionDecrease {
		sign = -1.0
	}

	var dose float64
	switch h.Progression.Mode {
	case domain.ProgressionAbsolute:
		dose = h.StartValue + sign*h.Progression.Value*float64(elapsed)
	case domain.ProgressionPercentage:
		dose = h.StartValue * math.Pow(1+sign*h.Progression.Value/100, float64(elapsed))
	default:
		dose = h.StartValue
	}

	switch h.Direction {
	case domain.DirectionIncrease:
		if h.TargetValue != nil {
			dose = math.Min(dose, *h.TargetValue)
		}
	case domain.DirectionDecrease:
		floor := 0.0
		if h.TargetValue != nil {
			floor = *h.TargetValue
		}
		dose = math.Max(dose, floor)
	}

	return RoundHalfUp(dose)
}

type ScheduledDose struct {
	Date domain.Date `json:"date"`
	Dose float64     `json:"dose"`
}

// DoseSchedule lists the dose of every day in [from, to]. It is empty when to
// precedes from.
func DoseSchedule(h *domain.Habit, from, to domain.Date) []ScheduledDose {
	days := domain.DaysBetween(from, to)
	if days < 0 {
		return []ScheduledDose{}
	}

	out := make([]ScheduledDose, 0, days+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, ScheduledDose{Date: d, Dose: TargetDose(h, d)})
	}
	return out
}
