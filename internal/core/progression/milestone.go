package progression

import (
	"fmt"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

const (
	MilestoneGoalReached     domain.MilestoneKey = "goal_reached"
	MilestoneHalfway         domain.MilestoneKey = "halfway"
	MilestoneDoubled         domain.MilestoneKey = "doubled"
	MilestoneHalved          domain.MilestoneKey = "halved"
	MilestoneFirstZero       domain.MilestoneKey = "first_zero"
	MilestoneFirstCompletion domain.MilestoneKey = "first_completion"
)

// StreakThresholds are checked longest first.
var StreakThresholds = []int{365, 100, 60, 30, 21, 14, 7, 3}

func StreakMilestone(days int) domain.MilestoneKey {
	return domain.MilestoneKey(fmt.Sprintf("streak_%d", days))
}

// CheckIn describes one recorded value change on a single day.
type CheckIn struct {
	Habit      *domain.Habit
	Date       domain.Date
	TargetDose float64

	// PreviousValue is nil when the day had no entry before the check-in.
	PreviousValue *float64
	NewValue      float64

	// History holds the habit's other entries. An entry for Date is ignored.
	History []*domain.DailyEntry
}

type Detection struct {
	// Milestone is empty when nothing was crossed.
	Milestone  domain.MilestoneKey  `json:"milestone,omitempty"`
	Celebrated domain.CelebratedSet `json:"-"`
}

func (d Detection) Fired() bool { return d.Milestone != "" }

type snapshot struct {
	habit  *domain.Habit
	date   domain.Date
	dose   float64
	entry  *domain.DailyEntry
	byDate map[domain.Date]*domain.DailyEntry
}

func (s snapshot) value() (float64, bool) {
	if s.entry == nil {
		return 0, false
	}
	return s.entry.ActualValue, true
}

type predicate struct {
	key   domain.MilestoneKey
	holds func(s snapshot) bool
}

func milestonePredicates(h *domain.Habit) []predicate {
	var preds []predicate

	if h.TargetValue != nil && h.Direction != domain.DirectionMaintain {
		goal := *h.TargetValue
		preds = append(preds, predicate{MilestoneGoalReached, func(s snapshot) bool {
			v, ok := s.value()
			if !ok {
				return false
			}
			if h.Direction == domain.DirectionDecrease {
				return v <= goal
			}
			return v >= goal
		}})
	}

	for _, n := range StreakThresholds {
		n := n
		preds = append(preds, predicate{StreakMilestone(n), func(s snapshot) bool {
			return streakEndingAt(s.habit, s.byDate, s.date, s.habit.CreatedAt) >= n
		}})
	}

	if h.TargetValue != nil && *h.TargetValue != h.StartValue && h.Direction != domain.DirectionMaintain {
		mid := h.StartValue + (*h.TargetValue-h.StartValue)/2
		preds = append(preds, predicate{MilestoneHalfway, func(s snapshot) bool {
			v, ok := s.value()
			if !ok {
				return false
			}
			if h.Direction == domain.DirectionDecrease {
				return v <= mid
			}
			return v >= mid
		}})
	}

	switch h.Direction {
	case domain.DirectionIncrease:
		preds = append(preds, predicate{MilestoneDoubled, func(s snapshot) bool {
			v, ok := s.value()
			return ok && v >= 2*h.StartValue
		}})
	case domain.DirectionDecrease:
		preds = append(preds, predicate{MilestoneHalved, func(s snapshot) bool {
			v, ok := s.value()
			return ok && v <= h.StartValue/2
		}})
		preds = append(preds, predicate{MilestoneFirstZero, func(s snapshot) bool {
			v, ok := s.value()
			return ok && v == 0
		}})
	}

	preds = append(preds, predicate{MilestoneFirstCompletion, func(s snapshot) bool {
		v, ok := s.value()
		return ok && IsSuccess(ValueStatus(v, s.dose, h.Direction))
	}})

	return preds
}

func buildSnapshot(in CheckIn, history map[domain.Date]*domain.DailyEntry, value *float64) snapshot {
	byDate := make(map[domain.Date]*domain.DailyEntry, len(history)+1)
	for d, e := range history {
		byDate[d] = e
	}

	s := snapshot{habit: in.Habit, date: in.Date, dose: in.TargetDose, byDate: byDate}
	if value != nil {
		s.entry = &domain.DailyEntry{
			HabitID:     in.Habit.ID,
			Date:        in.Date,
			TargetDose:  in.TargetDose,
			ActualValue: *value,
		}
		byDate[in.Date] = s.entry
	}
	return s
}

// DetectMilestone reports the highest-priority milestone that the check-in
// crossed and that celebrated does not hold yet. The returned set contains
// every milestone crossed by this check-in, reported or not, so repeating the
// call with it never fires again. A crossed milestone that lost on priority is
// consumed with the reported one and can never be celebrated later.
// celebrated itself is left untouched.
func DetectMilestone(in CheckIn, celebrated domain.CelebratedSet) Detection {
	history := entriesByDate(in.Habit.ID, in.History)
	delete(history, in.Date)

	newValue := in.NewValue
	before := buildSnapshot(in, history, in.PreviousValue)
	after := buildSnapshot(in, history, &newValue)

	var crossed []domain.MilestoneKey
	for _, p := range milestonePredicates(in.Habit) {
		if celebrated.Has(p.key) {
			continue
		}
		if !p.holds(before) && p.holds(after) {
			crossed = append(crossed, p.key)
		}
	}

	det := Detection{Celebrated: celebrated.With(crossed...)}
	if len(crossed) > 0 {
		det.Milestone = crossed[0]
	}
	return det
}
