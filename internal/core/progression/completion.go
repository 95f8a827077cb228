package progression

import (
	"math"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusPartial     Status = "partial"
	StatusCompleted   Status = "completed"
	StatusExceeded    Status = "exceeded"
	StatusZeroVictory Status = "zero_victory"
)

const MaxCompletionPercentage = 200.0

// IsSuccess reports whether the status counts as a completed day.
func IsSuccess(s Status) bool {
	switch s {
	case StatusCompleted, StatusExceeded, StatusZeroVictory:
		return true
	}
	return false
}

// EntryStatus evaluates an entry against its own target dose snapshot.
// A nil entry is pending.
func EntryStatus(e *domain.DailyEntry, dir domain.Direction) Status {
	if e == nil {
		return StatusPending
	}
	return ValueStatus(e.ActualValue, e.TargetDose, dir)
}

func ValueStatus(actual, target float64, dir domain.Direction) Status {
	if dir == domain.DirectionDecrease {
		switch {
		case actual == 0:
			return StatusZeroVictory
		case actual > target:
			return StatusPartial
		default:
			return StatusCompleted
		}
	}

	switch {
	case actual < target:
		return StatusPartial
	case actual == target:
		return StatusCompleted
	default:
		return StatusExceeded
	}
}

// CompletionPercentage maps a value to [0, 200]. For decrease habits lower is
// better: meeting the target gives 100 and recording zero gives 200.
func CompletionPercentage(actual, target float64, dir domain.Direction) float64 {
	var pct float64

	if dir == domain.DirectionDecrease {
		switch {
		case actual > target:
			pct = target / actual * 100
		case target <= 0:
			pct = MaxCompletionPercentage
		default:
			pct = 100 + (target-actual)/target*100
		}
	} else {
		switch {
		case target > 0:
			pct = actual / target * 100
		case actual > 0:
			pct = MaxCompletionPercentage
		default:
			pct = 100
		}
	}

	if math.IsNaN(pct) {
		return 0
	}
	return math.Max(0, math.Min(MaxCompletionPercentage, pct))
}

// EntryCompletion is CompletionPercentage of an entry, 0 when missing.
func EntryCompletion(e *domain.DailyEntry, dir domain.Direction) float64 {
	if e == nil {
		return 0
	}
	return CompletionPercentage(e.ActualValue, e.TargetDose, dir)
}
