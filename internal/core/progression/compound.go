package progression

import "github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"

type CompoundEffect struct {
	StartDose        float64 `json:"start_dose"`
	CurrentDose      float64 `json:"current_dose"`
	DaysElapsed      int     `json:"days_elapsed"`
	AbsoluteChange   float64 `json:"absolute_change"`
	PercentageChange float64 `json:"percentage_change"`
}

// ComputeCompoundEffect compares the day-one dose with the dose on ref.
// Signs are kept as computed: a shrinking decrease habit reports negative
// changes.
func ComputeCompoundEffect(h *domain.Habit, ref domain.Date) CompoundEffect {
	ce := CompoundEffect{
		StartDose:   h.StartValue,
		CurrentDose: TargetDose(h, ref),
		DaysElapsed: max(domain.DaysBetween(h.CreatedAt, ref), 0),
	}

	ce.AbsoluteChange = ce.CurrentDose - ce.StartDose
	if ce.StartDose > 0 {
		ce.PercentageChange = ce.AbsoluteChange / ce.StartDose * 100
	}
	return ce
}
