package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty        = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong      = errors.New("habit title is too long (max 100 chars)")
	ErrHabitUnitTooLong       = errors.New("habit unit is too long (max 30 chars)")
	ErrHabitInvalidUserID     = errors.New("invalid user id")
	ErrInvalidDirection       = errors.New("invalid direction (must be increase, decrease, or maintain)")
	ErrInvalidStartValue      = errors.New("start value must be greater than zero")
	ErrProgressionRequired    = errors.New("progression is required unless direction is maintain")
	ErrProgressionNotAllowed  = errors.New("maintain habits cannot have a progression")
	ErrInvalidProgressionMode = errors.New("invalid progression mode (must be percentage or absolute)")
	ErrInvalidPeriod          = errors.New("invalid progression period (must be daily or weekly)")
	ErrInvalidProgression     = errors.New("progression value must be greater than zero")
	ErrPercentageTooLarge     = errors.New("decrease percentage must be below 100")
	ErrInvalidTarget          = errors.New("target value must lie in the direction of travel")
	ErrTargetNotAllowed       = errors.New("maintain habits cannot have a target value")
	ErrInvalidEntryMode       = errors.New("invalid entry mode (must be replace or cumulative)")
	ErrHabitArchived          = errors.New("cannot update an archived habit")
	ErrHabitNotArchived       = errors.New("habit is not archived")
	ErrHabitAlreadyPaused     = errors.New("habit is already paused")
	ErrHabitNotPaused         = errors.New("habit is not paused")
	ErrInvalidPauseDate       = errors.New("pause date cannot precede the habit start")
	ErrHabitInactive          = errors.New("habit is not active on this date")
)

const (
	MaxTitleLen = 100
	MaxUnitLen  = 30
)

type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionMaintain Direction = "maintain"
)

type ProgressionMode string

const (
	ProgressionPercentage ProgressionMode = "percentage"
	ProgressionAbsolute   ProgressionMode = "absolute"
)

type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

type EntryMode string

const (
	EntryModeReplace    EntryMode = "replace"
	EntryModeCumulative EntryMode = "cumulative"
)

// Progression is the growth rule of a non-maintain habit.
type Progression struct {
	Mode   ProgressionMode `json:"mode"`
	Value  float64         `json:"value"`
	Period Period          `json:"period"`
}

// Pause covers the days in [From, To). A zero To means the pause is still running.
type Pause struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

func (p Pause) Covers(d Date) bool {
	if d.Before(p.From) {
		return false
	}
	return p.To.IsZero() || d.Before(p.To)
}

type Habit struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Title         string       `json:"title"`
	Direction     Direction    `json:"direction"`
	StartValue    float64      `json:"start_value"`
	Unit          string       `json:"unit"`
	Progression   *Progression `json:"progression,omitempty"`
	TargetValue   *float64     `json:"target_value,omitempty"`
	EntryMode     EntryMode    `json:"entry_mode"`
	CreatedAt     Date         `json:"created_at"`
	ArchivedAt    *Date        `json:"archived_at,omitempty"`
	Pauses        []Pause      `json:"pauses,omitempty"`
	CurrentStreak int          `json:"current_streak"`
	LongestStreak int          `json:"longest_streak"`
	Version       int          `json:"version"`
	UpdatedAt     time.Time    `json:"updated_at"`
	DeletedAt     *time.Time   `json:"deleted_at,omitempty"`
}

// HabitParams carries the editable configuration of a habit.
type HabitParams struct {
	Title       string
	Direction   Direction
	StartValue  float64
	Unit        string
	Progression *Progression
	TargetValue *float64
	EntryMode   EntryMode
}

func validateParams(p HabitParams) (HabitParams, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Unit = strings.TrimSpace(p.Unit)

	if p.Title == "" {
		return p, ErrHabitTitleEmpty
	}
	if len(p.Title) > MaxTitleLen {
		return p, ErrHabitTitleTooLong
	}
	if len(p.Unit) > MaxUnitLen {
		return p, ErrHabitUnitTooLong
	}

	switch p.Direction {
	case DirectionIncrease, DirectionDecrease, DirectionMaintain:
	default:
		return p, ErrInvalidDirection
	}

	if !(p.StartValue > 0) || math.IsInf(p.StartValue, 0) {
		return p, ErrInvalidStartValue
	}

	if p.EntryMode == "" {
		p.EntryMode = EntryModeReplace
	}
	switch p.EntryMode {
	case EntryModeReplace, EntryModeCumulative:
	default:
		return p, ErrInvalidEntryMode
	}

	if p.Direction == DirectionMaintain {
		if p.Progression != nil {
			return p, ErrProgressionNotAllowed
		}
		if p.TargetValue != nil {
			return p, ErrTargetNotAllowed
		}
		return p, nil
	}

	if p.Progression == nil {
		return p, ErrProgressionRequired
	}
	if err := validateProgression(p.Direction, *p.Progression); err != nil {
		return p, err
	}

	if p.TargetValue != nil {
		target := *p.TargetValue
		switch p.Direction {
		case DirectionIncrease:
			if target < p.StartValue {
				return p, ErrInvalidTarget
			}
		case DirectionDecrease:
			if target < 0 || target > p.StartValue {
				return p, ErrInvalidTarget
			}
		}
	}

	return p, nil
}

func validateProgression(dir Direction, pr Progression) error {
	switch pr.Mode {
	case ProgressionPercentage, ProgressionAbsolute:
	default:
		return ErrInvalidProgressionMode
	}

	switch pr.Period {
	case PeriodDaily, PeriodWeekly:
	default:
		return ErrInvalidPeriod
	}

	if !(pr.Value > 0) || math.IsInf(pr.Value, 0) {
		return ErrInvalidProgression
	}

	if pr.Mode == ProgressionPercentage && dir == DirectionDecrease && pr.Value >= 100 {
		return ErrPercentageTooLarge
	}
	return nil
}

func NewHabit(userID string, startDate Date, p HabitParams) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	clean, err := validateParams(p)
	if err != nil {
		return nil, err
	}

	if startDate.IsZero() {
		startDate = Today()
	}

	h := &Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: startDate,
		Version:   1,
		UpdatedAt: time.Now().UTC(),
	}
	h.apply(clean)

	return h, nil
}

func (h *Habit) apply(p HabitParams) {
	h.Title = p.Title
	h.Direction = p.Direction
	h.StartValue = p.StartValue
	h.Unit = p.Unit
	h.EntryMode = p.EntryMode
	h.Progression = nil
	h.TargetValue = nil

	if p.Progression != nil {
		pr := *p.Progression
		h.Progression = &pr
	}
	if p.TargetValue != nil {
		t := *p.TargetValue
		h.TargetValue = &t
	}
}

// Params returns the editable configuration, for merging partial updates.
func (h *Habit) Params() HabitParams {
	p := HabitParams{
		Title:      h.Title,
		Direction:  h.Direction,
		StartValue: h.StartValue,
		Unit:       h.Unit,
		EntryMode:  h.EntryMode,
	}
	if h.Progression != nil {
		pr := *h.Progression
		p.Progression = &pr
	}
	if h.TargetValue != nil {
		t := *h.TargetValue
		p.TargetValue = &t
	}
	return p
}

// Update replaces the configuration. Stored entries keep their dose snapshots,
// so the change only affects doses computed from now on.
func (h *Habit) Update(p HabitParams) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}

	clean, err := validateParams(p)
	if err != nil {
		return err
	}

	h.apply(clean)
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Archive(on Date) {
	if h.ArchivedAt != nil {
		return
	}
	if on.Before(h.CreatedAt) {
		on = h.CreatedAt
	}
	h.ArchivedAt = &on
	h.UpdatedAt = time.Now().UTC()
}

func (h *Habit) Restore() error {
	if h.ArchivedAt == nil {
		return ErrHabitNotArchived
	}
	h.ArchivedAt = nil
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) openPause() int {
	for i, p := range h.Pauses {
		if p.To.IsZero() {
			return i
		}
	}
	return -1
}

func (h *Habit) IsPaused() bool {
	return h.openPause() >= 0
}

func (h *Habit) Pause(on Date) error {
	if h.ArchivedAt != nil {
		return ErrHabitArchived
	}
	if h.IsPaused() {
		return ErrHabitAlreadyPaused
	}
	if on.Before(h.CreatedAt) {
		return ErrInvalidPauseDate
	}

	h.Pauses = append(h.Pauses, Pause{From: on})
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) Resume(on Date) error {
	i := h.openPause()
	if i < 0 {
		return ErrHabitNotPaused
	}
	if on.Before(h.Pauses[i].From) {
		on = h.Pauses[i].From
	}

	h.Pauses[i].To = on
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) PausedOn(d Date) bool {
	for _, p := range h.Pauses {
		if p.Covers(d) {
			return true
		}
	}
	return false
}

// ActiveOn reports whether the habit existed on d and was not paused.
func (h *Habit) ActiveOn(d Date) bool {
	if d.Before(h.CreatedAt) {
		return false
	}
	if h.ArchivedAt != nil && !d.Before(*h.ArchivedAt) {
		return false
	}
	return !h.PausedOn(d)
}

func (h *Habit) UpdateStreak(current, longest int) {
	h.CurrentStreak = current
	h.LongestStreak = longest
	h.UpdatedAt = time.Now().UTC()
}
