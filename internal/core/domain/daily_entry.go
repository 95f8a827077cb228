package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEntry   = errors.New("invalid daily entry data")
	ErrNegativeValue  = errors.New("entry value cannot be negative")
	ErrNothingToUndo  = errors.New("no operation to undo")
	ErrWrongEntryMode = errors.New("operation not supported by the habit entry mode")
	ErrFutureEntry    = errors.New("cannot record an entry for a future date")
)

// Operation is one signed step of a cumulative entry.
type Operation struct {
	Delta float64   `json:"delta"`
	At    time.Time `json:"at"`
}

// Operations is stored as a JSON array.
type Operations []Operation

func (o Operations) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

func (o *Operations) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Operations", src)
	}
	return json.Unmarshal(data, o)
}

// Sum replays the log.
func (o Operations) Sum() float64 {
	total := 0.0
	for _, op := range o {
		total += op.Delta
	}
	return total
}

type DailyEntry struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	Date        Date       `json:"date" db:"entry_date"`
	TargetDose  float64    `json:"target_dose" db:"target_dose"`
	ActualValue float64    `json:"actual_value" db:"actual_value"`
	Operations  Operations `json:"operations,omitempty" db:"operations"`
	Notes       string     `json:"notes" db:"notes"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// NewDailyEntry snapshots targetDose; the snapshot is never recomputed afterwards.
func NewDailyEntry(habitID, userID string, date Date, targetDose float64) *DailyEntry {
	now := time.Now().UTC()

	return &DailyEntry{
		HabitID:    habitID,
		UserID:     userID,
		Date:       date,
		TargetDose: targetDose,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetValue overwrites the value of a replace-mode entry.
func (e *DailyEntry) SetValue(v float64) error {
	if v < 0 {
		return ErrNegativeValue
	}
	e.ActualValue = v
	e.Operations = nil
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyOperation appends a signed delta and replays the log.
func (e *DailyEntry) ApplyOperation(delta float64, at time.Time) error {
	if e.Operations.Sum()+delta < 0 {
		return ErrNegativeValue
	}
	e.Operations = append(e.Operations, Operation{Delta: delta, At: at.UTC()})
	e.ActualValue = e.Operations.Sum()
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// UndoLastOperation drops the most recent operation.
func (e *DailyEntry) UndoLastOperation() error {
	if len(e.Operations) == 0 {
		return ErrNothingToUndo
	}
	e.Operations = e.Operations[:len(e.Operations)-1]
	e.ActualValue = e.Operations.Sum()
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (e *DailyEntry) Validate() error {
	if strings.TrimSpace(e.HabitID) == "" {
		return fmt.Errorf("%w: habit_id is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidEntry)
	}
	if e.ActualValue < 0 {
		return ErrNegativeValue
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	return nil
}
