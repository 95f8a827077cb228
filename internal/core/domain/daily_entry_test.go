package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDailyEntry(t *testing.T) {
	date := MustParseDate("2026-01-28")
	entry := NewDailyEntry("habit-123", "user-456", date, 12)

	t.Run("Should set core identity fields correctly", func(t *testing.T) {
		assert.Equal(t, "habit-123", entry.HabitID)
		assert.Equal(t, "user-456", entry.UserID)
		assert.Equal(t, date, entry.Date)
		assert.Equal(t, 12.0, entry.TargetDose)
		assert.Equal(t, 0.0, entry.ActualValue)
	})

	t.Run("Should initialize versioning fields", func(t *testing.T) {
		assert.Equal(t, 1, entry.Version, "Version must always start at 1 for optimistic locking")
		assert.False(t, entry.CreatedAt.IsZero(), "CreatedAt must be set")
		assert.False(t, entry.UpdatedAt.IsZero(), "UpdatedAt must be set")
		assert.Nil(t, entry.DeletedAt, "DeletedAt must be nil on creation")
	})
}

func TestDailyEntry_Operations(t *testing.T) {
	now := time.Now()

	t.Run("Replay sums signed deltas", func(t *testing.T) {
		e := NewDailyEntry("h", "u", MustParseDate("2026-01-28"), 8)

		require.NoError(t, e.ApplyOperation(3, now))
		require.NoError(t, e.ApplyOperation(2, now))
		require.NoError(t, e.ApplyOperation(-1, now))

		assert.Equal(t, 4.0, e.ActualValue)
		assert.Len(t, e.Operations, 3)
	})

	t.Run("Undo removes only the last operation", func(t *testing.T) {
		e := NewDailyEntry("h", "u", MustParseDate("2026-01-28"), 8)
		require.NoError(t, e.ApplyOperation(3, now))
		require.NoError(t, e.ApplyOperation(5, now))

		require.NoError(t, e.UndoLastOperation())
		assert.Equal(t, 3.0, e.ActualValue)

		require.NoError(t, e.UndoLastOperation())
		assert.Equal(t, 0.0, e.ActualValue)

		assert.ErrorIs(t, e.UndoLastOperation(), ErrNothingToUndo)
	})

	t.Run("Operation below zero is rejected", func(t *testing.T) {
		e := NewDailyEntry("h", "u", MustParseDate("2026-01-28"), 8)
		require.NoError(t, e.ApplyOperation(1, now))

		assert.ErrorIs(t, e.ApplyOperation(-2, now), ErrNegativeValue)
		assert.Equal(t, 1.0, e.ActualValue)
		assert.Len(t, e.Operations, 1)
	})

	t.Run("SetValue clears the log", func(t *testing.T) {
		e := NewDailyEntry("h", "u", MustParseDate("2026-01-28"), 8)
		require.NoError(t, e.ApplyOperation(1, now))

		require.NoError(t, e.SetValue(6))
		assert.Equal(t, 6.0, e.ActualValue)
		assert.Nil(t, e.Operations)

		assert.ErrorIs(t, e.SetValue(-1), ErrNegativeValue)
	})
}

func TestOperations_SQL(t *testing.T) {
	ops := Operations{{Delta: 2, At: time.Date(2026, 1, 28, 9, 0, 0, 0, time.UTC)}}

	raw, err := ops.Value()
	require.NoError(t, err)

	var back Operations
	require.NoError(t, back.Scan(raw))
	assert.Equal(t, ops, back)

	empty, err := Operations(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), empty)
}

func TestDailyEntry_Validate(t *testing.T) {
	valid := func() *DailyEntry {
		return NewDailyEntry("h", "u", MustParseDate("2026-01-28"), 8)
	}

	assert.NoError(t, valid().Validate())

	e := valid()
	e.HabitID = " "
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)

	e = valid()
	e.UserID = ""
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)

	e = valid()
	e.Date = Date{}
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)

	e = valid()
	e.ActualValue = -1
	assert.ErrorIs(t, e.Validate(), ErrNegativeValue)
}

func TestCelebratedSet(t *testing.T) {
	s := NewCelebratedSet("streak_3")
	grown := s.With("first_completion", "streak_3")

	assert.False(t, s.Has("first_completion"), "With must not mutate the receiver")
	assert.True(t, grown.Has("first_completion"))
	assert.Equal(t, []MilestoneKey{"first_completion", "streak_3"}, grown.Keys())
}
