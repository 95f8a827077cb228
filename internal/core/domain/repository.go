package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
	ErrEntryNotFound = errors.New("daily entry not found")
	ErrEntryConflict = errors.New("daily entry version conflict")
	ErrUnauthorized  = errors.New("unauthorized")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits associated with a specific user,
	// archived ones included.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies the state of an existing habit.
	// Implementations must reject stale versions with ErrHabitConflict.
	Update(ctx context.Context, habit *Habit) error

	// Delete soft-deletes a habit.
	Delete(ctx context.Context, id string) error

	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}

type DailyEntryRepository interface {
	// Create persists a new entry. A live entry for the same (habit, date)
	// yields ErrEntryConflict.
	Create(ctx context.Context, entry *DailyEntry) error

	// Update modifies an existing entry.
	// Implementations must handle Optimistic Locking (version check) to prevent data races.
	Update(ctx context.Context, entry *DailyEntry) error

	// Delete performs a Soft Delete on the entry.
	// It requires userID to ensure the user actually owns the entry being deleted.
	Delete(ctx context.Context, id string, userID string) error

	// GetByID retrieves a single active (non-deleted) entry by its ID.
	GetByID(ctx context.Context, id string) (*DailyEntry, error)

	// GetByHabitAndDate retrieves the live entry of a habit for one day.
	GetByHabitAndDate(ctx context.Context, habitID string, date Date) (*DailyEntry, error)

	// ListByHabitID retrieves entries for a habit within [from, to], both inclusive.
	ListByHabitID(ctx context.Context, habitID string, from, to Date) ([]*DailyEntry, error)

	// ListByUserIDAndDateRange retrieves every entry of a user within [from, to].
	ListByUserIDAndDateRange(ctx context.Context, userID string, from, to Date) ([]*DailyEntry, error)
}

type MilestoneRepository interface {
	// GetCelebrated returns the milestone keys a habit already celebrated.
	GetCelebrated(ctx context.Context, habitID string) (CelebratedSet, error)

	// Celebrate records keys for a habit. Recording a key twice is a no-op.
	Celebrate(ctx context.Context, habitID string, keys ...MilestoneKey) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
