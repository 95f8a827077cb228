package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/progression"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
)

func checkIn(habitID, date string, value float64) map[string]any {
	return map[string]any{"habit_id": habitID, "date": date, "value": value}
}

func TestCheckIn(t *testing.T) {
	t.Run("Success: replace mode reports status and first milestone", func(t *testing.T) {
		env := setupRouter()
		h := env.seedHabit(t, "user-1", maintainParams("Read", 10))

		w := env.do(http.MethodPost, "/api/v1/entries/check-in", "user-1", checkIn(h.ID, "2025-01-02", 10))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		res := decode[services.CheckInResult](t, w)
		assert.Equal(t, progression.StatusCompleted, res.Status)
		assert.Equal(t, 100.0, res.Completion)
		assert.Equal(t, progression.MilestoneFirstCompletion, res.Milestone)
		assert.Equal(t, 10.0, res.Entry.TargetDose)
		assert.Equal(t, []string{h.ID}, env.scheduler.jobs)

		again := decode[services.CheckInResult](t, env.do(http.MethodPost, "/api/v1/entries/check-in", "user-1", checkIn(h.ID, "2025-01-02", 12)))
		assert.Equal(t, progression.StatusExceeded, again.Status)
		assert.Empty(t, again.Milestone, "a milestone is reported once")
		assert.Equal(t, 12.0, again.Entry.ActualValue)
	})

	t.Run("Success: cumulative deltas and undo", func(t *testing.T) {
		env := setupRouter()
		p := maintainParams("Water", 8)
		p.EntryMode = domain.EntryModeCumulative
		h := env.seedHabit(t, "user-1", p)

		for _, v := range []float64{3, 2} {
			require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/entries/check-in", "user-1", checkIn(h.ID, "2025-01-05", v)).Code)
		}

		entry, err := env.entries.GetByHabitAndDate(context.Background(), h.ID, domain.MustParseDate("2025-01-05"))
		require.NoError(t, err)
		assert.Equal(t, 5.0, entry.ActualValue)

		w := env.do(http.MethodPost, "/api/v1/entries/undo", "user-1", map[string]any{"habit_id": h.ID, "date": "2025-01-05"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3.0, decode[services.CheckInResult](t, w).Entry.ActualValue)

		w = env.do(http.MethodPost, "/api/v1/entries/check-in", "user-1", checkIn(h.ID, "2025-01-05", -10))
		assert.Equal(t, http.StatusBadRequest, w.Code, "the day total cannot go negative")

		w = env.do(http.MethodPost, "/api/v1/entries/undo", "user-1", map[string]any{"habit_id": h.ID, "date": "2025-01-05"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, progression.StatusPending, decode[services.CheckInResult](t, w).Status)

		_, err = env.entries.GetByHabitAndDate(context.Background(), h.ID, domain.MustParseDate("2025-01-05"))
		assert.ErrorIs(t, err, domain.ErrEntryNotFound, "the emptied day has no entry")
	})

	t.Run("Fail: undo on replace habit", func(t *testing.T) {
		env := setupRouter()
		h := env.seedHabit(t, "user-1", maintainParams("Read", 10))

		w := env.do(http.MethodPost, "/api/v1/entries/undo", "user-1", map[string]any{"habit_id": h.ID, "date": "2025-01-05"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	tests := []struct {
		name string
		body func(habitID string) any
		user string
		code int
	}{
		{"Missing value", func(id string) any { return map[string]any{"habit_id": id, "date": "2025-01-02"} }, "user-1", http.StatusBadRequest},
		{"Negative value", func(id string) any { return checkIn(id, "2025-01-02", -1) }, "user-1", http.StatusBadRequest},
		{"Before the habit started", func(id string) any { return checkIn(id, "2024-12-31", 1) }, "user-1", http.StatusBadRequest},
		{"Future date", func(id string) any { return checkIn(id, "2999-01-01", 1) }, "user-1", http.StatusBadRequest},
		{"Foreign habit", func(id string) any { return checkIn(id, "2025-01-02", 1) }, "user-2", http.StatusForbidden},
		{"Unknown habit", func(string) any { return checkIn("missing", "2025-01-02", 1) }, "user-1", http.StatusNotFound},
		{"No user", func(id string) any { return checkIn(id, "2025-01-02", 1) }, "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run("Fail: "+tt.name, func(t *testing.T) {
			env := setupRouter()
			h := env.seedHabit(t, "user-1", maintainParams("Read", 10))

			w := env.do(http.MethodPost, "/api/v1/entries/check-in", tt.user, tt.body(h.ID))
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestListAndDeleteEntries(t *testing.T) {
	env := setupRouter()
	h := env.seedHabit(t, "user-1", maintainParams("Read", 10))

	for _, d := range []string{"2025-01-02", "2025-01-03", "2025-02-01"} {
		require.Equal(t, http.StatusOK, env.do(http.MethodPost, "/api/v1/entries/check-in", "user-1", checkIn(h.ID, d, 10)).Code)
	}

	t.Run("Range filter", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/v1/entries?habit_id="+h.ID+"&from=2025-01-01&to=2025-01-31", "user-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		list := decode[[]domain.DailyEntry](t, w)
		require.Len(t, list, 2)
		assert.Equal(t, "2025-01-03", list[0].Date.String())
	})

	t.Run("Fail: habit_id required", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, env.do(http.MethodGet, "/api/v1/entries", "user-1", nil).Code)
	})

	t.Run("Fail: foreign habit", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, env.do(http.MethodGet, "/api/v1/entries?habit_id="+h.ID, "user-2", nil).Code)
	})

	t.Run("Delete", func(t *testing.T) {
		entry, err := env.entries.GetByHabitAndDate(context.Background(), h.ID, domain.MustParseDate("2025-01-02"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusForbidden, env.do(http.MethodDelete, "/api/v1/entries/"+entry.ID, "user-2", nil).Code)
		assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/api/v1/entries/"+entry.ID, "user-1", nil).Code)
		assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/v1/entries/"+entry.ID, "user-1", nil).Code)
	})
}
