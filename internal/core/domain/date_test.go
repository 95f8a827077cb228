package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2025-01-08")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-08", d.String())

	for _, bad := range []string{"", "2025-1-8", "08/01/2025", "2025-02-30", "2025-01-08T10:00:00Z"} {
		_, err := domain.ParseDate(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidDate, bad)
	}
}

func TestDateOf_UsesLocalCalendar(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	late := time.Date(2025, 3, 1, 1, 30, 0, 0, tokyo)

	assert.Equal(t, "2025-03-01", domain.DateOf(late).String(), "no UTC conversion")
}

func TestCalendarArithmetic(t *testing.T) {
	tests := []struct {
		from, to  string
		wantDays  int
		wantWeeks int
	}{
		{"2025-01-01", "2025-01-01", 0, 0},
		{"2025-01-01", "2025-01-07", 6, 0},
		{"2025-01-01", "2025-01-08", 7, 1},
		{"2025-01-01", "2025-03-12", 70, 10},
		{"2024-02-28", "2024-03-01", 2, 0},
		{"2025-03-29", "2025-03-31", 2, 0},
		{"2025-01-08", "2025-01-01", -7, -1},
		{"2025-01-08", "2025-01-06", -2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			from, to := domain.MustParseDate(tt.from), domain.MustParseDate(tt.to)
			assert.Equal(t, tt.wantDays, domain.DaysBetween(from, to))
			assert.Equal(t, tt.wantWeeks, domain.WeeksBetween(from, to))
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	a := domain.MustParseDate("2025-01-01")
	b := a.AddDays(1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(b.AddDays(-1)))
	assert.Equal(t, "2025-01-02", b.String())
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Day  domain.Date  `json:"day"`
		Opt  *domain.Date `json:"opt,omitempty"`
		Zero domain.Date  `json:"zero"`
	}

	day := domain.MustParseDate("2025-06-15")
	out, err := json.Marshal(payload{Day: day})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2025-06-15","zero":null}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2025-06-15","opt":"2025-07-01","zero":null}`), &in))
	assert.Equal(t, day, in.Day)
	require.NotNil(t, in.Opt)
	assert.Equal(t, "2025-07-01", in.Opt.String())
	assert.True(t, in.Zero.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"day":"15/06/2025"}`), &in))
}

func TestDate_SQL(t *testing.T) {
	var d domain.Date
	require.NoError(t, d.Scan(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-06-15", d.String())

	require.NoError(t, d.Scan([]byte("2025-06-16")))
	assert.Equal(t, "2025-06-16", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := domain.MustParseDate("2025-06-15").Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), v)
}
