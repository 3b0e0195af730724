package compiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustISO(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(isoDate, s)
	require.NoError(t, err)
	return d
}

func TestParseDateTomorrow(t *testing.T) {
	now := mustISO(t, "2026-08-30")
	assert.Equal(t, "2026-08-31", parseDateAt("tomorrow", now))
}

func TestParseDateNextWeekday(t *testing.T) {
	// a Sunday
	now := mustISO(t, "2026-08-30")

	got := parseDateAt("next monday", now)
	d := mustISO(t, got)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.True(t, d.After(now), "next monday must be strictly in the future")
	assert.Equal(t, "2026-08-31", got)

	// abbreviations down to three letters resolve too
	assert.Equal(t, "2026-09-04", parseDateAt("next fri", now))
}

func TestParseDateNextWeekdayOnThatWeekday(t *testing.T) {
	// asking for "next monday" on a Monday advances a full week
	monday := mustISO(t, "2026-08-31")
	require.Equal(t, time.Monday, monday.Weekday())

	got := parseDateAt("next monday", monday)
	assert.Equal(t, "2026-09-07", got, "never resolves to today")
}

func TestParseDateExplicitFormats(t *testing.T) {
	now := mustISO(t, "2026-08-30")
	cases := map[string]string{
		"2026-12-25":        "2026-12-25",
		"2026/12/25":        "2026-12-25",
		"12/25/2026":        "2026-12-25",
		"december 25, 2026": "2026-12-25",
		"dec 25, 2026":      "2026-12-25",
		"25 december 2026":  "2026-12-25",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseDateAt(in, now), "input %q", in)
	}
}

func TestParseDateFallsBackToWeekAhead(t *testing.T) {
	now := mustISO(t, "2026-08-30")

	// unparsable text degrades to a week out; it never fails a booking
	for _, in := range []string{"whenever", "ASAP", "the 32nd of junetober", ""} {
		assert.Equal(t, "2026-09-06", parseDateAt(in, now), "input %q", in)
	}

	// unknown weekday after "next" gets the same fallback
	assert.Equal(t, "2026-09-06", parseDateAt("next fortnight", now))
}

func TestParseDateWallClockNeverFails(t *testing.T) {
	got := ParseDate("next monday")
	d := mustISO(t, got)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.True(t, d.After(time.Now()))
}
