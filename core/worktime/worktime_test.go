package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brt matches the zone of the JIRA export samples this engine was built for.
var brt = time.FixedZone("BRT", -3*60*60)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, brt)
}

// TestCompute covers the same-day and multi-day interval splits.
func TestCompute(t *testing.T) {
	profile := DefaultProfile()

	tests := []struct {
		name        string
		start       time.Time
		end         time.Time
		wantTotal   int
		wantWorking int
	}{
		{
			name:        "same day within working hours",
			start:       at(2015, time.October, 6, 8, 0),
			end:         at(2015, time.October, 6, 13, 0),
			wantTotal:   300,
			wantWorking: 300,
		},
		{
			name:        "same day ending exactly at closing",
			start:       at(2014, time.October, 16, 10, 0),
			end:         at(2014, time.October, 16, 18, 0),
			wantTotal:   480,
			wantWorking: 480,
		},
		{
			name:        "same day running past closing is clipped",
			start:       at(2015, time.October, 6, 10, 0),
			end:         at(2015, time.October, 6, 19, 30),
			wantTotal:   570,
			wantWorking: 480,
		},
		{
			name:        "same day early start is not clipped to opening hour",
			start:       at(2015, time.October, 6, 6, 0),
			end:         at(2015, time.October, 6, 9, 0),
			wantTotal:   180,
			wantWorking: 180,
		},
		{
			name:        "same day evening span counts in full",
			start:       at(2015, time.October, 6, 19, 0),
			end:         at(2015, time.October, 6, 20, 0),
			wantTotal:   60,
			wantWorking: 60,
		},
		{
			name:        "zero length interval",
			start:       at(2015, time.October, 6, 9, 0),
			end:         at(2015, time.October, 6, 9, 0),
			wantTotal:   0,
			wantWorking: 0,
		},
		{
			name:        "overnight ending before opening",
			start:       at(2015, time.October, 5, 17, 0),
			end:         at(2015, time.October, 6, 7, 0),
			wantTotal:   840,
			wantWorking: 60,
		},
		{
			name:        "overnight starting after closing",
			start:       at(2015, time.October, 5, 19, 0),
			end:         at(2015, time.October, 6, 10, 0),
			wantTotal:   900,
			wantWorking: 120,
		},
		{
			name:  "multi day with one full day in between",
			start: at(2015, time.October, 6, 17, 0),
			end:   at(2015, time.October, 8, 9, 0),
			// 60 on the first day + 60 on the last + 8h for the Wednesday.
			wantTotal:   2400,
			wantWorking: 600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.start, tt.end, profile)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.TotalMinutes, "total minutes")
			assert.Equal(t, tt.wantWorking, got.WorkingMinutes, "working minutes")
			assert.LessOrEqual(t, got.WorkingMinutes, got.TotalMinutes)
		})
	}
}

// TestComputeWeekSubtraction verifies that extending a span by exactly one
// 7-day week adds five working days, never seven.
func TestComputeWeekSubtraction(t *testing.T) {
	profile := DefaultProfile()
	start := at(2015, time.October, 6, 17, 0)
	end := at(2015, time.October, 8, 9, 0)

	base, err := Compute(start, end, profile)
	require.NoError(t, err)

	extended, err := Compute(start, end.AddDate(0, 0, 7), profile)
	require.NoError(t, err)

	assert.Equal(t, 5*profile.HoursPerDay*60, extended.WorkingMinutes-base.WorkingMinutes)
}

// TestComputeInvalidRange verifies inverted ranges are rejected outright.
func TestComputeInvalidRange(t *testing.T) {
	profile := DefaultProfile()
	start := at(2015, time.October, 6, 13, 0)
	end := at(2015, time.October, 6, 8, 0)

	got, err := Compute(start, end, profile)
	require.ErrorIs(t, err, ErrInvalidRange)
	assert.GreaterOrEqual(t, got.WorkingMinutes, 0, "never negative minutes")
}

// TestWorkingHoursRoundUp covers the threshold rounding rules.
func TestWorkingHoursRoundUp(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		threshold int
		want      int
	}{
		{"above threshold rounds up", 305, 5, 6},
		{"below threshold truncates", 4, 5, 0},
		{"exact hours do not bump", 480, 5, 8},
		{"single hour", 60, 5, 1},
		{"just over an hour", 61, 5, 2},
		{"zero minutes", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{WorkingMinutes: tt.minutes}
			assert.Equal(t, tt.want, r.WorkingHoursRoundUp(tt.threshold))
		})
	}

	assert.Equal(t, 8, Result{WorkingMinutes: 480}.WorkingHours())
	assert.Equal(t, 5, Result{WorkingMinutes: 305}.WorkingHours())
}

// TestProfileValidate covers profile invariants.
func TestProfileValidate(t *testing.T) {
	require.NoError(t, DefaultProfile().Validate())

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"start hour out of range", func(p *Profile) { p.StartHour = 24 }},
		{"end hour out of range", func(p *Profile) { p.EndHour = -1 }},
		{"start not before end", func(p *Profile) { p.StartHour = 18; p.EndHour = 8 }},
		{"zero hours per day", func(p *Profile) { p.HoursPerDay = 0 }},
		{"lunch hour out of range", func(p *Profile) { p.LunchHour = 30 }},
		{"negative lunch hours", func(p *Profile) { p.LunchHours = -1 }},
		{"negative threshold", func(p *Profile) { p.RoundThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
