// Package worktime computes the business-hours span between two instants.
// A working-hours profile describes the daily work window; the engine splits
// the interval across calendar days and subtracts two working days per
// complete week to exclude weekends. Lunch and holiday fields are reserved
// extension points and perform no subtraction in this version.
package worktime

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned when the end instant is before the start
// instant. Working-minute figures are defined only for start <= end, so the
// engine rejects inverted ranges instead of producing negative minutes.
var ErrInvalidRange = errors.New("end instant is before start instant")

// Profile describes the daily work window used to convert wall-clock spans
// into business time. LunchHour and LunchHours are reserved for a future
// lunch-break subtraction and currently have no effect on results.
type Profile struct {
	StartHour      int // Opening hour of the working day [0..23]
	EndHour        int // Closing hour of the working day [0..23]
	HoursPerDay    int // Working hours credited per full in-between day
	LunchHour      int // Reserved: hour the lunch break starts
	LunchHours     int // Reserved: lunch break length in hours
	RoundThreshold int // Minutes above which working hours round up
}

// DefaultProfile returns the profile used by the JIRA content pipeline:
// 08-18 window, 8 working hours per day, 5 minute rounding threshold.
func DefaultProfile() Profile {
	return Profile{
		StartHour:      8,
		EndHour:        18,
		HoursPerDay:    8,
		LunchHour:      12,
		LunchHours:     0,
		RoundThreshold: 5,
	}
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	if p.StartHour < 0 || p.StartHour > 23 {
		return fmt.Errorf("start hour must be within [0..23] (received %d)", p.StartHour)
	}
	if p.EndHour < 0 || p.EndHour > 23 {
		return fmt.Errorf("end hour must be within [0..23] (received %d)", p.EndHour)
	}
	if p.StartHour >= p.EndHour {
		return fmt.Errorf("start hour %d must be before end hour %d", p.StartHour, p.EndHour)
	}
	if p.HoursPerDay <= 0 {
		return fmt.Errorf("hours per day must be greater than 0 (received %d)", p.HoursPerDay)
	}
	if p.LunchHour < 0 || p.LunchHour > 23 {
		return fmt.Errorf("lunch hour must be within [0..23] (received %d)", p.LunchHour)
	}
	if p.LunchHours < 0 {
		return fmt.Errorf("lunch hours cannot be negative (received %d)", p.LunchHours)
	}
	if p.RoundThreshold < 0 {
		return fmt.Errorf("rounding threshold cannot be negative (received %d)", p.RoundThreshold)
	}
	return nil
}

// Result holds the elapsed time between two instants. TotalMinutes is the
// exact wall-clock span; WorkingMinutes is the business-hours span and is
// never greater than TotalMinutes.
type Result struct {
	TotalMinutes   int
	WorkingMinutes int
}

// WorkingHours returns whole working hours, truncated.
func (r Result) WorkingHours() int {
	return r.WorkingMinutes / 60
}

// WorkingHoursRoundUp rounds working minutes up to the next whole hour once
// they exceed the threshold; below the threshold it truncates. Rounding is
// applied only to the final value, never to per-day contributions.
func (r Result) WorkingHoursRoundUp(threshold int) int {
	if r.WorkingMinutes > threshold {
		hours := r.WorkingMinutes / 60
		if r.WorkingMinutes%60 != 0 {
			hours++
		}
		return hours
	}
	return r.WorkingHours()
}

// Compute splits [start, end] across calendar days and returns the exact
// total minutes together with the business-hours minutes per the profile.
// It fails with ErrInvalidRange when end is before start.
func Compute(start, end time.Time, p Profile) (Result, error) {
	if end.Before(start) {
		return Result{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}

	// Closing boundary of the start day, midnight opening the next calendar
	// day, and opening boundary of the end day, all in their own zones.
	closeFirstDay := atHour(start, p.EndHour)
	nextMidnight := atHour(start.AddDate(0, 0, 1), 0)
	openLastDay := atHour(end, p.StartHour)

	// Half-open containment over [start, end).
	contains := func(t time.Time) bool {
		return !t.Before(start) && t.Before(end)
	}

	// Working span inside the start day, clipped to the closing boundary.
	// No clipping is applied to start itself, even before opening hours.
	var firstDay time.Duration
	if start.Before(closeFirstDay) {
		firstDay = closeFirstDay.Sub(start)
	}

	var working time.Duration
	if !contains(nextMidnight) {
		// Same-day window. If the interval runs past closing, count only up
		// to the closing boundary; otherwise the whole span is working time.
		if contains(closeFirstDay) {
			working = firstDay
		} else {
			working = end.Sub(start)
		}
	} else {
		working = firstDay

		// Working span inside the end day, from its opening boundary.
		if openLastDay.Before(end) {
			working += end.Sub(openLastDay)
		}

		// Full days strictly in between contribute HoursPerDay each, minus
		// two working days for every complete 7-day week spanned. Weekends
		// are excluded by this subtraction, not by per-day inspection.
		days := int(openLastDay.Sub(nextMidnight) / (24 * time.Hour))
		weeks := days / 7
		working += time.Duration(days-weeks*2) * time.Duration(p.HoursPerDay) * time.Hour
	}

	return Result{
		TotalMinutes:   int(end.Sub(start) / time.Minute),
		WorkingMinutes: int(working / time.Minute),
	}, nil
}

// atHour returns t's calendar day at the given whole hour, in t's location.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
