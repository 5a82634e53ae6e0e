package utils

import (
	"fmt"
	"time"
)

// Clock is injected into every component that depends on "now" so tests can
// pin the current instant.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewClock() Clock { return realClock{} }

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (f FixedClock) Now() time.Time { return f.Instant }

// MondayOfWeek returns the most recent Monday 00:00:00 in t's location,
// counting t itself when t falls on a Monday.
func MondayOfWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}

// DaysAgo returns midnight of the day `days` before t, in t's location.
func DaysAgo(t time.Time, days int) time.Time {
	d := t.AddDate(0, 0, -days)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

const metersPerMile = 1609.34

// CalculatePace renders seconds-per-km (or per-mile) as "MM:SS".
func CalculatePace(distanceMeters float64, timeSeconds int, useMetric bool) string {
	if distanceMeters <= 0 || timeSeconds < 0 {
		return "N/A"
	}
	if timeSeconds == 0 {
		return "0:00"
	}
	unit := 1000.0
	if !useMetric {
		unit = metersPerMile
	}
	secondsPerUnit := float64(timeSeconds) / distanceMeters * unit
	return SecondsToPace(secondsPerUnit)
}

func SecondsToPace(seconds float64) string {
	m := int(seconds) / 60
	s := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// SpeedToPace converts meters/second into a "MM:SS" pace string.
func SpeedToPace(speed float64, useMetric bool) string {
	if speed <= 0 {
		return "N/A"
	}
	unit := 1000.0
	if !useMetric {
		unit = metersPerMile
	}
	return SecondsToPace(unit / speed)
}

// SecondsToDHMS splits a duration in seconds into days/hours/minutes/seconds.
func SecondsToDHMS(total int) (days, hours, minutes, seconds int) {
	if total < 0 {
		return 0, 0, 0, 0
	}
	days = total / (24 * 3600)
	rem := total % (24 * 3600)
	hours = rem / 3600
	rem = rem % 3600
	minutes = rem / 60
	seconds = rem % 60
	return days, hours, minutes, seconds
}
