package utils

import (
	"testing"
	"time"
)

func TestMondayOfWeek(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday",
			in:   time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday counts itself",
			in:   time.Date(2026, 3, 9, 0, 0, 1, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday rolls back six days",
			in:   time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		if got := MondayOfWeek(tc.in); !got.Equal(tc.want) {
			t.Errorf("%s: MondayOfWeek(%v) = %v, want %v", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestMondayOfWeekKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2026, 3, 11, 1, 0, 0, 0, loc)
	got := MondayOfWeek(in)
	if got.Location() != loc {
		t.Fatalf("expected location preserved, got %v", got.Location())
	}
}

func TestDaysAgo(t *testing.T) {
	in := time.Date(2026, 3, 11, 15, 30, 45, 0, time.UTC)
	want := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	if got := DaysAgo(in, 28); !got.Equal(want) {
		t.Fatalf("DaysAgo = %v, want %v", got, want)
	}
}

func TestCalculatePace(t *testing.T) {
	cases := []struct {
		distance float64
		seconds  int
		metric   bool
		want     string
	}{
		{10000, 3000, true, "05:00"},
		{5000, 1500, true, "05:00"},
		{0, 3000, true, "N/A"},
		{-1, 3000, true, "N/A"},
		{10000, -5, true, "N/A"},
		{10000, 0, true, "0:00"},
		{1609.34, 480, false, "08:00"},
	}

	for _, tc := range cases {
		if got := CalculatePace(tc.distance, tc.seconds, tc.metric); got != tc.want {
			t.Errorf("CalculatePace(%v, %d, %v) = %q, want %q", tc.distance, tc.seconds, tc.metric, got, tc.want)
		}
	}
}

func TestSpeedToPace(t *testing.T) {
	if got := SpeedToPace(0, true); got != "N/A" {
		t.Fatalf("expected N/A for zero speed, got %q", got)
	}
	// 10 km/h is 6:00 per km.
	if got := SpeedToPace(10000.0/3600.0, true); got != "06:00" {
		t.Fatalf("expected 06:00, got %q", got)
	}
}

func TestSecondsToDHMS(t *testing.T) {
	d, h, m, s := SecondsToDHMS(90061)
	if d != 1 || h != 1 || m != 1 || s != 1 {
		t.Fatalf("SecondsToDHMS(90061) = %d %d %d %d", d, h, m, s)
	}
	d, h, m, s = SecondsToDHMS(-1)
	if d != 0 || h != 0 || m != 0 || s != 0 {
		t.Fatal("expected zeros for negative input")
	}
}
