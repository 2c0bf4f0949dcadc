package utils

import (
	"testing"
	"time"
)

func TestGetDateRangeCrossesMonthAndYear(t *testing.T) {
	start := time.Date(2026, 12, 30, 15, 45, 0, 0, time.UTC)
	dates := GetDateRange(start, 4)
	want := []string{"2026-12-30", "2026-12-31", "2027-01-01", "2027-01-02"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i, d := range dates {
		if d.Format("2006-01-02") != want[i] {
			t.Fatalf("date %d = %s, want %s", i, d.Format("2006-01-02"), want[i])
		}
		if d.Hour() != 0 || d.Minute() != 0 {
			t.Fatalf("date %d not at start of day: %s", i, d)
		}
	}

	if got := GetDateRange(start, 0); len(got) != 0 {
		t.Fatalf("expected empty range, got %d", len(got))
	}
}

func TestGetDateRangeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	dates := GetDateRange(time.Date(2026, 3, 7, 12, 0, 0, 0, loc), 3)
	for _, d := range dates {
		if d.Hour() != 0 {
			t.Fatalf("expected midnight, got %s", d)
		}
	}
	if dates[2].Day() != 9 {
		t.Fatalf("unexpected last date %s", dates[2])
	}
}

func TestCalendarHelpers(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC)
	if GetDayOfWeek(sunday) != 0 {
		t.Fatalf("expected sunday = 0, got %d", GetDayOfWeek(sunday))
	}

	next := AddHours(sunday, 2)
	if next.Day() != 19 || next.Hour() != 1 {
		t.Fatalf("AddHours rollover failed: %s", next)
	}
	if IsSameDay(sunday, next) {
		t.Fatalf("expected different days")
	}
	if !IsSameDay(sunday, StartOfDay(sunday)) {
		t.Fatalf("expected same day")
	}
	if got := StartNextDay(sunday); got.Day() != 19 || got.Hour() != 0 {
		t.Fatalf("StartNextDay = %s", got)
	}
}
