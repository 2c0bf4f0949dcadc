package utils

import "testing"

func TestParseFormatRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			gotHour, gotMinute := ParseTime(FormatTime24(hour, minute))
			if gotHour != hour || gotMinute != minute {
				t.Fatalf("round trip %02d:%02d -> %d:%d", hour, minute, gotHour, gotMinute)
			}
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := map[string]string{
		"00:00": "12:00am",
		"00:30": "12:30am",
		"09:05": "9:05am",
		"11:59": "11:59am",
		"12:00": "12:00pm",
		"12:30": "12:30pm",
		"13:00": "1:00pm",
		"23:30": "11:30pm",
	}
	for in, want := range tests {
		if got := FormatTime(in); got != want {
			t.Fatalf("FormatTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMinutesOfDay(t *testing.T) {
	if got := MinutesOfDay("17:30"); got != 1050 {
		t.Fatalf("MinutesOfDay = %d", got)
	}
	if got := FormatMinutes(1050); got != "17:30" {
		t.Fatalf("FormatMinutes = %q", got)
	}
}
