package availability_service

import (
	"testing"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
)

func newTestValidator(rules domain.Rules) *BookingValidator {
	return NewBookingValidator(rules, NewTimezoneConverter(TimezoneConverterProbe, rules.DefaultTimezone, nil))
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "00:00", want: true},
		{value: "09:00", want: true},
		{value: "23:59", want: true},
		{value: "9:00", want: false},
		{value: "24:00", want: false},
		{value: "09:60", want: false},
		{value: "09:00:00", want: false},
		{value: "0900", want: false},
		{value: "", want: false},
	}
	for _, tt := range tests {
		if got := ValidateTimeFormat(tt.value); got != tt.want {
			t.Fatalf("ValidateTimeFormat(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidateTimeRange(t *testing.T) {
	tests := []struct {
		start string
		end   string
		want  bool
	}{
		{start: "09:00", end: "17:00", want: true},
		{start: "17:00", end: "09:00", want: false},
		{start: "09:00", end: "09:00", want: false},
		{start: "9:00", end: "17:00", want: false},
		{start: "09:00", end: "25:00", want: false},
	}
	for _, tt := range tests {
		if got := ValidateTimeRange(tt.start, tt.end); got != tt.want {
			t.Fatalf("ValidateTimeRange(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestValidateBooking(t *testing.T) {
	validator := newTestValidator(domain.DefaultRules())
	// 10:00 в Нью-Йорке (EDT)
	now := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		request domain.BookingRequest
		code    domain.ValidationCode
		message string
	}{
		{
			name:    "valid future date",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-20", Time: "14:00"},
		},
		{
			name:    "exactly min advance",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-18", Time: "11:00"},
		},
		{
			name:    "too soon",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-18", Time: "10:30"},
			code:    domain.ValidationCodeAdvanceNoticeViolation,
			message: "Booking must be at least 1 hour in advance",
		},
		{
			name:    "in the past",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-17", Time: "14:00"},
			code:    domain.ValidationCodeAdvanceNoticeViolation,
			message: "Booking must be at least 1 hour in advance",
		},
		{
			name:    "missing client",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: " ", Date: "2026-10-20", Time: "14:00"},
			code:    domain.ValidationCodeMissingIdentifier,
			message: domain.MessageMissingIdentifier,
		},
		{
			name:    "missing identifier wins over bad date",
			request: domain.BookingRequest{ClientID: "clientY", Date: "nope", Time: "9:00"},
			code:    domain.ValidationCodeMissingIdentifier,
			message: domain.MessageMissingIdentifier,
		},
		{
			name:    "impossible date",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-02-30", Time: "14:00"},
			code:    domain.ValidationCodeInvalidDate,
			message: domain.MessageInvalidDate,
		},
		{
			name:    "missing leading zero",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-20", Time: "9:00"},
			code:    domain.ValidationCodeInvalidTimeFormat,
			message: domain.MessageInvalidTimeFormat,
		},
		{
			name:    "unsupported duration",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-20", Time: "14:00", DurationMinutes: 90},
			code:    domain.ValidationCodeUnsupportedDuration,
			message: "Appointments must be exactly 60 minutes",
		},
		{
			name:    "fixed duration",
			request: domain.BookingRequest{ArtistID: "artistX", ClientID: "clientY", Date: "2026-10-20", Time: "14:00", DurationMinutes: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateBooking(tt.request, "America/New_York", now)
			if tt.code == "" {
				if !result.Valid {
					t.Fatalf("expected valid, got %+v", result)
				}
				return
			}
			if result.Valid || result.Code != tt.code || result.Error != tt.message {
				t.Fatalf("got %+v, want code %s message %q", result, tt.code, tt.message)
			}
		})
	}
}

func TestValidateBookingPluralAdvanceNotice(t *testing.T) {
	rules := domain.DefaultRules()
	rules.MinAdvance = 2 * time.Hour
	validator := newTestValidator(rules)

	now := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)
	result := validator.ValidateBooking(domain.BookingRequest{
		ArtistID: "artistX",
		ClientID: "clientY",
		Date:     "2026-10-18",
		Time:     "11:00",
	}, "America/New_York", now)

	if result.Error != "Booking must be at least 2 hours in advance" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestValidateBookingSubHourAdvanceNotice(t *testing.T) {
	rules := domain.DefaultRules()
	rules.MinAdvance = 30 * time.Minute
	validator := newTestValidator(rules)

	now := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)
	result := validator.ValidateBooking(domain.BookingRequest{
		ArtistID: "artistX",
		ClientID: "clientY",
		Date:     "2026-10-18",
		Time:     "10:15",
	}, "America/New_York", now)

	if result.Valid || result.Error != "Booking must be at least 30 minutes in advance" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestValidateTimeSlotAndRange(t *testing.T) {
	validator := newTestValidator(domain.DefaultRules())

	if !validator.ValidateTimeSlot("10:00", 60) {
		t.Fatalf("60 minutes must be accepted")
	}
	for _, duration := range []int{0, 30, 90, 120} {
		if validator.ValidateTimeSlot("10:00", duration) {
			t.Fatalf("%d minutes must be rejected", duration)
		}
	}

	if result := validator.ValidateRange("17:00", "09:00"); result.Valid || result.Code != domain.ValidationCodeInvalidTimeRange {
		t.Fatalf("unexpected range result %+v", result)
	}
	if result := validator.ValidateRange("09:00", "17:00"); !result.Valid {
		t.Fatalf("unexpected range result %+v", result)
	}
}
