package availability_service

import (
	"reflect"
	"testing"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

var engineNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(domain.DefaultRules(), nil, nil)
}

func slotsInput(date string) SlotsInput {
	return SlotsInput{
		Date:           date,
		ArtistTimezone: "America/Los_Angeles",
		Windows:        weekdayWindows(),
		Now:            engineNow,
	}
}

func TestAvailableSlotsRegularDay(t *testing.T) {
	slots, err := newTestEngine().AvailableSlots(slotsInput("2026-11-04"))
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0].Time != "09:00" || slots[15].Time != "16:30" {
		t.Fatalf("unexpected bounds %s..%s", slots[0].Time, slots[15].Time)
	}
	for _, slot := range slots {
		if !slot.Available {
			t.Fatalf("expected %s to be available", slot.Time)
		}
	}
}

func TestAvailableSlotsClosedWeekend(t *testing.T) {
	slots, err := newTestEngine().AvailableSlots(slotsInput("2026-11-01"))
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected empty non-nil slots, got %v", slots)
	}
}

func TestAvailableSlotsUnavailableException(t *testing.T) {
	input := slotsInput("2026-11-04")
	input.Exceptions = []domain.AvailabilityException{
		exceptionOn(t, "2026-11-04", domain.ExceptionTypeUnavailable, nil, nil),
	}

	slots, err := newTestEngine().AvailableSlots(input)
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected zero slots, got %d", len(slots))
	}
}

// Шаг сетки 30 минут: окно 10:00-14:00 дает восемь меток, первая 10:00, последняя 13:30
func TestAvailableSlotsCustomHoursNarrowing(t *testing.T) {
	input := slotsInput("2026-11-04")
	input.Exceptions = []domain.AvailabilityException{
		exceptionOn(t, "2026-11-04", domain.ExceptionTypeCustomHours, strPtr("10:00"), strPtr("14:00")),
	}

	slots, err := newTestEngine().AvailableSlots(input)
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}

	got := slotTimes(slots)
	want := []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}
	if !equalStrings(got, want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
}

func TestAvailableSlotsConflictBlocking(t *testing.T) {
	input := slotsInput("2026-11-04")
	// 10:00 PST
	input.Appointments = []domain.AppointmentBlock{
		appointmentAt(t, "2026-11-04T18:00:00Z", domain.AppointmentStatusConfirmed),
	}

	slots, err := newTestEngine().AvailableSlots(input)
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}

	got := availability(slots)
	if got["10:00"] {
		t.Fatalf("expected 10:00 to be blocked")
	}
	for _, slot := range slots {
		if utils.MinutesOfDay(slot.Time) >= 11*60 && !slot.Available {
			t.Fatalf("expected %s to be available", slot.Time)
		}
	}
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	engine := newTestEngine()
	input := slotsInput("2026-11-04")
	input.Appointments = []domain.AppointmentBlock{
		appointmentAt(t, "2026-11-04T18:00:00Z", domain.AppointmentStatusConfirmed),
	}

	first, err := engine.AvailableSlots(input)
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}
	second, err := engine.AvailableSlots(input)
	if err != nil {
		t.Fatalf("AvailableSlots error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("outputs differ:\n%v\n%v", first, second)
	}
}

func TestAvailableSlotsInvalidDate(t *testing.T) {
	if _, err := newTestEngine().AvailableSlots(slotsInput("2026-13-01")); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}

func TestAvailableDates(t *testing.T) {
	engine := newTestEngine()
	exceptions := []domain.AvailabilityException{
		// среда закрыта
		exceptionOn(t, "2026-11-04", domain.ExceptionTypeUnavailable, nil, nil),
		// воскресенье открыто индивидуальными часами
		exceptionOn(t, "2026-11-08", domain.ExceptionTypeCustomHours, strPtr("12:00"), strPtr("13:00")),
	}

	dates, err := engine.AvailableDates(DatesInput{
		Start:          mustDate(t, "2026-11-02"),
		Days:           7,
		ArtistTimezone: "America/Los_Angeles",
		Windows:        weekdayWindows(),
		Exceptions:     exceptions,
		Now:            engineNow,
	})
	if err != nil {
		t.Fatalf("AvailableDates error: %v", err)
	}

	got := make([]string, 0, len(dates))
	for _, date := range dates {
		got = append(got, date.Format(dateLayout))
	}
	want := []string{"2026-11-02", "2026-11-03", "2026-11-05", "2026-11-06", "2026-11-08"}
	if !equalStrings(got, want) {
		t.Fatalf("dates = %v, want %v", got, want)
	}
}

func TestAvailableDatesSkipsFullyBookedDay(t *testing.T) {
	engine := newTestEngine()
	// Окно одного часа: 12:00 и 12:30, запись в 12:00 блокирует обе метки
	windows := []domain.WeeklyScheduleWindow{
		{ArtistID: "artist-1", DayOfWeek: 1, StartTime: "12:00", EndTime: "13:00", IsActive: true},
	}

	dates, err := engine.AvailableDates(DatesInput{
		Start:          mustDate(t, "2026-11-02"),
		Days:           1,
		ArtistTimezone: "UTC",
		Windows:        windows,
		Appointments: []domain.AppointmentBlock{
			appointmentAt(t, "2026-11-02T12:00:00Z", domain.AppointmentStatusConfirmed),
		},
		Now: engineNow,
	})
	if err != nil {
		t.Fatalf("AvailableDates error: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("expected no dates, got %v", dates)
	}
}
