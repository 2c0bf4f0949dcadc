package availability_service

import (
	"testing"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/domain"
	"github.com/suchimauz/artist-availability-engine/internal/core/json_types"
	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
)

func strPtr(value string) *string {
	return &value
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return date
}

func exceptionOn(t *testing.T, date string, exceptionType domain.ExceptionType, start, end *string) domain.AvailabilityException {
	t.Helper()
	parsed := mustDate(t, date)
	return domain.AvailabilityException{
		ArtistID:  "artist-1",
		Date:      json_types.Date{Date: parsed},
		Type:      exceptionType,
		StartTime: start,
		EndTime:   end,
	}
}

// Рабочая неделя артиста: пн-пт 09:00-17:00
func weekdayWindows() []domain.WeeklyScheduleWindow {
	windows := make([]domain.WeeklyScheduleWindow, 0, 5)
	for day := 1; day <= 5; day++ {
		windows = append(windows, domain.WeeklyScheduleWindow{
			ArtistID:  "artist-1",
			DayOfWeek: day,
			StartTime: "09:00",
			EndTime:   "17:00",
			IsActive:  true,
		})
	}
	return windows
}

func slotTimes(slots []domain.Slot) []string {
	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.Time)
	}
	return times
}

func availability(slots []domain.Slot) map[string]bool {
	result := make(map[string]bool, len(slots))
	for _, slot := range slots {
		result[slot.Time] = slot.Available
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Тестовый логгер, который запоминает события
type recordingLogger struct {
	events *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{events: &[]string{}}
}

func (l recordingLogger) record(event string)                    { *l.events = append(*l.events, event) }
func (l recordingLogger) Debug(event string, _ out.LogFields)     { l.record(event) }
func (l recordingLogger) Info(event string, _ out.LogFields)      { l.record(event) }
func (l recordingLogger) Warn(event string, _ out.LogFields)      { l.record(event) }
func (l recordingLogger) Error(event string, _ out.LogFields)     { l.record(event) }
func (l recordingLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l recordingLogger) WithModule(string) out.LoggerPort        { return l }

func (l recordingLogger) has(event string) bool {
	for _, e := range *l.events {
		if e == event {
			return true
		}
	}
	return false
}
