package availability_service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/core/ports/out"
	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

const (
	TimezoneConverterProbe    = "probe"
	TimezoneConverterLocation = "location"
)

// TimezoneConverter переводит локальное время артиста в абсолютный момент и обратно
type TimezoneConverter interface {
	// ToUTCInstant момент начала слота "HH:MM" на дату "YYYY-MM-DD" в таймзоне timezone
	ToUTCInstant(date, slotTime, timezone string) (time.Time, error)
	// ToWallClock дата и время "HH:MM" момента instant в таймзоне timezone
	ToWallClock(instant time.Time, timezone string) (date string, clock string)
	// TodayInTimezone сегодняшняя дата "YYYY-MM-DD" с точки зрения таймзоны
	TodayInTimezone(timezone string, now time.Time) string
}

func NewTimezoneConverter(kind string, fallbackTimezone string, logger out.LoggerPort) TimezoneConverter {
	zones := zoneLoader{fallback: fallbackTimezone, logger: out.OrNop(logger)}
	if kind == TimezoneConverterLocation {
		return &LocationConverter{zones: zones}
	}
	return &OffsetProbeConverter{zones: zones}
}

type zoneLoader struct {
	fallback string
	logger   out.LoggerPort
}

// load неизвестная таймзона заменяется на таймзону по умолчанию, затем на UTC
func (z zoneLoader) load(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		z.logger.Warn("timezone.unknown", out.LogFields{
			"timezone": name,
			"fallback": z.fallback,
		})
	}

	if z.fallback != "" {
		if loc, err := time.LoadLocation(z.fallback); err == nil {
			return loc
		}
	}

	return time.UTC
}

func parseCalendarDate(date string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("timezone.date.invalid: %w", err)
	}
	return parsed, nil
}

// --------------------------------------------
// Смещение через сравнение отформатированных часов
// --------------------------------------------

// OffsetProbeConverter вычисляет смещение таймзоны на конкретную дату:
// опорный момент (полдень UTC целевой даты) форматируется в таймзоне артиста и в UTC,
// из обоих представлений берется час и разница дает смещение. Опорный момент
// привязан к целевой дате, поэтому переходы на летнее время учитываются.
//
// Сравнивается только час. Для зон со смещением не кратным часу
// (Asia/Kolkata, Asia/Kathmandu) смещение получается усеченным,
// точный результат дает LocationConverter.
type OffsetProbeConverter struct {
	zones zoneLoader
}

func (c *OffsetProbeConverter) ToUTCInstant(date, slotTime, timezone string) (time.Time, error) {
	day, err := parseCalendarDate(date)
	if err != nil {
		return time.Time{}, err
	}

	offset := c.OffsetHours(day, timezone)
	hour, minute := utils.ParseTime(slotTime)

	year, month, dayOfMonth, utcHour := shiftWallClock(day.Year(), int(day.Month()), day.Day(), hour-offset)

	return time.Date(year, time.Month(month), dayOfMonth, utcHour, minute, 0, 0, time.UTC), nil
}

// ToWallClock обратное к ToUTCInstant: смещение берется на локальную дату результата,
// а не на дату UTC. Кандидаты проверяются начиная с календарной даты момента
// в самой таймзоне, так что вечер перед переходом на летнее время и обратно
// попадает на те же метки, что выдает ToUTCInstant
func (c *OffsetProbeConverter) ToWallClock(instant time.Time, timezone string) (string, string) {
	utc := instant.UTC()
	local := utc.In(c.zones.load(timezone))
	localDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	var fallbackDate, fallbackClock string
	for i, shift := range []int{0, -1, 1} {
		candidate := localDay.AddDate(0, 0, shift)
		date, clock := c.shiftByOffset(utc, c.OffsetHours(candidate, timezone))
		if date == candidate.Format(dateLayout) {
			return date, clock
		}
		if i == 0 {
			fallbackDate, fallbackClock = date, clock
		}
	}

	return fallbackDate, fallbackClock
}

func (c *OffsetProbeConverter) shiftByOffset(utc time.Time, offset int) (string, string) {
	year, month, day, hour := shiftWallClock(utc.Year(), int(utc.Month()), utc.Day(), utc.Hour()+offset)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), utils.FormatTime24(hour, utc.Minute())
}

func (c *OffsetProbeConverter) TodayInTimezone(timezone string, now time.Time) string {
	return now.In(c.zones.load(timezone)).Format(dateLayout)
}

// OffsetHours смещение таймзоны от UTC в целых часах на календарную дату day
func (c *OffsetProbeConverter) OffsetHours(day time.Time, timezone string) int {
	loc := c.zones.load(timezone)

	reference := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
	local := reference.In(loc)

	localHour, _ := strconv.Atoi(local.Format("15"))
	utcHour, _ := strconv.Atoi(reference.Format("15"))

	// Для зон дальше +12/-12 полдень UTC уже на соседних сутках
	localDate := local.Format(dateLayout)
	utcDate := reference.Format(dateLayout)
	dayShift := 0
	if localDate > utcDate {
		dayShift = 1
	} else if localDate < utcDate {
		dayShift = -1
	}

	offset := localHour - utcHour + dayShift*24

	c.zones.logger.Debug("timezone.offset.probed", out.LogFields{
		"timezone": loc.String(),
		"date":     utcDate,
		"offset":   offset,
	})

	return offset
}

// shiftWallClock переносит час за пределы суток с явным переносом дня, месяца и года.
// Смещения таймзон меньше суток, поэтому перенос не больше чем на один день
func shiftWallClock(year, month, day, hour int) (int, int, int, int) {
	for hour < 0 {
		hour += 24
		day--
	}
	for hour >= 24 {
		hour -= 24
		day++
	}

	if day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day = daysInMonth(year, month)
	}

	if day > daysInMonth(year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	return year, month, day, hour
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year, month int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return monthLengths[month-1]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// --------------------------------------------
// Точное преобразование через time.Location
// --------------------------------------------

type LocationConverter struct {
	zones zoneLoader
}

func (c *LocationConverter) ToUTCInstant(date, slotTime, timezone string) (time.Time, error) {
	day, err := parseCalendarDate(date)
	if err != nil {
		return time.Time{}, err
	}

	hour, minute := utils.ParseTime(slotTime)
	loc := c.zones.load(timezone)

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc).UTC(), nil
}

func (c *LocationConverter) ToWallClock(instant time.Time, timezone string) (string, string) {
	local := instant.In(c.zones.load(timezone))
	return local.Format(dateLayout), local.Format("15:04")
}

func (c *LocationConverter) TodayInTimezone(timezone string, now time.Time) string {
	return now.In(c.zones.load(timezone)).Format(dateLayout)
}
