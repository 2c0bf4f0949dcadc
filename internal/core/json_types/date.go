package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate разбирает календарную дату. Строки с временем тоже принимаются,
// от них остается только дата
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse(DateLayout, str)
	if err == nil {
		return parsedDate, nil
	}

	// Если не удалось пробуем дату со временем и таймзоной
	withZone, zoneErr := time.Parse(time.RFC3339, str)
	if zoneErr == nil {
		return time.Date(withZone.Year(), withZone.Month(), withZone.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	// И дату со временем, но без таймзоны
	withoutZone, plainErr := time.Parse("2006-01-02T15:04:05", str)
	if plainErr == nil {
		return time.Date(withoutZone.Year(), withoutZone.Month(), withoutZone.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("failed to parse date %q: %w", str, err)
}

// Date календарная дата без времени, всегда на полночь UTC
type Date struct {
	Date time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (t Date) String() string {
	return t.Date.Format(DateLayout)
}

func (t Date) IsZero() bool {
	return t.Date.IsZero()
}

func (t *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}

	parsedDate, err := ParseDate(str)
	if err != nil {
		return err
	}

	*t = Date{Date: parsedDate}
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	if t.Date.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(t.String())
}
