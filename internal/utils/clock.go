package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime разбирает "HH:MM" без проверки формата.
// Формат должен быть проверен вызывающей стороной
func ParseTime(value string) (hour int, minute int) {
	parts := strings.SplitN(value, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return hour, minute
}

func FormatTime24(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FormatTime переводит "HH:MM" в 12-часовой формат: "9:30am", "12:00pm"
func FormatTime(value string) string {
	hour, minute := ParseTime(value)

	period := "am"
	if hour >= 12 {
		period = "pm"
	}

	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d%s", displayHour, minute, period)
}

// MinutesOfDay количество минут от полуночи для "HH:MM"
func MinutesOfDay(value string) int {
	hour, minute := ParseTime(value)
	return hour*60 + minute
}

func FormatMinutes(minutes int) string {
	return FormatTime24(minutes/60, minutes%60)
}
