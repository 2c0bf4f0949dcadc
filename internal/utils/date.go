package utils

import "time"

// StartOfDay возвращает полночь того же дня, таймзона остается прежней
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartNextDay возвращает новую дату, где день увеличен на 1, время установлено на 00:00, а таймзона остается прежней.
func StartNextDay(t time.Time) time.Time {
	return StartOfDay(t.AddDate(0, 0, 1))
}

// AddHours прибавляет часы с переходом через границу суток
func AddHours(t time.Time, hours int) time.Time {
	return t.Add(time.Duration(hours) * time.Hour)
}

func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// GetDayOfWeek 0 - воскресенье, 6 - суббота
func GetDayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// GetDateRange возвращает days подряд идущих дат, начиная с начала дня start
func GetDateRange(start time.Time, days int) []time.Time {
	if days <= 0 {
		return []time.Time{}
	}

	dates := make([]time.Time, 0, days)
	day := StartOfDay(start)
	for i := 0; i < days; i++ {
		dates = append(dates, day.AddDate(0, 0, i))
	}
	return dates
}
