package domain

// WeeklyScheduleWindow повторяющийся недельный интервал работы артиста.
// DayOfWeek: 0 - воскресенье, 6 - суббота
type WeeklyScheduleWindow struct {
	ArtistID  string `json:"artistId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// WorkingWindow итоговый рабочий интервал на конкретную дату
type WorkingWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ArtistSchedule все записи расписания артиста, которые можно кэшировать.
// Записи на прием сюда не входят, их всегда читаем заново
type ArtistSchedule struct {
	ArtistID   string                  `json:"artistId"`
	Timezone   string                  `json:"timezone"`
	Windows    []WeeklyScheduleWindow  `json:"windows"`
	Exceptions []AvailabilityException `json:"exceptions"`
}
