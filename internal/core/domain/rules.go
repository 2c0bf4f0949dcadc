package domain

import "time"

// Rules бизнес-константы движка. Передаются явно, глобальных значений нет
type Rules struct {
	SlotInterval        time.Duration
	AppointmentDuration time.Duration
	MinAdvance          time.Duration
	PastSlotBuffer      time.Duration
	DefaultTimezone     string
}

func DefaultRules() Rules {
	return Rules{
		SlotInterval:        30 * time.Minute,
		AppointmentDuration: 60 * time.Minute,
		MinAdvance:          time.Hour,
		PastSlotBuffer:      30 * time.Minute,
		DefaultTimezone:     "America/New_York",
	}
}
