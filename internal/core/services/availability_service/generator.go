package availability_service

import (
	"time"

	"github.com/suchimauz/artist-availability-engine/internal/utils"
)

// GenerateSlotTimes строит сетку начал слотов: startTime включительно, строго до endTime.
// Входные значения не округляются
func GenerateSlotTimes(startTime, endTime string, interval time.Duration) []string {
	slots := make([]string, 0)

	step := int(interval / time.Minute)
	if step <= 0 {
		return slots
	}

	start := utils.MinutesOfDay(startTime)
	end := utils.MinutesOfDay(endTime)

	for current := start; current < end; current += step {
		slots = append(slots, utils.FormatMinutes(current))
	}

	return slots
}
