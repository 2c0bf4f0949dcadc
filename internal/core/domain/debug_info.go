package domain

import "time"

// DebugInfo замер одного этапа обработки запроса
type DebugInfo struct {
	Event     string            `json:"event"`
	Timing    int64             `json:"timingUs"`
	StartTime time.Time         `json:"-"`
	Options   map[string]string `json:"options,omitempty"`
}

func StartDebugInfo(event string) DebugInfo {
	d := DebugInfo{Event: event}
	d.Start()
	return d
}

func (d *DebugInfo) Start() {
	d.StartTime = time.Now()
}

// Elapse фиксирует время этапа в микросекундах, миллисекунды для движка почти всегда ноль
func (d *DebugInfo) Elapse() {
	d.Timing = time.Since(d.StartTime).Microseconds()
}

func (d *DebugInfo) AddOption(key string, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[key] = value
}
