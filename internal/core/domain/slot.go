package domain

// Slot кандидат на время начала консультации. Вычисляется на каждый запрос
type Slot struct {
	Time        string `json:"time"`
	Available   bool   `json:"available"`
	DisplayTime string `json:"displayTime"`
}
