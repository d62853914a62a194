package domain

import "time"

// DateLayout is the calendar date format used in cache keys and records
const DateLayout = "2006-01-02"

// WordRecord holds all words cached for one calendar day
type WordRecord struct {
	Date  string `json:"date"`
	Words []Word `json:"words"`
}

// Time parses the record date
func (r WordRecord) Time() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// DisplayString returns a user-friendly label for the record date relative to now
func (r WordRecord) DisplayString(now time.Time) string {
	date, err := r.Time()
	if err != nil {
		return r.Date
	}

	if sameDay(date, now) {
		return "今天"
	}

	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "昨天"
	}

	weekdays := []string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

	return date.Format("01月02日 ") + weekdays[date.Weekday()]
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
