package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekday день недели в расписании брони
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays дни недели по порядку, неделя начинается с понедельника
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Offset смещение дня от понедельника (Mon=0 ... Sun=6), -1 для неизвестного дня
func (d Weekday) Offset() int {
	for i, w := range Weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Valid проверяет что день известен
func (d Weekday) Valid() bool {
	return d.Offset() >= 0
}

// Short краткое название для кнопок и отчётов
func (d Weekday) Short() string {
	if !d.Valid() {
		return "?"
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:3])
}

// WeekdayOf возвращает день недели для даты (в её собственной зоне)
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday: 0 = Sunday
	return Weekdays[(int(t.Weekday())+6)%7]
}

// ParseWeekday разбирает название дня: полное или первые три буквы
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range Weekdays {
		if s == string(w) || (len(s) >= 3 && strings.HasPrefix(string(w), s)) {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// StartOfDay обнуляет время в зоне даты
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek возвращает понедельник 00:00 недели, содержащей t
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -WeekdayOf(day).Offset())
}

// EndOfWeek возвращает конец воскресенья для недели, начинающейся с weekStart
func EndOfWeek(weekStart time.Time) time.Time {
	return StartOfDay(weekStart).AddDate(0, 0, 7).Add(-time.Microsecond)
}
