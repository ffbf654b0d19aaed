package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatShortDate дата без года для строк расписания
func FormatShortDate(t time.Time) string {
	return t.Format("02.01")
}

// FormatWeekRange форматирует границы недели
func FormatWeekRange(start, end time.Time) string {
	return fmt.Sprintf("%s – %s", FormatShortDate(start), FormatDate(end))
}

// FormatHours форматирует длительность занятия в часах
func FormatHours(hours float64) string {
	if hours == float64(int(hours)) {
		return fmt.Sprintf("%d ч", int(hours))
	}
	return fmt.Sprintf("%.1f ч", hours)
}

var weekdayNames = map[model.Weekday][2]string{
	model.Monday:    {"Понедельник", "Пн"},
	model.Tuesday:   {"Вторник", "Вт"},
	model.Wednesday: {"Среда", "Ср"},
	model.Thursday:  {"Четверг", "Чт"},
	model.Friday:    {"Пятница", "Пт"},
	model.Saturday:  {"Суббота", "Сб"},
	model.Sunday:    {"Воскресенье", "Вс"},
}

// GetWeekdayName возвращает название дня недели на русском
func GetWeekdayName(day model.Weekday) string {
	if names, ok := weekdayNames[day]; ok {
		return names[0]
	}
	return "Неизвестно"
}

// GetWeekdayShort возвращает короткое название дня недели
func GetWeekdayShort(day model.Weekday) string {
	if names, ok := weekdayNames[day]; ok {
		return names[1]
	}
	return "?"
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
