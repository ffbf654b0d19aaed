package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SessionCode статус занятия в конкретный день
type SessionCode string

const (
	SessionCompleted            SessionCode = "C"  // Проведено и оплачено
	SessionAdvance              SessionCode = "A"  // Оплачено заранее, занятие впереди
	SessionPending              SessionCode = "P"  // Ожидает, не оплачено
	SessionTeacherAbsent        SessionCode = "T"  // Учитель отсутствовал, без оплаты
	SessionStudentAbsent        SessionCode = "S"  // Ученик отсутствовал, без оплаты
	SessionAdvanceTeacherAbsent SessionCode = "AT" // Оплачено заранее, учитель отсутствовал
	SessionAdvanceStudentAbsent SessionCode = "AS" // Оплачено заранее, ученик отсутствовал
	SessionNone                 SessionCode = "N"  // Не запланировано / сброшено
)

// SessionCodes все коды в порядке отображения
var SessionCodes = []SessionCode{
	SessionCompleted,
	SessionAdvance,
	SessionPending,
	SessionTeacherAbsent,
	SessionStudentAbsent,
	SessionAdvanceTeacherAbsent,
	SessionAdvanceStudentAbsent,
	SessionNone,
}

// Valid проверяет что код известен
func (c SessionCode) Valid() bool {
	for _, code := range SessionCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ParseSessionCode разбирает код без учёта регистра
func ParseSessionCode(s string) (SessionCode, error) {
	code := SessionCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.Valid() {
		return "", fmt.Errorf("unknown session code %q", s)
	}
	return code, nil
}

// EarningsPolicy правила учёта оплаченных занятий
type EarningsPolicy struct {
	// CountAdvanceAbsences учитывать AT/AS как оплаченные
	CountAdvanceAbsences bool
}

// IsPaid входит ли день с этим кодом в заработок
func (c SessionCode) IsPaid(policy EarningsPolicy) bool {
	switch c {
	case SessionCompleted, SessionAdvance:
		return true
	case SessionAdvanceTeacherAbsent, SessionAdvanceStudentAbsent:
		return policy.CountAdvanceAbsences
	default:
		return false
	}
}

// DaySchedule один день недельного расписания
type DaySchedule struct {
	IsScheduled bool    `json:"isScheduled"`
	Duration    float64 `json:"duration"`
}

// DefaultDuration длительность для старых записей вида "monday": true
const DefaultDuration = 1.0

// UnmarshalJSON приводит старые форматы (bool или объект) к DaySchedule
func (d *DaySchedule) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))

	switch trimmed {
	case "null", "false":
		*d = DaySchedule{}
		return nil
	case "true":
		*d = DaySchedule{IsScheduled: true, Duration: DefaultDuration}
		return nil
	}

	var raw struct {
		IsScheduled *bool    `json:"isScheduled"`
		Duration    *float64 `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode day schedule: %w", err)
	}

	*d = DaySchedule{}
	if raw.IsScheduled != nil {
		d.IsScheduled = *raw.IsScheduled
	}
	if raw.Duration != nil {
		d.Duration = *raw.Duration
	}
	if d.IsScheduled && d.Duration == 0 {
		d.Duration = DefaultDuration
	}
	if !d.IsScheduled {
		d.Duration = 0
	}
	return nil
}

// WeeklySchedule расписание брони по дням недели
type WeeklySchedule map[Weekday]DaySchedule

// Normalize возвращает копию со всеми семью днями
func (w WeeklySchedule) Normalize() WeeklySchedule {
	out := make(WeeklySchedule, len(Weekdays))
	for _, day := range Weekdays {
		out[day] = w[day]
	}
	return out
}

// ScheduledDays возвращает запланированные дни по порядку
func (w WeeklySchedule) ScheduledDays() []Weekday {
	var days []Weekday
	for _, day := range Weekdays {
		if w[day].IsScheduled {
			days = append(days, day)
		}
	}
	return days
}

// DayStatus статус дня вместе с конкретной датой
type DayStatus struct {
	Status    SessionCode `json:"status"`
	Date      *time.Time  `json:"date"`
	WeekStart *time.Time  `json:"weekStart"`
	WeekEnd   *time.Time  `json:"weekEnd"`
}

// SessionStatus статусы всех дней брони
type SessionStatus map[Weekday]DayStatus

// Clone возвращает независимую копию
func (s SessionStatus) Clone() SessionStatus {
	out := make(SessionStatus, len(s))
	for day, st := range s {
		out[day] = DayStatus{
			Status:    st.Status,
			Date:      cloneTime(st.Date),
			WeekStart: cloneTime(st.WeekStart),
			WeekEnd:   cloneTime(st.WeekEnd),
		}
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
