package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"    // Текущая неделя занятий
	BookingStatusCompleted BookingStatus = "completed" // Неделя закрыта
	BookingStatusCancelled BookingStatus = "cancelled" // Отменена
)

// Valid проверяет что статус известен
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

var (
	ErrUnknownWeekday  = errors.New("unknown weekday")
	ErrUnknownCode     = errors.New("unknown session code")
	ErrDayNotScheduled = errors.New("day is not scheduled")
	ErrDateOutsideWeek = errors.New("date is outside of the booking week")
)

// Booking занятия одного ученика у одного учителя на одну неделю (пн-вс)
type Booking struct {
	ID            uuid.UUID `json:"id"`
	TeacherID     int64     `json:"teacher_id"`
	StudentName   string    `json:"student_name"`
	ParentName    string    `json:"parent_name"`
	ParentFbName  string    `json:"parent_fb_name"`
	Grade         string    `json:"grade"`
	Subject       string    `json:"subject"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`

	WeekStartDate time.Time `json:"week_start_date"`
	WeekEndDate   time.Time `json:"week_end_date"`

	WeeklySchedule WeeklySchedule `json:"weekly_schedule"`
	SessionStatus  SessionStatus  `json:"session_status"`

	// Сумма полной стоимости запланированных дней на момент создания
	TotalEarningsPerWeek int `json:"total_earnings_per_week"`

	Status    BookingStatus `json:"status"`
	IsDeleted bool          `json:"is_deleted"`
	DeletedAt *time.Time    `json:"deleted_at"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DateOf возвращает дату дня недели внутри недели брони.
// Календарный день берётся в зоне WeekStartDate, поэтому бронь из хранилища
// сначала переводится в зону агентства через Localize.
func (b *Booking) DateOf(day Weekday) time.Time {
	return StartOfDay(b.WeekStartDate).AddDate(0, 0, day.Offset())
}

// Localize переводит границы недели и даты статусов в зону агентства.
// pgx отдаёт TIMESTAMPTZ в зоне процесса, а неделя брони считается по календарю агентства.
func (b *Booking) Localize(loc *time.Location) {
	if loc == nil {
		return
	}

	b.WeekStartDate = b.WeekStartDate.In(loc)
	b.WeekEndDate = b.WeekEndDate.In(loc)

	for day, status := range b.SessionStatus {
		status.Date = inZone(status.Date, loc)
		status.WeekStart = inZone(status.WeekStart, loc)
		status.WeekEnd = inZone(status.WeekEnd, loc)
		b.SessionStatus[day] = status
	}
}

func inZone(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}

// InitSessionStatus заполняет статусы по расписанию: P с датой для занятых дней, N для остальных
func (b *Booking) InitSessionStatus() {
	weekStart := b.WeekStartDate
	weekEnd := b.WeekEndDate

	b.SessionStatus = make(SessionStatus, len(Weekdays))
	for _, day := range Weekdays {
		if !b.WeeklySchedule[day].IsScheduled {
			b.SessionStatus[day] = DayStatus{Status: SessionNone}
			continue
		}

		date := b.DateOf(day)
		ws, we := weekStart, weekEnd
		b.SessionStatus[day] = DayStatus{
			Status:    SessionPending,
			Date:      &date,
			WeekStart: &ws,
			WeekEnd:   &we,
		}
	}
}

// ApplyStatus переводит день в новый статус.
// N отвязывает день от даты. Любой другой код сохраняет имеющуюся дату,
// а если её не было, берёт переданную или вычисляет по неделе брони.
func (b *Booking) ApplyStatus(day Weekday, code SessionCode, date *time.Time) error {
	if !day.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownWeekday, day)
	}
	if !code.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}

	if b.SessionStatus == nil {
		b.SessionStatus = make(SessionStatus, len(Weekdays))
	}

	if code == SessionNone {
		b.SessionStatus[day] = DayStatus{Status: SessionNone}
		return nil
	}

	if !b.WeeklySchedule[day].IsScheduled {
		return fmt.Errorf("%w: %s", ErrDayNotScheduled, day)
	}

	current := b.SessionStatus[day]
	next := DayStatus{Status: code, Date: current.Date}

	if next.Date == nil {
		if date != nil {
			d := StartOfDay(date.In(b.WeekStartDate.Location()))
			if d.Before(StartOfDay(b.WeekStartDate)) || d.After(b.WeekEndDate) {
				return fmt.Errorf("%w: %s", ErrDateOutsideWeek, d.Format("2006-01-02"))
			}
			next.Date = &d
		} else {
			d := b.DateOf(day)
			next.Date = &d
		}
	}

	ws, we := b.WeekStartDate, b.WeekEndDate
	next.WeekStart = &ws
	next.WeekEnd = &we

	b.SessionStatus[day] = next
	return nil
}

// IsActive бронь не удалена и не закрыта
func (b *Booking) IsActive() bool {
	return !b.IsDeleted && b.Status == BookingStatusActive
}
