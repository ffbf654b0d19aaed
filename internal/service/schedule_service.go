package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/rates"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PeriodMode тип отчётного периода
type PeriodMode string

const (
	PeriodWeek  PeriodMode = "week"
	PeriodMonth PeriodMode = "month"
)

// ParsePeriodMode разбирает режим, пустая строка означает неделю
func ParsePeriodMode(s string) (PeriodMode, error) {
	switch PeriodMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	}
	return "", invalid("mode", "unknown period %q, expected week or month", s)
}

// Period отчётный период с границами включительно
type Period struct {
	Mode   PeriodMode
	Offset int
	Start  time.Time
	End    time.Time
}

// Contains попадает ли момент в период
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// ProjectedDay одно занятие в отчёте
type ProjectedDay struct {
	Date time.Time

	// Weekday день недели по фактической дате
	Weekday model.Weekday

	// ScheduleKey день расписания, к которому привязан статус
	ScheduleKey model.Weekday

	Status       model.SessionCode
	Duration     float64
	TeacherShare int
	CompanyShare int
	Paid         bool
}

// ProjectionRow одна бронь в одной неделе периода
type ProjectionRow struct {
	BookingID   uuid.UUID
	StudentName string
	ParentName  string
	Subject     string
	Grade       string
	WeekStart   time.Time
	WeekEnd     time.Time
	Days        []ProjectedDay

	// WeekEarnings доля учителя за оплаченные дни строки
	WeekEarnings int

	// CompanyEarnings доля компании за оплаченные дни строки
	CompanyEarnings int
}

// Totals итоги по всем строкам периода
type Totals struct {
	TeacherEarnings int
	CompanyEarnings int
	Sessions        map[model.SessionCode]int
}

// Projection расписание учителя за период с заработком
type Projection struct {
	TeacherID   int64
	TeacherName string
	Period      Period
	Rows        []ProjectionRow
	Totals      Totals
}

type ScheduleService struct {
	bookings BookingStore
	teachers TeacherStore
	policy   model.EarningsPolicy
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewScheduleService(
	bookings BookingStore,
	teachers TeacherStore,
	policy model.EarningsPolicy,
	location *time.Location,
	logger *zap.Logger,
) *ScheduleService {
	if location == nil {
		location = time.UTC
	}
	return &ScheduleService{
		bookings: bookings,
		teachers: teachers,
		policy:   policy,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// ResolvePeriod вычисляет границы периода относительно текущего момента
func (s *ScheduleService) ResolvePeriod(mode PeriodMode, offset int) Period {
	now := s.now().In(s.location)

	if mode == PeriodMonth {
		start := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, s.location)
		return Period{
			Mode:   PeriodMonth,
			Offset: offset,
			Start:  start,
			End:    start.AddDate(0, 1, 0).Add(-time.Microsecond),
		}
	}

	start := model.StartOfWeek(now.AddDate(0, 0, 7*offset))
	return Period{
		Mode:   PeriodWeek,
		Offset: offset,
		Start:  start,
		End:    model.EndOfWeek(start),
	}
}

// Project собирает занятия учителя за неделю или месяц.
// Дни отбираются по дате статуса, а не по ключу расписания.
func (s *ScheduleService) Project(ctx context.Context, teacherID int64, mode PeriodMode, offset int) (*Projection, error) {
	if mode != PeriodWeek && mode != PeriodMonth {
		return nil, invalid("mode", "unknown period %q", mode)
	}

	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil || teacher.IsDeleted {
		return nil, ErrTeacherNotFound
	}

	bookings, err := s.bookings.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	period := s.ResolvePeriod(mode, offset)
	projection := &Projection{
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Period:      period,
		Rows:        []ProjectionRow{},
		Totals:      Totals{Sessions: make(map[model.SessionCode]int)},
	}

	for _, booking := range bookings {
		if booking.IsDeleted {
			continue
		}
		booking.Localize(s.location)

		if mode == PeriodWeek {
			row, ok := s.projectRow(booking, period.Start, period.End)
			if ok {
				row.WeekStart = booking.WeekStartDate
				row.WeekEnd = booking.WeekEndDate
				projection.Rows = append(projection.Rows, row)
			}
			continue
		}

		for weekStart := model.StartOfWeek(period.Start); !weekStart.After(period.End); weekStart = weekStart.AddDate(0, 0, 7) {
			weekEnd := model.EndOfWeek(weekStart)
			from, to := maxTime(weekStart, period.Start), minTime(weekEnd, period.End)

			row, ok := s.projectRow(booking, from, to)
			if !ok || !hasRecordedDay(row) {
				continue
			}
			row.WeekStart = weekStart
			row.WeekEnd = weekEnd
			projection.Rows = append(projection.Rows, row)
		}
	}

	sort.SliceStable(projection.Rows, func(i, j int) bool {
		a, b := projection.Rows[i], projection.Rows[j]
		if !a.WeekStart.Equal(b.WeekStart) {
			return a.WeekStart.Before(b.WeekStart)
		}
		if a.StudentName != b.StudentName {
			return a.StudentName < b.StudentName
		}
		return a.BookingID.String() < b.BookingID.String()
	})

	for _, row := range projection.Rows {
		projection.Totals.TeacherEarnings += row.WeekEarnings
		projection.Totals.CompanyEarnings += row.CompanyEarnings
		for _, day := range row.Days {
			projection.Totals.Sessions[day.Status]++
		}
	}

	s.logger.Debug("Schedule projected",
		zap.Int64("teacher_id", teacherID),
		zap.String("mode", string(mode)),
		zap.Int("offset", offset),
		zap.Int("rows", len(projection.Rows)),
	)

	return projection, nil
}

// projectRow отбирает дни брони с датой в [from, to]
func (s *ScheduleService) projectRow(booking *model.Booking, from, to time.Time) (ProjectionRow, bool) {
	row := ProjectionRow{
		BookingID:   booking.ID,
		StudentName: booking.StudentName,
		ParentName:  booking.ParentName,
		Subject:     booking.Subject,
		Grade:       booking.Grade,
	}

	for _, key := range booking.WeeklySchedule.ScheduledDays() {
		status, ok := booking.SessionStatus[key]
		if !ok || status.Date == nil {
			continue
		}

		date := status.Date.In(s.location)
		if date.Before(from) || date.After(to) {
			continue
		}

		duration := booking.WeeklySchedule[key].Duration
		split := rates.Compute(duration)
		paid := status.Status.IsPaid(s.policy)

		day := ProjectedDay{
			Date:         date,
			Weekday:      model.WeekdayOf(date),
			ScheduleKey:  key,
			Status:       status.Status,
			Duration:     duration,
			TeacherShare: split.Teacher,
			CompanyShare: split.Company,
			Paid:         paid,
		}
		row.Days = append(row.Days, day)

		if paid {
			row.WeekEarnings += split.Teacher
			row.CompanyEarnings += split.Company
		}
	}

	sort.SliceStable(row.Days, func(i, j int) bool {
		return row.Days[i].Date.Before(row.Days[j].Date)
	})

	return row, len(row.Days) > 0
}

// hasRecordedDay есть ли в строке хоть один день со статусом кроме N
func hasRecordedDay(row ProjectionRow) bool {
	for _, day := range row.Days {
		if day.Status != model.SessionNone {
			return true
		}
	}
	return false
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
