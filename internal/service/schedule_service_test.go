package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScheduleService(store *memStore, now time.Time, policy model.EarningsPolicy) *ScheduleService {
	s := NewScheduleService(memBookings{store}, memTeachers{store}, policy, time.UTC, zap.NewNop())
	s.now = fixedClock(now)
	return s
}

// makeBooking собирает бронь на неделю с заданными длительностями и кодами
func makeBooking(t *testing.T, teacherID int64, student string, weekStart time.Time, durations map[model.Weekday]float64, codes map[model.Weekday]model.SessionCode) *model.Booking {
	t.Helper()

	schedule := model.WeeklySchedule{}
	for day, d := range durations {
		schedule[day] = model.DaySchedule{IsScheduled: true, Duration: d}
	}

	b := &model.Booking{
		ID:             uuid.New(),
		TeacherID:      teacherID,
		StudentName:    student,
		ParentFbName:   student + ".parent",
		Grade:          "7",
		Subject:        "Physics",
		WeekStartDate:  weekStart,
		WeekEndDate:    model.EndOfWeek(weekStart),
		WeeklySchedule: schedule.Normalize(),
		Status:         model.BookingStatusActive,
	}
	b.InitSessionStatus()
	for day, code := range codes {
		require.NoError(t, b.ApplyStatus(day, code, nil))
	}
	return b
}

func TestProjectWeek(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")
	store.addBooking(makeBooking(t, teacher.ID, "Anna", date(2025, 12, 1),
		map[model.Weekday]float64{model.Monday: 1, model.Wednesday: 1.5, model.Friday: 1},
		map[model.Weekday]model.SessionCode{model.Monday: model.SessionCompleted, model.Wednesday: model.SessionAdvance, model.Friday: model.SessionStudentAbsent},
	))

	s := newScheduleService(store, time.Date(2025, 12, 3, 12, 0, 0, 0, time.UTC), model.EarningsPolicy{})

	p, err := s.Project(context.Background(), teacher.ID, PeriodWeek, 0)
	require.NoError(t, err)

	assert.Equal(t, date(2025, 12, 1), p.Period.Start)
	assert.Equal(t, "Olga", p.TeacherName)
	require.Len(t, p.Rows, 1)

	row := p.Rows[0]
	require.Len(t, row.Days, 3)
	assert.Equal(t, model.Monday, row.Days[0].Weekday)
	assert.True(t, row.Days[0].Paid)
	assert.Equal(t, 150, row.Days[1].TeacherShare)
	assert.False(t, row.Days[2].Paid)

	assert.Equal(t, 100+150, row.WeekEarnings)
	assert.Equal(t, 25+38, row.CompanyEarnings)
	assert.Equal(t, 250, p.Totals.TeacherEarnings)
	assert.Equal(t, 1, p.Totals.Sessions[model.SessionStudentAbsent])
}

func TestProjectWeekFiltersByStatusDate(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")

	b := makeBooking(t, teacher.ID, "Anna", date(2025, 12, 1),
		map[model.Weekday]float64{model.Monday: 1, model.Wednesday: 1},
		nil,
	)
	// понедельник фактически прошёл неделей раньше, среда перенесена на четверг
	mon := date(2025, 11, 24)
	thu := date(2025, 12, 4)
	b.SessionStatus[model.Monday] = model.DayStatus{Status: model.SessionCompleted, Date: &mon}
	b.SessionStatus[model.Wednesday] = model.DayStatus{Status: model.SessionCompleted, Date: &thu}
	store.addBooking(b)

	s := newScheduleService(store, time.Date(2025, 12, 3, 12, 0, 0, 0, time.UTC), model.EarningsPolicy{})

	p, err := s.Project(context.Background(), teacher.ID, PeriodWeek, 0)
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	require.Len(t, p.Rows[0].Days, 1)

	day := p.Rows[0].Days[0]
	assert.Equal(t, thu, day.Date)
	assert.Equal(t, model.Thursday, day.Weekday)
	assert.Equal(t, model.Wednesday, day.ScheduleKey)
	assert.Equal(t, 100, p.Rows[0].WeekEarnings)

	// прошлая неделя видит только понедельник
	p, err = s.Project(context.Background(), teacher.ID, PeriodWeek, -1)
	require.NoError(t, err)
	require.Len(t, p.Rows, 1)
	require.Len(t, p.Rows[0].Days, 1)
	assert.Equal(t, mon, p.Rows[0].Days[0].Date)
}

func TestProjectWeekSkipsBookingsWithoutDays(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")
	store.addBooking(makeBooking(t, teacher.ID, "Anna", date(2025, 12, 8),
		map[model.Weekday]float64{model.Monday: 1}, nil,
	))

	s := newScheduleService(store, time.Date(2025, 12, 3, 12, 0, 0, 0, time.UTC), model.EarningsPolicy{})

	p, err := s.Project(context.Background(), teacher.ID, PeriodWeek, 0)
	require.NoError(t, err)
	assert.Empty(t, p.Rows)
	assert.NotNil(t, p.Rows)
}

func TestProjectEmptyAndUnknownTeacher(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")
	s := newScheduleService(store, time.Date(2025, 12, 3, 12, 0, 0, 0, time.UTC), model.EarningsPolicy{})

	p, err := s.Project(context.Background(), teacher.ID, PeriodMonth, 0)
	require.NoError(t, err)
	assert.Empty(t, p.Rows)
	assert.Zero(t, p.Totals.TeacherEarnings)

	_, err = s.Project(context.Background(), 999, PeriodWeek, 0)
	assert.ErrorIs(t, err, ErrTeacherNotFound)

	_, err = s.Project(context.Background(), teacher.ID, "year", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProjectMonth(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")

	// неделя на стыке месяцев: в декабрь попадает только понедельник
	store.addBooking(makeBooking(t, teacher.ID, "Boris", date(2025, 12, 29),
		map[model.Weekday]float64{model.Monday: 1, model.Friday: 2},
		map[model.Weekday]model.SessionCode{model.Monday: model.SessionCompleted, model.Friday: model.SessionCompleted},
	))
	store.addBooking(makeBooking(t, teacher.ID, "Anna", date(2025, 12, 1),
		map[model.Weekday]float64{model.Tuesday: 2},
		map[model.Weekday]model.SessionCode{model.Tuesday: model.SessionCompleted},
	))
	// старая запись: N с сохранённой датой
	legacy := makeBooking(t, teacher.ID, "Clara", date(2025, 12, 15),
		map[model.Weekday]float64{model.Monday: 1}, nil,
	)
	d := date(2025, 12, 15)
	legacy.SessionStatus[model.Monday] = model.DayStatus{Status: model.SessionNone, Date: &d}
	store.addBooking(legacy)

	s := newScheduleService(store, time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC), model.EarningsPolicy{})

	p, err := s.Project(context.Background(), teacher.ID, PeriodMonth, 0)
	require.NoError(t, err)

	assert.Equal(t, date(2025, 12, 1), p.Period.Start)
	assert.Equal(t, date(2026, 1, 1).Add(-time.Microsecond), p.Period.End)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, "Anna", p.Rows[0].StudentName)
	assert.Equal(t, "Boris", p.Rows[1].StudentName)
	assert.Equal(t, date(2025, 12, 29), p.Rows[1].WeekStart)
	require.Len(t, p.Rows[1].Days, 1)
	assert.Equal(t, 100, p.Rows[1].WeekEarnings)

	assert.Equal(t, 200+100, p.Totals.TeacherEarnings)
	assert.Equal(t, 50+25, p.Totals.CompanyEarnings)
	assert.Equal(t, 2, p.Totals.Sessions[model.SessionCompleted])

	// в недельном режиме старая запись видна
	week, err := s.Project(context.Background(), teacher.ID, PeriodWeek, 1)
	require.NoError(t, err)
	require.Len(t, week.Rows, 1)
	assert.Equal(t, "Clara", week.Rows[0].StudentName)

	// январь видит пятницу той же брони
	jan, err := s.Project(context.Background(), teacher.ID, PeriodMonth, 1)
	require.NoError(t, err)
	require.Len(t, jan.Rows, 1)
	assert.Equal(t, 200, jan.Rows[0].WeekEarnings)
}

func TestProjectAdvanceAbsencePolicy(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")
	store.addBooking(makeBooking(t, teacher.ID, "Anna", date(2025, 12, 1),
		map[model.Weekday]float64{model.Monday: 1, model.Tuesday: 1},
		map[model.Weekday]model.SessionCode{model.Monday: model.SessionAdvanceTeacherAbsent, model.Tuesday: model.SessionAdvanceStudentAbsent},
	))
	now := time.Date(2025, 12, 3, 12, 0, 0, 0, time.UTC)

	p, err := newScheduleService(store, now, model.EarningsPolicy{}).Project(context.Background(), teacher.ID, PeriodWeek, 0)
	require.NoError(t, err)
	assert.Zero(t, p.Totals.TeacherEarnings)

	p, err = newScheduleService(store, now, model.EarningsPolicy{CountAdvanceAbsences: true}).Project(context.Background(), teacher.ID, PeriodWeek, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, p.Totals.TeacherEarnings)
}

func TestProjectRowsSortedByWeek(t *testing.T) {
	store := newMemStore()
	teacher := store.addTeacher("Olga")
	for _, start := range []time.Time{date(2025, 12, 15), date(2025, 12, 1), date(2025, 12, 8)} {
		store.addBooking(makeBooking(t, teacher.ID, "Anna", start,
			map[model.Weekday]float64{model.Monday: 1},
			map[model.Weekday]model.SessionCode{model.Monday: model.SessionCompleted},
		))
	}

	s := newScheduleService(store, time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC), model.EarningsPolicy{})
	p, err := s.Project(context.Background(), teacher.ID, PeriodMonth, 0)
	require.NoError(t, err)
	require.Len(t, p.Rows, 3)
	assert.Equal(t, date(2025, 12, 1), p.Rows[0].WeekStart)
	assert.Equal(t, date(2025, 12, 8), p.Rows[1].WeekStart)
	assert.Equal(t, date(2025, 12, 15), p.Rows[2].WeekStart)
}

func TestResolvePeriod(t *testing.T) {
	store := newMemStore()
	s := newScheduleService(store, time.Date(2026, 1, 7, 23, 30, 0, 0, time.UTC), model.EarningsPolicy{})

	week := s.ResolvePeriod(PeriodWeek, -1)
	assert.Equal(t, date(2025, 12, 29), week.Start)
	assert.Equal(t, date(2026, 1, 5).Add(-time.Microsecond), week.End)

	month := s.ResolvePeriod(PeriodMonth, -1)
	assert.Equal(t, date(2025, 12, 1), month.Start)
	assert.True(t, month.Contains(date(2025, 12, 31)))
	assert.False(t, month.Contains(date(2026, 1, 1)))
}

func TestParsePeriodMode(t *testing.T) {
	mode, err := ParsePeriodMode("")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, mode)

	mode, err = ParsePeriodMode("Month")
	require.NoError(t, err)
	assert.Equal(t, PeriodMonth, mode)

	_, err = ParsePeriodMode("year")
	assert.ErrorIs(t, err, ErrValidation)
}
