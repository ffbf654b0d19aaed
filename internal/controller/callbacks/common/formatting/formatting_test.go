package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "занятие"},
		{2, "занятия"},
		{5, "занятий"},
		{11, "занятий"},
		{21, "занятие"},
		{24, "занятия"},
		{112, "занятий"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeSessions(tt.count), tt.count)
	}
	assert.Equal(t, "недели", PluralizeWeeks(3))
	assert.Equal(t, "броней", PluralizeBookings(0))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "1 ч", FormatHours(1))
	assert.Equal(t, "1.5 ч", FormatHours(1.5))
	assert.Equal(t, "0.5 ч", FormatHours(0.5))
}

func TestFormatProjection(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	p := &service.Projection{
		TeacherName: "Olga <admin>",
		Period:      service.Period{Mode: service.PeriodWeek, Start: start, End: start.AddDate(0, 0, 7).Add(-time.Microsecond)},
		Rows: []service.ProjectionRow{{
			BookingID:   uuid.New(),
			StudentName: "Anna",
			Subject:     "Math",
			Grade:       "5",
			WeekStart:   start,
			WeekEnd:     start.AddDate(0, 0, 6),
			Days: []service.ProjectedDay{
				{Date: start.AddDate(0, 0, 3), Weekday: model.Thursday, ScheduleKey: model.Wednesday, Status: model.SessionCompleted, Duration: 1, TeacherShare: 100, CompanyShare: 25, Paid: true},
			},
			WeekEarnings:    100,
			CompanyEarnings: 25,
		}},
		Totals: service.Totals{TeacherEarnings: 100, CompanyEarnings: 25, Sessions: map[model.SessionCode]int{model.SessionCompleted: 1}},
	}

	text := FormatProjection(p)
	assert.Contains(t, text, "Olga &lt;admin&gt;")
	assert.Contains(t, text, "Чт 04.12")
	assert.Contains(t, text, "по расписанию Ср")
	assert.Contains(t, text, "1 занятие")
	assert.True(t, strings.HasSuffix(text, FormatSplit(100, 25)))

	p.Rows = nil
	assert.Contains(t, FormatProjection(p), "Занятий в этом периоде нет")
}

func TestFormatBookingSkipsUnscheduledDays(t *testing.T) {
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	b := &model.Booking{
		ID:            uuid.New(),
		StudentName:   "Anna",
		WeekStartDate: start,
		WeekEndDate:   model.EndOfWeek(start),
		WeeklySchedule: model.WeeklySchedule{
			model.Monday: {IsScheduled: true, Duration: 1},
		}.Normalize(),
		Status:               model.BookingStatusActive,
		TotalEarningsPerWeek: 125,
	}
	b.InitSessionStatus()

	text := FormatBooking(b, time.UTC)
	assert.Contains(t, text, "Пн 01.12 — P")
	assert.NotContains(t, text, "Вт")
	assert.Contains(t, text, b.ID.String())
}
