package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleProjection() *service.Projection {
	weekStart := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	return &service.Projection{
		TeacherID:   7,
		TeacherName: "Olga",
		Period: service.Period{
			Mode:  service.PeriodWeek,
			Start: weekStart,
			End:   weekStart.AddDate(0, 0, 7).Add(-time.Microsecond),
		},
		Rows: []service.ProjectionRow{
			{
				BookingID:   uuid.New(),
				StudentName: "Anna",
				Subject:     "Math",
				WeekStart:   weekStart,
				WeekEnd:     weekStart.AddDate(0, 0, 6),
				Days: []service.ProjectedDay{
					{Date: weekStart, Weekday: model.Monday, ScheduleKey: model.Monday, Status: model.SessionCompleted, Duration: 1, TeacherShare: 100, CompanyShare: 25, Paid: true},
					{Date: weekStart.AddDate(0, 0, 2), Weekday: model.Wednesday, ScheduleKey: model.Wednesday, Status: model.SessionPending, Duration: 1, TeacherShare: 100, CompanyShare: 25},
				},
				WeekEarnings:    100,
				CompanyEarnings: 25,
			},
		},
		Totals: service.Totals{
			TeacherEarnings: 100,
			CompanyEarnings: 25,
			Sessions:        map[model.SessionCode]int{model.SessionCompleted: 1, model.SessionPending: 1},
		},
	}
}

func TestWriteProjection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProjection(&buf, sampleProjection()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SessionsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(SessionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Week start", rows[0][0])
	assert.Equal(t, "2025-12-01", rows[1][5])
	assert.Equal(t, "C", rows[1][8])
	assert.Equal(t, "100", rows[1][10])
	assert.Equal(t, "Wed", rows[2][6])
	assert.Equal(t, "no", rows[2][12])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	// заголовок, строка недели, итог и два кода
	require.Len(t, summary, 5)
	assert.Equal(t, "TOTAL", summary[2][2])
	assert.Equal(t, "100", summary[2][5])
	assert.Equal(t, "25", summary[2][6])
	assert.Equal(t, "C", summary[3][3])
	assert.Equal(t, "P", summary[4][3])
}

func TestWriteProjectionEmpty(t *testing.T) {
	p := sampleProjection()
	p.Rows = nil
	p.Totals = service.Totals{Sessions: map[model.SessionCode]int{}}

	var buf bytes.Buffer
	require.NoError(t, WriteProjection(&buf, p))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SessionsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "schedule_7_week_2025-12-01.xlsx", FileName(sampleProjection()))
}
