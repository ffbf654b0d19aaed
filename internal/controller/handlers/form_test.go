package handlers

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingForm(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)

	text := `teacher: 7
student:  Anna
parent: Maria
grade: 5
subject: Math
contact: +79990001122
week: 12.10.2026
schedule: mon 1, Wed 1.5, fri
repeat: 3
skip_student: yes`

	input, err := ParseBookingForm(text, loc)
	require.NoError(t, err)

	assert.Equal(t, int64(7), input.TeacherID)
	assert.Equal(t, "Anna", input.StudentName)
	assert.Equal(t, "Maria", input.ParentName)
	assert.Equal(t, "", input.Email)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, loc), input.WeekStartDate)
	assert.Equal(t, 3, input.RepeatWeeks)
	assert.True(t, input.SkipStudentUpsert)

	assert.Equal(t, model.DaySchedule{IsScheduled: true, Duration: 1}, input.WeeklySchedule[model.Monday])
	assert.Equal(t, model.DaySchedule{IsScheduled: true, Duration: 1.5}, input.WeeklySchedule[model.Wednesday])
	assert.Equal(t, model.DaySchedule{IsScheduled: true, Duration: model.DefaultDuration}, input.WeeklySchedule[model.Friday])
	assert.False(t, input.WeeklySchedule[model.Sunday].IsScheduled)
	assert.Len(t, input.WeeklySchedule, 7)
}

func TestParseBookingFormDefaults(t *testing.T) {
	input, err := ParseBookingForm("teacher: 1\nweek: 2026-10-12\nschedule: tue", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, input.RepeatWeeks)
	assert.False(t, input.SkipStudentUpsert)
}

func TestParseBookingFormErrors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{"no colon", "teacher 1", "form"},
		{"unknown key", "teacher: 1\nweek: 2026-10-12\nschedule: mon\ncolor: red", "color"},
		{"duplicate key", "teacher: 1\nteacher: 2", "teacher"},
		{"bad teacher", "teacher: abc\nweek: 2026-10-12\nschedule: mon", "teacher"},
		{"bad week", "teacher: 1\nweek: 12/10/2026\nschedule: mon", "week"},
		{"empty schedule", "teacher: 1\nweek: 2026-10-12\nschedule:", "schedule"},
		{"bad day", "teacher: 1\nweek: 2026-10-12\nschedule: xyz 1", "schedule"},
		{"repeated day", "teacher: 1\nweek: 2026-10-12\nschedule: mon 1, monday 2", "schedule"},
		{"bad repeat", "teacher: 1\nweek: 2026-10-12\nschedule: mon\nrepeat: many", "repeat"},
		{"bad skip", "teacher: 1\nweek: 2026-10-12\nschedule: mon\nskip_student: maybe", "skip_student"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBookingForm(tt.text, time.UTC)
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrValidation)

			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
