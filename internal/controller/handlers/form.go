package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
)

// Ключи анкеты новой брони
const (
	formTeacher     = "teacher"
	formStudent     = "student"
	formParent      = "parent"
	formParentFb    = "parent_fb"
	formGrade       = "grade"
	formSubject     = "subject"
	formContact     = "contact"
	formEmail       = "email"
	formWeek        = "week"
	formSchedule    = "schedule"
	formRepeat      = "repeat"
	formSkipStudent = "skip_student"
)

// BookingFormTemplate шаблон, который оператор копирует и заполняет
const BookingFormTemplate = formTeacher + ": 1\n" +
	formStudent + ": Имя ученика\n" +
	formParent + ": Имя родителя\n" +
	formParentFb + ": \n" +
	formGrade + ": 7\n" +
	formSubject + ": Математика\n" +
	formContact + ": +79990000000\n" +
	formEmail + ": \n" +
	formWeek + ": 2026-01-05\n" +
	formSchedule + ": mon 1, wed 1.5\n" +
	formRepeat + ": 1\n" +
	formSkipStudent + ": no"

var dateLayouts = []string{"2006-01-02", "02.01.2006"}

// ParseBookingForm разбирает анкету вида "ключ: значение" построчно
// Проверку обязательных полей и ставок выполняет BookingService
func ParseBookingForm(text string, loc *time.Location) (service.CreateBookingInput, error) {
	var input service.CreateBookingInput

	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return input, formError("form", "строка %q без двоеточия", line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, dup := fields[key]; dup {
			return input, formError(key, "поле указано дважды")
		}
		fields[key] = strings.TrimSpace(value)
	}

	for key := range fields {
		if !knownFormKey(key) {
			return input, formError(key, "неизвестное поле")
		}
	}

	teacherID, err := strconv.ParseInt(fields[formTeacher], 10, 64)
	if err != nil || teacherID <= 0 {
		return input, formError(formTeacher, "ожидается ID учителя")
	}

	weekStart, err := parseFormDate(fields[formWeek], loc)
	if err != nil {
		return input, formError(formWeek, "ожидается дата 2006-01-02 или 02.01.2006")
	}

	schedule, err := ParseWeeklySchedule(fields[formSchedule])
	if err != nil {
		return input, formError(formSchedule, "%v", err)
	}

	repeat := 1
	if raw := fields[formRepeat]; raw != "" {
		if repeat, err = strconv.Atoi(raw); err != nil {
			return input, formError(formRepeat, "ожидается число недель")
		}
	}

	skip, err := parseYesNo(fields[formSkipStudent])
	if err != nil {
		return input, formError(formSkipStudent, "ожидается yes или no")
	}

	input = service.CreateBookingInput{
		TeacherID:         teacherID,
		StudentName:       fields[formStudent],
		ParentName:        fields[formParent],
		ParentFbName:      fields[formParentFb],
		Grade:             fields[formGrade],
		Subject:           fields[formSubject],
		ContactNumber:     fields[formContact],
		Email:             fields[formEmail],
		WeeklySchedule:    schedule,
		WeekStartDate:     weekStart,
		RepeatWeeks:       repeat,
		SkipStudentUpsert: skip,
	}
	return input, nil
}

// ParseWeeklySchedule разбирает "mon 1, wed 1.5" в недельное расписание
// Длительность можно опустить, тогда берётся час
func ParseWeeklySchedule(raw string) (model.WeeklySchedule, error) {
	schedule := make(model.WeeklySchedule, len(model.Weekdays))
	for _, day := range model.Weekdays {
		schedule[day] = model.DaySchedule{}
	}

	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("не указан ни один день")
	}

	for _, item := range strings.Split(raw, ",") {
		parts := strings.Fields(item)
		if len(parts) == 0 || len(parts) > 2 {
			return nil, fmt.Errorf("не удалось разобрать %q", strings.TrimSpace(item))
		}

		day, err := model.ParseWeekday(parts[0])
		if err != nil {
			return nil, fmt.Errorf("неизвестный день %q", parts[0])
		}
		if schedule[day].IsScheduled {
			return nil, fmt.Errorf("день %s указан дважды", day)
		}

		duration := model.DefaultDuration
		if len(parts) == 2 {
			duration, err = strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("неверная длительность %q", parts[1])
			}
		}

		schedule[day] = model.DaySchedule{IsScheduled: true, Duration: duration}
	}

	return schedule, nil
}

func parseFormDate(raw string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "no", "нет", "false", "0":
		return false, nil
	case "yes", "да", "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("unexpected value %q", raw)
}

func knownFormKey(key string) bool {
	switch key {
	case formTeacher, formStudent, formParent, formParentFb, formGrade, formSubject,
		formContact, formEmail, formWeek, formSchedule, formRepeat, formSkipStudent:
		return true
	}
	return false
}

func formError(field, format string, args ...any) error {
	return &service.ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
