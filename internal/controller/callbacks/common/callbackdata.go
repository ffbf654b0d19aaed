package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"github.com/google/uuid"
)

// Форматы callback data консоли
const (
	PrefixSchedule      = "sch:"    // sch:teacher_id:mode:offset
	PrefixExport        = "exp:"    // exp:teacher_id:mode:offset
	PrefixBooking       = "bk:"     // bk:booking_id
	PrefixDay           = "bd:"     // bd:booking_id:weekday
	PrefixCode          = "bc:"     // bc:booking_id:weekday:code
	PrefixDelete        = "bdel:"   // bdel:booking_id
	PrefixDeleteConfirm = "bdelok:" // bdelok:booking_id
	PrefixCancelDialog  = "cancel"
	Noop                = "noop"
)

// ScheduleData callback для экрана расписания или выгрузки
func ScheduleData(prefix string, teacherID int64, mode service.PeriodMode, offset int) string {
	return fmt.Sprintf("%s%d:%s:%d", prefix, teacherID, mode, offset)
}

// ParseScheduleData разбирает sch:/exp: callback
func ParseScheduleData(data string) (int64, service.PeriodMode, int, error) {
	parts := splitPayload(data)
	if len(parts) != 3 {
		return 0, "", 0, ErrInvalidFormat
	}

	teacherID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", 0, ErrInvalidFormat
	}
	mode, err := service.ParsePeriodMode(parts[1])
	if err != nil {
		return 0, "", 0, ErrInvalidFormat
	}
	offset, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, "", 0, ErrInvalidFormat
	}
	return teacherID, mode, offset, nil
}

// BookingData callback с одним ID брони
func BookingData(prefix string, id uuid.UUID) string {
	return prefix + id.String()
}

// ParseBookingData разбирает callback с одним ID брони
func ParseBookingData(data string) (uuid.UUID, error) {
	parts := splitPayload(data)
	if len(parts) != 1 {
		return uuid.Nil, ErrInvalidFormat
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, ErrInvalidFormat
	}
	return id, nil
}

// DayData callback выбора дня брони
func DayData(id uuid.UUID, day model.Weekday) string {
	return fmt.Sprintf("%s%s:%s", PrefixDay, id, day)
}

// ParseDayData разбирает bd: callback
func ParseDayData(data string) (uuid.UUID, model.Weekday, error) {
	parts := splitPayload(data)
	if len(parts) != 2 {
		return uuid.Nil, "", ErrInvalidFormat
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, "", ErrInvalidFormat
	}
	day := model.Weekday(parts[1])
	if !day.Valid() {
		return uuid.Nil, "", ErrInvalidFormat
	}
	return id, day, nil
}

// CodeData callback установки кода занятия
func CodeData(id uuid.UUID, day model.Weekday, code model.SessionCode) string {
	return fmt.Sprintf("%s%s:%s:%s", PrefixCode, id, day, code)
}

// ParseCodeData разбирает bc: callback
func ParseCodeData(data string) (uuid.UUID, model.Weekday, model.SessionCode, error) {
	parts := splitPayload(data)
	if len(parts) != 3 {
		return uuid.Nil, "", "", ErrInvalidFormat
	}
	id, day, err := ParseDayData(PrefixDay + parts[0] + ":" + parts[1])
	if err != nil {
		return uuid.Nil, "", "", err
	}
	code, err := model.ParseSessionCode(parts[2])
	if err != nil {
		return uuid.Nil, "", "", ErrInvalidFormat
	}
	return id, day, code, nil
}

// splitPayload отбрасывает префикс до первого двоеточия
func splitPayload(data string) []string {
	idx := strings.Index(data, ":")
	if idx < 0 {
		return nil
	}
	return strings.Split(data[idx+1:], ":")
}
