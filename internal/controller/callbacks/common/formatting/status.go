package formatting

import "github.com/Freeeeeet/tutoring_office/internal/model"

// StatusDisplay представляет отображение статуса
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetSessionStatusDisplay возвращает emoji и текст для кода занятия
func GetSessionStatusDisplay(code model.SessionCode) StatusDisplay {
	displays := map[model.SessionCode]StatusDisplay{
		model.SessionCompleted:            {"✅", "Проведено"},
		model.SessionAdvance:              {"💳", "Оплачено заранее"},
		model.SessionPending:              {"⏳", "Ожидает"},
		model.SessionTeacherAbsent:        {"🚫", "Учитель отсутствовал"},
		model.SessionStudentAbsent:        {"🙈", "Ученик отсутствовал"},
		model.SessionAdvanceTeacherAbsent: {"💳🚫", "Оплачено, учитель отсутствовал"},
		model.SessionAdvanceStudentAbsent: {"💳🙈", "Оплачено, ученик отсутствовал"},
		model.SessionNone:                 {"➖", "Нет занятия"},
	}

	if display, ok := displays[code]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса брони
func GetBookingStatusDisplay(status model.BookingStatus) StatusDisplay {
	displays := map[model.BookingStatus]StatusDisplay{
		model.BookingStatusActive:    {"🟢", "Активна"},
		model.BookingStatusCompleted: {"✔️", "Завершена"},
		model.BookingStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetActivityDisplay возвращает emoji и текст для активности учителя или ученика
func GetActivityDisplay(status model.ActivityStatus) StatusDisplay {
	switch status {
	case model.ActivityActive:
		return StatusDisplay{"🟢", "Активен"}
	case model.ActivityInactive:
		return StatusDisplay{"💤", "Неактивен"}
	}
	return StatusDisplay{"❓", "Неизвестно"}
}
