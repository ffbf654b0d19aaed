package state

import "time"

// UserState представляет текущее состояние оператора в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Ввод анкеты новой брони
	StateNewBookingForm UserState = "new_booking_form"

	// Ввод данных нового учителя
	StateAddTeacher UserState = "add_teacher"
)

// UserData хранит временные данные оператора во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{} // Временные данные для текущего диалога
	UpdatedAt time.Time
}
