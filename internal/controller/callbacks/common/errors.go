package common

import (
	"errors"

	"github.com/Freeeeeet/tutoring_office/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNotOperator   = errors.New("user is not an operator")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		return "❌ Неверные данные: " + verr.Error()
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Бронь не найдена"
	case errors.Is(err, service.ErrTeacherNotFound):
		return "❌ Учитель не найден"
	case errors.Is(err, service.ErrReconcileInProgress):
		return "⏳ Сверка уже выполняется, попробуйте позже"
	case errors.Is(err, ErrNotOperator):
		return "⛔️ Консоль доступна только операторам"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
