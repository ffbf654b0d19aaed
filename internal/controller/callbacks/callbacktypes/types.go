package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/service"
	"go.uber.org/zap"
)

// StateManager диалоги ведут handlers, кнопки могут только сбросить диалог
type StateManager interface {
	ClearState(telegramID int64)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	BookingService   *service.BookingService
	ScheduleService  *service.ScheduleService
	DirectoryService *service.DirectoryService
	StateManager     StateManager
	Location         *time.Location
	Logger           *zap.Logger
}
