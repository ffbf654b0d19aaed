package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/controller/state"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"go.uber.org/zap"
)

// Reconciler запуск сверки статусов по команде оператора
type Reconciler interface {
	Reconcile(ctx context.Context) (service.ReconcileResult, error)
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookingService   *service.BookingService
	scheduleService  *service.ScheduleService
	directoryService *service.DirectoryService
	reconciler       Reconciler
	stateManager     *state.Manager
	location         *time.Location
	logger           *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	directoryService *service.DirectoryService,
	reconciler Reconciler,
	stateManager *state.Manager,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService:   bookingService,
		scheduleService:  scheduleService,
		directoryService: directoryService,
		reconciler:       reconciler,
		stateManager:     stateManager,
		location:         location,
		logger:           logger,
	}
}
