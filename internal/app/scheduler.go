package app

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/service"
	"go.uber.org/zap"
)

// Reconciler запуск сверки статусов
type Reconciler interface {
	Reconcile(ctx context.Context) (service.ReconcileResult, error)
}

// Scheduler запускает сверку при старте и затем раз в сутки в заданный час;
// запуск в понедельник помечается как недельный
type Scheduler struct {
	reconciler Reconciler
	location   *time.Location
	hour       int
	interval   time.Duration
	now        func() time.Time
	logger     *zap.Logger
	stopChan   chan struct{}

	// lastRun день последнего планового запуска
	lastRun time.Time
}

// NewScheduler создаёт новый планировщик
func NewScheduler(reconciler Reconciler, location *time.Location, hour int, interval time.Duration, logger *zap.Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		reconciler: reconciler,
		location:   location,
		hour:       hour,
		interval:   interval,
		now:        time.Now,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Run блокирует до отмены ctx или вызова Stop
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Starting reconciliation scheduler",
		zap.Int("hour", s.hour),
		zap.String("timezone", s.location.String()),
	)

	// Первый запуск сразу при старте
	s.runStartup(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-s.stopChan:
			s.logger.Info("Reconciliation scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reconciliation scheduler cancelled")
			return
		}
	}
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping reconciliation scheduler")
	close(s.stopChan)
}

func (s *Scheduler) runStartup(ctx context.Context) {
	now := s.now().In(s.location)
	// стартовый запуск после планового часа засчитывается за сегодня
	if now.Hour() >= s.hour {
		s.lastRun = model.StartOfDay(now)
	}
	s.reconcile(ctx, "startup")
}

// tick запускает плановую сверку, если час настал и сегодня её ещё не было
func (s *Scheduler) tick(ctx context.Context) bool {
	now := s.now().In(s.location)
	today := model.StartOfDay(now)

	if now.Hour() < s.hour || !s.lastRun.Before(today) {
		return false
	}
	s.lastRun = today

	trigger := "daily"
	if model.WeekdayOf(now) == model.Monday {
		trigger = "weekly"
	}
	s.reconcile(ctx, trigger)
	return true
}

func (s *Scheduler) reconcile(ctx context.Context, trigger string) {
	s.logger.Info("Starting status reconciliation", zap.String("trigger", trigger))

	result, err := s.reconciler.Reconcile(ctx)
	switch {
	case errors.Is(err, service.ErrReconcileInProgress):
		s.logger.Warn("Status reconciliation skipped", zap.String("trigger", trigger))
	case err != nil:
		s.logger.Error("Status reconciliation failed",
			zap.String("trigger", trigger),
			zap.Error(err),
		)
	default:
		s.logger.Info("Status reconciliation completed",
			zap.String("trigger", trigger),
			zap.Int("teachers_updated", result.TeachersUpdated),
			zap.Int("students_updated", result.StudentsUpdated),
			zap.Int("failed", result.Failed),
		)
	}
}
