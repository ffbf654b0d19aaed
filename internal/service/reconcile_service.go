package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/lock"
	"github.com/Freeeeeet/tutoring_office/internal/metrics"
	"github.com/Freeeeeet/tutoring_office/internal/model"
	"go.uber.org/zap"
)

// ReconcileResult итог прохода сверки
type ReconcileResult struct {
	TeachersUpdated int
	StudentsUpdated int

	// Failed записи, которые не удалось обработать
	Failed int
}

// ReconcileService пересчитывает активность учителей и учеников по броням текущей недели
type ReconcileService struct {
	bookings BookingStore
	teachers TeacherStore
	students StudentStore
	locker   lock.Locker
	location *time.Location
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewReconcileService(
	bookings BookingStore,
	teachers TeacherStore,
	students StudentStore,
	locker lock.Locker,
	location *time.Location,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReconcileService {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if location == nil {
		location = time.UTC
	}
	return &ReconcileService{
		bookings: bookings,
		teachers: teachers,
		students: students,
		locker:   locker,
		location: location,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// Reconcile обходит всех неудалённых учителей, затем учеников.
// Ошибка по одной записи не останавливает проход; отмена контекста останавливает его между записями.
func (s *ReconcileService) Reconcile(ctx context.Context) (ReconcileResult, error) {
	var result ReconcileResult

	release, err := s.locker.TryAcquire(ctx)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			s.metrics.IncReconcileSkipped()
			s.logger.Warn("Reconciliation skipped, previous run still in progress")
			return result, ErrReconcileInProgress
		}
		return result, fmt.Errorf("acquire reconcile lock: %w", err)
	}
	defer release()

	started := time.Now()
	now := s.now().In(s.location)
	weekStart := model.StartOfWeek(now)
	weekEnd := model.EndOfWeek(weekStart)

	var teacherFailures, studentFailures int
	finish := func(outcome string, err error) (ReconcileResult, error) {
		result.Failed = teacherFailures + studentFailures
		s.metrics.ObserveReconcile(outcome, result.TeachersUpdated, result.StudentsUpdated,
			teacherFailures, studentFailures, time.Since(started))
		return result, err
	}

	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return finish("error", fmt.Errorf("list teachers: %w", err))
	}

	for _, teacher := range teachers {
		if err := ctx.Err(); err != nil {
			return finish("cancelled", err)
		}

		changed, err := s.reconcileTeacher(ctx, teacher, now, weekStart, weekEnd)
		if err != nil {
			teacherFailures++
			s.logger.Error("Failed to reconcile teacher",
				zap.Int64("teacher_id", teacher.ID),
				zap.Error(err),
			)
			continue
		}
		if changed {
			result.TeachersUpdated++
		}
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return finish("error", fmt.Errorf("list students: %w", err))
	}

	for _, student := range students {
		if err := ctx.Err(); err != nil {
			return finish("cancelled", err)
		}

		changed, err := s.reconcileStudent(ctx, student, now, weekStart, weekEnd)
		if err != nil {
			studentFailures++
			s.logger.Error("Failed to reconcile student",
				zap.Int64("student_id", student.ID),
				zap.Error(err),
			)
			continue
		}
		if changed {
			result.StudentsUpdated++
		}
	}

	outcome := "ok"
	if teacherFailures+studentFailures > 0 {
		outcome = "partial"
	}

	s.logger.Info("Reconciliation completed",
		zap.Int("teachers_updated", result.TeachersUpdated),
		zap.Int("students_updated", result.StudentsUpdated),
		zap.Int("failed", teacherFailures+studentFailures),
		zap.Duration("took", time.Since(started)),
	)

	return finish(outcome, nil)
}

func (s *ReconcileService) reconcileTeacher(ctx context.Context, teacher *model.Teacher, now, weekStart, weekEnd time.Time) (bool, error) {
	hasBooking, err := s.bookings.HasActiveForTeacher(ctx, teacher.ID, weekStart, weekEnd)
	if err != nil {
		return false, err
	}

	next, changed := nextActivity(activityOf(teacher.Status, teacher.InactiveDays, teacher.LastStatusChange), hasBooking, now)
	if !changed {
		return false, nil
	}

	teacher.Status = next.status
	teacher.InactiveDays = next.inactiveDays
	teacher.LastStatusChange = next.lastStatusChange

	if err := s.teachers.UpdateActivity(ctx, teacher); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ReconcileService) reconcileStudent(ctx context.Context, student *model.Student, now, weekStart, weekEnd time.Time) (bool, error) {
	hasBooking, err := s.bookings.HasActiveForStudent(ctx, student.StudentName, student.ParentFbName, weekStart, weekEnd)
	if err != nil {
		return false, err
	}

	next, changed := nextActivity(activityOf(student.Status, student.InactiveDays, student.LastStatusChange), hasBooking, now)
	if !changed {
		return false, nil
	}

	if student.IsActive() && next.status == model.ActivityInactive {
		student.AssignedTeacherID = nil
	}
	student.Status = next.status
	student.InactiveDays = next.inactiveDays
	student.LastStatusChange = next.lastStatusChange

	if err := s.students.UpdateActivity(ctx, student); err != nil {
		return false, err
	}
	return true, nil
}

type activity struct {
	status           model.ActivityStatus
	inactiveDays     int
	lastStatusChange *time.Time
}

func activityOf(status model.ActivityStatus, inactiveDays int, last *time.Time) activity {
	return activity{status: status, inactiveDays: inactiveDays, lastStatusChange: last}
}

// nextActivity вычисляет новое состояние активности и нужна ли запись.
// Счётчик неактивных дней начинается с 1 в день перехода и дальше растёт на полных сутках.
func nextActivity(cur activity, hasBooking bool, now time.Time) (activity, bool) {
	target := model.ActivityInactive
	if hasBooking {
		target = model.ActivityActive
	}

	if cur.status != target {
		changedAt := now
		next := activity{status: target, lastStatusChange: &changedAt}
		if target == model.ActivityInactive {
			next.inactiveDays = 1
		}
		return next, true
	}

	if target == model.ActivityActive {
		return cur, false
	}

	next := cur
	if next.lastStatusChange == nil {
		changedAt := now
		next.lastStatusChange = &changedAt
	}

	days := int(now.Sub(*next.lastStatusChange) / (24 * time.Hour))
	// не меньше 1, как при переходе в inactive: иначе повторный прогон в тот же день перезаписал бы 1 на 0
	if days < 1 {
		days = 1
	}
	next.inactiveDays = days

	changed := next.inactiveDays != cur.inactiveDays || cur.lastStatusChange == nil
	return next, changed
}
