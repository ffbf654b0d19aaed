package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/metrics"
	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/rates"
	"github.com/Freeeeeet/tutoring_office/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxRepeatWeeks ограничение на число недель, создаваемых одной заявкой
const MaxRepeatWeeks = 12

// CreateBookingInput данные для создания брони
type CreateBookingInput struct {
	TeacherID     int64
	StudentName   string
	ParentName    string
	ParentFbName  string
	Grade         string
	Subject       string
	ContactNumber string
	Email         string

	WeeklySchedule model.WeeklySchedule
	WeekStartDate  time.Time

	// RepeatWeeks сколько недель подряд создать, начиная с WeekStartDate (0 и 1 означают одну)
	RepeatWeeks int

	// SkipStudentUpsert не трогать карточку ученика
	SkipStudentUpsert bool
}

// DayStatusInput новый статус дня при полной пересдаче недели
type DayStatusInput struct {
	Status model.SessionCode
	Date   *time.Time
}

type BookingService struct {
	tx       Transactor
	bookings BookingStore
	teachers TeacherStore
	students StudentStore
	location *time.Location
	now      func() time.Time
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewBookingService(
	tx Transactor,
	bookings BookingStore,
	teachers TeacherStore,
	students StudentStore,
	location *time.Location,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BookingService {
	if location == nil {
		location = time.UTC
	}
	return &BookingService{
		tx:       tx,
		bookings: bookings,
		teachers: teachers,
		students: students,
		location: location,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// CreateBooking создаёт недельную бронь (или несколько подряд), обновляет карточку ученика
// и счётчик броней учителя в одной транзакции
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) ([]*model.Booking, error) {
	input = trimInput(input)

	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	schedule := input.WeeklySchedule.Normalize()
	total := 0
	for _, day := range schedule.ScheduledDays() {
		split, err := rates.Lookup(schedule[day].Duration)
		if err != nil {
			return nil, invalid("weekly_schedule."+string(day), "%v", err)
		}
		total += split.Total
	}

	weekStart := model.StartOfDay(inLocation(input.WeekStartDate, s.location))
	if model.WeekdayOf(weekStart) != model.Monday {
		return nil, invalid("week_start_date", "%s is a %s, week must start on monday",
			weekStart.Format("2006-01-02"), model.WeekdayOf(weekStart))
	}

	repeat := input.RepeatWeeks
	if repeat <= 0 {
		repeat = 1
	}

	teacher, err := s.teachers.GetByID(ctx, input.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil || teacher.IsDeleted {
		return nil, ErrTeacherNotFound
	}

	created := make([]*model.Booking, 0, repeat)

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for i := 0; i < repeat; i++ {
			booking := newBooking(input, schedule, weekStart.AddDate(0, 0, 7*i), total)
			if err := s.bookings.Create(ctx, booking); err != nil {
				return fmt.Errorf("create booking: %w", err)
			}
			created = append(created, booking)
		}

		if !input.SkipStudentUpsert {
			if err := s.upsertStudent(ctx, input); err != nil {
				return fmt.Errorf("upsert student: %w", err)
			}
		}

		if err := s.teachers.AdjustBookingCount(ctx, input.TeacherID, len(created)); err != nil {
			return fmt.Errorf("increment teacher bookings: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncBookingsCreated(len(created))

	s.logger.Info("Booking created",
		zap.String("booking_id", created[0].ID.String()),
		zap.Int64("teacher_id", input.TeacherID),
		zap.String("student", input.StudentName),
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("weeks", len(created)),
		zap.Int("total_per_week", total),
	)

	return created, nil
}

func newBooking(input CreateBookingInput, schedule model.WeeklySchedule, weekStart time.Time, total int) *model.Booking {
	booking := &model.Booking{
		ID:                   uuid.New(),
		TeacherID:            input.TeacherID,
		StudentName:          input.StudentName,
		ParentName:           input.ParentName,
		ParentFbName:         input.ParentFbName,
		Grade:                input.Grade,
		Subject:              input.Subject,
		ContactNumber:        input.ContactNumber,
		Email:                input.Email,
		WeekStartDate:        weekStart,
		WeekEndDate:          model.EndOfWeek(weekStart),
		WeeklySchedule:       schedule,
		TotalEarningsPerWeek: total,
		Status:               model.BookingStatusActive,
	}
	booking.InitSessionStatus()
	return booking
}

// upsertStudent создаёт ученика или переписывает его данные и делает активным
func (s *BookingService) upsertStudent(ctx context.Context, input CreateBookingInput) error {
	student, err := s.students.FindByIdentity(ctx, input.StudentName, input.ParentFbName)
	if err != nil {
		return err
	}

	teacherID := input.TeacherID
	now := s.now()

	if student == nil {
		return s.students.Create(ctx, &model.Student{
			StudentName:       input.StudentName,
			ParentName:        input.ParentName,
			ParentFbName:      input.ParentFbName,
			Grade:             input.Grade,
			ContactNumber:     input.ContactNumber,
			Email:             input.Email,
			AssignedTeacherID: &teacherID,
			Status:            model.ActivityActive,
			LastStatusChange:  &now,
		})
	}

	if input.ParentName != "" {
		student.ParentName = input.ParentName
	}
	student.Grade = input.Grade
	student.ContactNumber = input.ContactNumber
	student.Email = input.Email
	student.AssignedTeacherID = &teacherID

	if !student.IsActive() {
		student.Status = model.ActivityActive
		student.InactiveDays = 0
		student.LastStatusChange = &now
	}

	return s.students.UpdateFromBooking(ctx, student)
}

// GetBooking возвращает бронь, удалённые считаются отсутствующими
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil || booking.IsDeleted {
		return nil, ErrBookingNotFound
	}
	booking.Localize(s.location)
	return booking, nil
}

// ListTeacherBookings возвращает неудалённые брони учителя
func (s *BookingService) ListTeacherBookings(ctx context.Context, teacherID int64) ([]*model.Booking, error) {
	bookings, err := s.bookings.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	for _, booking := range bookings {
		booking.Localize(s.location)
	}
	return bookings, nil
}

// UpdateSessionStatus принимает статусы всех семи дней недели и применяет их к брони
func (s *BookingService) UpdateSessionStatus(ctx context.Context, id uuid.UUID, week map[model.Weekday]DayStatusInput) (*model.Booking, error) {
	for _, day := range model.Weekdays {
		if _, ok := week[day]; !ok {
			return nil, invalid("session_status."+string(day), "missing")
		}
	}
	for day := range week {
		if !day.Valid() {
			return nil, invalid("session_status", "unknown weekday %q", day)
		}
	}

	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	before := booking.SessionStatus.Clone()
	for _, day := range model.Weekdays {
		in := week[day]
		if err := booking.ApplyStatus(day, in.Status, in.Date); err != nil {
			return nil, statusError(day, err)
		}
	}

	if err := s.saveSessionStatus(ctx, booking); err != nil {
		return nil, err
	}

	for _, day := range model.Weekdays {
		if before[day].Status != booking.SessionStatus[day].Status {
			s.metrics.IncStatusUpdate(string(booking.SessionStatus[day].Status))
		}
	}

	s.logger.Info("Session status updated",
		zap.String("booking_id", id.String()),
	)

	return booking, nil
}

// SetDayStatus меняет статус одного дня
func (s *BookingService) SetDayStatus(ctx context.Context, id uuid.UUID, day model.Weekday, code model.SessionCode, date *time.Time) (*model.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := booking.SessionStatus[day].Status
	if err := booking.ApplyStatus(day, code, date); err != nil {
		return nil, statusError(day, err)
	}

	if err := s.saveSessionStatus(ctx, booking); err != nil {
		return nil, err
	}

	s.metrics.IncStatusUpdate(string(code))

	s.logger.Info("Day status updated",
		zap.String("booking_id", id.String()),
		zap.String("day", string(day)),
		zap.String("from", string(previous)),
		zap.String("to", string(code)),
	)

	return booking, nil
}

func (s *BookingService) saveSessionStatus(ctx context.Context, booking *model.Booking) error {
	err := s.bookings.UpdateSessionStatus(ctx, booking.ID, booking.SessionStatus)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("save session status: %w", err)
	}
	return nil
}

// SetBookingStatus меняет статус всей брони
func (s *BookingService) SetBookingStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	if !status.Valid() {
		return invalid("status", "unknown booking status %q", status)
	}

	err := s.bookings.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	s.logger.Info("Booking status updated",
		zap.String("booking_id", id.String()),
		zap.String("status", string(status)),
	)

	return nil
}

// DeleteBooking мягко удаляет бронь и уменьшает счётчик учителя
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.bookings.SoftDelete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("delete booking: %w", err)
		}

		if err := s.teachers.AdjustBookingCount(ctx, booking.TeacherID, -1); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("decrement teacher bookings: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Booking deleted",
		zap.String("booking_id", id.String()),
		zap.Int64("teacher_id", booking.TeacherID),
	)

	return nil
}

func validateBookingInput(input CreateBookingInput) error {
	if input.TeacherID <= 0 {
		return invalid("teacher_id", "required")
	}

	required := []struct {
		field string
		value string
	}{
		{"student_name", input.StudentName},
		{"parent_fb_name", input.ParentFbName},
		{"grade", input.Grade},
		{"subject", input.Subject},
	}
	for _, r := range required {
		if r.value == "" {
			return invalid(r.field, "required")
		}
	}

	if input.WeekStartDate.IsZero() {
		return invalid("week_start_date", "required")
	}

	for day := range input.WeeklySchedule {
		if !day.Valid() {
			return invalid("weekly_schedule", "unknown weekday %q", day)
		}
	}
	if len(input.WeeklySchedule.ScheduledDays()) == 0 {
		return invalid("weekly_schedule", "at least one day must be scheduled")
	}

	if input.RepeatWeeks > MaxRepeatWeeks {
		return invalid("repeat_weeks", "at most %d weeks", MaxRepeatWeeks)
	}

	return nil
}

func trimInput(input CreateBookingInput) CreateBookingInput {
	input.StudentName = strings.TrimSpace(input.StudentName)
	input.ParentName = strings.TrimSpace(input.ParentName)
	input.ParentFbName = strings.TrimSpace(input.ParentFbName)
	input.Grade = strings.TrimSpace(input.Grade)
	input.Subject = strings.TrimSpace(input.Subject)
	input.ContactNumber = strings.TrimSpace(input.ContactNumber)
	input.Email = strings.TrimSpace(input.Email)
	return input
}

// statusError переводит ошибки модели в ошибки валидации
func statusError(day model.Weekday, err error) error {
	switch {
	case errors.Is(err, model.ErrUnknownWeekday),
		errors.Is(err, model.ErrUnknownCode),
		errors.Is(err, model.ErrDayNotScheduled),
		errors.Is(err, model.ErrDateOutsideWeek):
		return invalid("session_status."+string(day), "%v", err)
	}
	return err
}

// inLocation переводит дату в зону агентства, сохраняя календарный день
func inLocation(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
