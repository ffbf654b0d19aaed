package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, teacher_id, student_name, parent_name, parent_fb_name, grade, subject,
	contact_number, email, week_start_date, week_end_date, weekly_schedule, session_status,
	total_earnings_per_week, status, is_deleted, deleted_at, created_at, updated_at`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.TeacherID,
		&booking.StudentName,
		&booking.ParentName,
		&booking.ParentFbName,
		&booking.Grade,
		&booking.Subject,
		&booking.ContactNumber,
		&booking.Email,
		&booking.WeekStartDate,
		&booking.WeekEndDate,
		&booking.WeeklySchedule,
		&booking.SessionStatus,
		&booking.TotalEarningsPerWeek,
		&booking.Status,
		&booking.IsDeleted,
		&booking.DeletedAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.WeeklySchedule = booking.WeeklySchedule.Normalize()
	return &booking, nil
}

// Create сохраняет новую бронь
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, teacher_id, student_name, parent_name, parent_fb_name, grade, subject,
			contact_number, email, week_start_date, week_end_date, weekly_schedule, session_status,
			total_earnings_per_week, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.ID,
		booking.TeacherID,
		booking.StudentName,
		booking.ParentName,
		booking.ParentFbName,
		booking.Grade,
		booking.Subject,
		booking.ContactNumber,
		booking.Email,
		booking.WeekStartDate,
		booking.WeekEndDate,
		booking.WeeklySchedule,
		booking.SessionStatus,
		booking.TotalEarningsPerWeek,
		booking.Status,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронь по ID, включая удалённые
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListByTeacher получает все неудалённые брони учителя, без фильтра по датам
func (r *BookingRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE teacher_id = $1 AND is_deleted = false
		ORDER BY week_start_date, created_at
	`

	rows, err := r.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by teacher: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// UpdateSessionStatus атомарно перезаписывает статусы дней
func (r *BookingRepository) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error {
	query := `
		UPDATE bookings
		SET session_status = $1, updated_at = now()
		WHERE id = $2 AND is_deleted = false
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update session status %s: %w", id, ErrNotFound)
	}

	return nil
}

// UpdateStatus обновляет статус брони целиком
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND is_deleted = false
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update booking status %s: %w", id, ErrNotFound)
	}

	return nil
}

// SoftDelete помечает бронь удалённой
func (r *BookingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET is_deleted = true, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND is_deleted = false
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("delete booking %s: %w", id, ErrNotFound)
	}

	return nil
}

// HasActiveForTeacher есть ли у учителя активная бронь, пересекающая [from, to]
func (r *BookingRepository) HasActiveForTeacher(ctx context.Context, teacherID int64, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE teacher_id = $1
			  AND status = 'active'
			  AND is_deleted = false
			  AND week_start_date <= $3
			  AND week_end_date >= $2
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, teacherID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("check teacher bookings: %w", err)
	}

	return exists, nil
}

// HasActiveForStudent то же для ученика, сопоставление по именам без учёта регистра
func (r *BookingRepository) HasActiveForStudent(ctx context.Context, studentName, parentFbName string, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE lower(student_name) = lower($1)
			  AND lower(parent_fb_name) = lower($2)
			  AND status = 'active'
			  AND is_deleted = false
			  AND week_start_date <= $4
			  AND week_end_date >= $3
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, studentName, parentFbName, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("check student bookings: %w", err)
	}

	return exists, nil
}
