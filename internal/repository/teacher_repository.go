package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teacherColumns = `id, name, email, contact_number, status, inactive_days, last_status_change,
	total_bookings, is_deleted, deleted_at, created_at, updated_at`

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

func scanTeacher(row rowScanner) (*model.Teacher, error) {
	var teacher model.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Email,
		&teacher.ContactNumber,
		&teacher.Status,
		&teacher.InactiveDays,
		&teacher.LastStatusChange,
		&teacher.TotalBookings,
		&teacher.IsDeleted,
		&teacher.DeletedAt,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create создаёт учителя
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (name, email, contact_number, status, last_status_change)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		teacher.Name,
		teacher.Email,
		teacher.ContactNumber,
		teacher.Status,
		teacher.LastStatusChange,
	).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает учителя по ID, включая удалённых
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE id = $1`

	teacher, err := scanTeacher(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return teacher, nil
}

// List получает всех неудалённых учителей
func (r *TeacherRepository) List(ctx context.Context) ([]*model.Teacher, error) {
	query := `SELECT ` + teacherColumns + ` FROM teachers WHERE is_deleted = false ORDER BY id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teachers: %w", err)
	}

	return teachers, nil
}

// AdjustBookingCount изменяет счётчик броней учителя на delta
func (r *TeacherRepository) AdjustBookingCount(ctx context.Context, id int64, delta int) error {
	query := `
		UPDATE teachers
		SET total_bookings = GREATEST(total_bookings + $1, 0), updated_at = now()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjust teacher booking count: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("adjust teacher booking count %d: %w", id, ErrNotFound)
	}

	return nil
}

// UpdateActivity сохраняет поля, которыми владеет сверка статусов
func (r *TeacherRepository) UpdateActivity(ctx context.Context, teacher *model.Teacher) error {
	query := `
		UPDATE teachers
		SET status = $1, inactive_days = $2, last_status_change = $3, updated_at = now()
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, teacher.Status, teacher.InactiveDays, teacher.LastStatusChange, teacher.ID)
	if err != nil {
		return fmt.Errorf("update teacher activity: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update teacher activity %d: %w", teacher.ID, ErrNotFound)
	}

	return nil
}

// SoftDelete помечает учителя удалённым
func (r *TeacherRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE teachers
		SET is_deleted = true, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND is_deleted = false
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("delete teacher %d: %w", id, ErrNotFound)
	}

	return nil
}
