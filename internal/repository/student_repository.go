package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentColumns = `id, student_name, parent_name, parent_fb_name, grade, contact_number, email,
	assigned_teacher_id, status, inactive_days, last_status_change, is_deleted, created_at, updated_at`

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

func scanStudent(row rowScanner) (*model.Student, error) {
	var student model.Student
	err := row.Scan(
		&student.ID,
		&student.StudentName,
		&student.ParentName,
		&student.ParentFbName,
		&student.Grade,
		&student.ContactNumber,
		&student.Email,
		&student.AssignedTeacherID,
		&student.Status,
		&student.InactiveDays,
		&student.LastStatusChange,
		&student.IsDeleted,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByIdentity ищет неудалённого ученика по точному совпадению имён без учёта регистра
func (r *StudentRepository) FindByIdentity(ctx context.Context, studentName, parentFbName string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + `
		FROM students
		WHERE lower(student_name) = lower($1)
		  AND lower(parent_fb_name) = lower($2)
		  AND is_deleted = false
		ORDER BY id
		LIMIT 1
	`

	student, err := scanStudent(r.QueryRow(ctx, query, studentName, parentFbName))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	return student, nil
}

// Create создаёт ученика
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (student_name, parent_name, parent_fb_name, grade, contact_number, email,
			assigned_teacher_id, status, last_status_change)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		student.StudentName,
		student.ParentName,
		student.ParentFbName,
		student.Grade,
		student.ContactNumber,
		student.Email,
		student.AssignedTeacherID,
		student.Status,
		student.LastStatusChange,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// UpdateFromBooking перезаписывает данные ученика из новой брони
func (r *StudentRepository) UpdateFromBooking(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET parent_name = $1, grade = $2, contact_number = $3, email = $4,
			assigned_teacher_id = $5, status = $6, inactive_days = $7, last_status_change = $8,
			updated_at = now()
		WHERE id = $9
	`

	affected, err := r.ExecAffected(
		ctx, query,
		student.ParentName,
		student.Grade,
		student.ContactNumber,
		student.Email,
		student.AssignedTeacherID,
		student.Status,
		student.InactiveDays,
		student.LastStatusChange,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update student %d: %w", student.ID, ErrNotFound)
	}

	return nil
}

// List получает всех неудалённых учеников
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE is_deleted = false ORDER BY id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// UpdateActivity сохраняет поля, которыми владеет сверка статусов
func (r *StudentRepository) UpdateActivity(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET status = $1, inactive_days = $2, last_status_change = $3, assigned_teacher_id = $4, updated_at = now()
		WHERE id = $5
	`

	affected, err := r.ExecAffected(
		ctx, query,
		student.Status,
		student.InactiveDays,
		student.LastStatusChange,
		student.AssignedTeacherID,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("update student activity: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update student activity %d: %w", student.ID, ErrNotFound)
	}

	return nil
}
