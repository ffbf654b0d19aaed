package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/repository"
	"go.uber.org/zap"
)

// DirectoryService справочники учителей и учеников
type DirectoryService struct {
	teachers TeacherStore
	students StudentStore
	now      func() time.Time
	logger   *zap.Logger
}

func NewDirectoryService(teachers TeacherStore, students StudentStore, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		teachers: teachers,
		students: students,
		now:      time.Now,
		logger:   logger,
	}
}

// CreateTeacher добавляет учителя, новый учитель считается активным
func (s *DirectoryService) CreateTeacher(ctx context.Context, name, email, contact string) (*model.Teacher, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	contact = strings.TrimSpace(contact)

	if name == "" {
		return nil, invalid("name", "required")
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, invalid("email", "invalid address %q", email)
		}
	}

	now := s.now()
	teacher := &model.Teacher{
		Name:             name,
		Email:            email,
		ContactNumber:    contact,
		Status:           model.ActivityActive,
		LastStatusChange: &now,
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("create teacher: %w", err)
	}

	s.logger.Info("Teacher created",
		zap.Int64("teacher_id", teacher.ID),
		zap.String("name", teacher.Name),
	)

	return teacher, nil
}

// GetTeacher возвращает неудалённого учителя
func (s *DirectoryService) GetTeacher(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil || teacher.IsDeleted {
		return nil, ErrTeacherNotFound
	}
	return teacher, nil
}

func (s *DirectoryService) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// DeleteTeacher мягко удаляет учителя, брони остаются
func (s *DirectoryService) DeleteTeacher(ctx context.Context, id int64) error {
	err := s.teachers.SoftDelete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTeacherNotFound
	}
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	s.logger.Info("Teacher deleted", zap.Int64("teacher_id", id))
	return nil
}

func (s *DirectoryService) ListStudents(ctx context.Context) ([]*model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}
