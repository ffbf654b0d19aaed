package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/google/uuid"
)

// BookingStore хранилище броней
type BookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Booking, error)
	UpdateSessionStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HasActiveForTeacher(ctx context.Context, teacherID int64, from, to time.Time) (bool, error)
	HasActiveForStudent(ctx context.Context, studentName, parentFbName string, from, to time.Time) (bool, error)
}

// TeacherStore хранилище учителей
type TeacherStore interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	List(ctx context.Context) ([]*model.Teacher, error)
	AdjustBookingCount(ctx context.Context, id int64, delta int) error
	UpdateActivity(ctx context.Context, teacher *model.Teacher) error
	SoftDelete(ctx context.Context, id int64) error
}

// StudentStore хранилище учеников
type StudentStore interface {
	FindByIdentity(ctx context.Context, studentName, parentFbName string) (*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	UpdateFromBooking(ctx context.Context, student *model.Student) error
	List(ctx context.Context) ([]*model.Student, error)
	UpdateActivity(ctx context.Context, student *model.Student) error
}

// Transactor выполняет fn в одной транзакции; хранилища берут её из контекста
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
