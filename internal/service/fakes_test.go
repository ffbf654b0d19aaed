package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/tutoring_office/internal/model"
	"github.com/Freeeeeet/tutoring_office/internal/repository"
	"github.com/google/uuid"
)

// memStore хранилище в памяти с откатом транзакций через снимок
type memStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*model.Booking
	teachers map[int64]*model.Teacher
	students map[int64]*model.Student
	nextID   int64

	// внедрение ошибок
	failStudentWrite  error
	failTeacherUpdate map[int64]error
	failStudentUpdate map[int64]error

	teacherUpdates int
	studentUpdates int
}

func newMemStore() *memStore {
	return &memStore{
		bookings:          make(map[uuid.UUID]*model.Booking),
		teachers:          make(map[int64]*model.Teacher),
		students:          make(map[int64]*model.Student),
		failTeacherUpdate: make(map[int64]error),
		failStudentUpdate: make(map[int64]error),
	}
}

type memSnapshot struct {
	bookings map[uuid.UUID]model.Booking
	teachers map[int64]model.Teacher
	students map[int64]model.Student
}

func (m *memStore) snapshot() memSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := memSnapshot{
		bookings: make(map[uuid.UUID]model.Booking),
		teachers: make(map[int64]model.Teacher),
		students: make(map[int64]model.Student),
	}
	for id, b := range m.bookings {
		c := *b
		c.SessionStatus = b.SessionStatus.Clone()
		snap.bookings[id] = c
	}
	for id, t := range m.teachers {
		snap.teachers[id] = *t
	}
	for id, s := range m.students {
		snap.students[id] = *s
	}
	return snap
}

func (m *memStore) restore(snap memSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings = make(map[uuid.UUID]*model.Booking)
	for id, b := range snap.bookings {
		c := b
		m.bookings[id] = &c
	}
	m.teachers = make(map[int64]*model.Teacher)
	for id, t := range snap.teachers {
		c := t
		m.teachers[id] = &c
	}
	m.students = make(map[int64]*model.Student)
	for id, s := range snap.students {
		c := s
		m.students[id] = &c
	}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.snapshot()
	if err := fn(ctx); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) addTeacher(name string) *model.Teacher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &model.Teacher{ID: m.nextID, Name: name, Status: model.ActivityActive}
	m.teachers[t.ID] = t
	return t
}

func (m *memStore) addBooking(b *model.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
}

func (m *memStore) teacher(id int64) model.Teacher {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.teachers[id]
}

func (m *memStore) studentList() []model.Student {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Student
	for _, s := range m.students {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// bookings

type memBookings struct{ *memStore }

func (m memBookings) Create(_ context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *b
	c.SessionStatus = b.SessionStatus.Clone()
	m.bookings[b.ID] = &c
	return nil
}

func (m memBookings) GetByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	c := *b
	c.SessionStatus = b.SessionStatus.Clone()
	return &c, nil
}

func (m memBookings) ListByTeacher(_ context.Context, teacherID int64) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.TeacherID == teacherID && !b.IsDeleted {
			c := *b
			c.SessionStatus = b.SessionStatus.Clone()
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStartDate.Before(out[j].WeekStartDate) })
	return out, nil
}

func (m memBookings) UpdateSessionStatus(_ context.Context, id uuid.UUID, status model.SessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.IsDeleted {
		return fmt.Errorf("update session status %s: %w", id, repository.ErrNotFound)
	}
	b.SessionStatus = status.Clone()
	return nil
}

func (m memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.IsDeleted {
		return fmt.Errorf("update booking status %s: %w", id, repository.ErrNotFound)
	}
	b.Status = status
	return nil
}

func (m memBookings) SoftDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.IsDeleted {
		return fmt.Errorf("delete booking %s: %w", id, repository.ErrNotFound)
	}
	b.IsDeleted = true
	return nil
}

func overlaps(b *model.Booking, from, to time.Time) bool {
	return b.IsActive() && !b.WeekStartDate.After(to) && !b.WeekEndDate.Before(from)
}

func (m memBookings) HasActiveForTeacher(_ context.Context, teacherID int64, from, to time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.TeacherID == teacherID && overlaps(b, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (m memBookings) HasActiveForStudent(_ context.Context, studentName, parentFbName string, from, to time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if strings.EqualFold(b.StudentName, studentName) &&
			strings.EqualFold(b.ParentFbName, parentFbName) &&
			overlaps(b, from, to) {
			return true, nil
		}
	}
	return false, nil
}

// teachers

type memTeachers struct{ *memStore }

func (m memTeachers) Create(_ context.Context, t *model.Teacher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	c := *t
	m.teachers[t.ID] = &c
	return nil
}

func (m memTeachers) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teachers[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (m memTeachers) List(_ context.Context) ([]*model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Teacher
	for _, t := range m.teachers {
		if !t.IsDeleted {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memTeachers) AdjustBookingCount(_ context.Context, id int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teachers[id]
	if !ok {
		return fmt.Errorf("adjust teacher booking count %d: %w", id, repository.ErrNotFound)
	}
	t.TotalBookings += delta
	if t.TotalBookings < 0 {
		t.TotalBookings = 0
	}
	return nil
}

func (m memTeachers) UpdateActivity(_ context.Context, t *model.Teacher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failTeacherUpdate[t.ID]; err != nil {
		return err
	}
	stored, ok := m.teachers[t.ID]
	if !ok {
		return fmt.Errorf("update teacher activity %d: %w", t.ID, repository.ErrNotFound)
	}
	stored.Status = t.Status
	stored.InactiveDays = t.InactiveDays
	stored.LastStatusChange = t.LastStatusChange
	m.teacherUpdates++
	return nil
}

func (m memTeachers) SoftDelete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.teachers[id]
	if !ok || t.IsDeleted {
		return fmt.Errorf("delete teacher %d: %w", id, repository.ErrNotFound)
	}
	t.IsDeleted = true
	return nil
}

// students

type memStudents struct{ *memStore }

func (m memStudents) FindByIdentity(_ context.Context, studentName, parentFbName string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.students {
		if !s.IsDeleted && strings.EqualFold(s.StudentName, studentName) && strings.EqualFold(s.ParentFbName, parentFbName) {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (m memStudents) Create(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStudentWrite != nil {
		return m.failStudentWrite
	}
	m.nextID++
	s.ID = m.nextID
	c := *s
	m.students[s.ID] = &c
	return nil
}

func (m memStudents) UpdateFromBooking(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStudentWrite != nil {
		return m.failStudentWrite
	}
	if _, ok := m.students[s.ID]; !ok {
		return fmt.Errorf("update student %d: %w", s.ID, repository.ErrNotFound)
	}
	c := *s
	m.students[s.ID] = &c
	return nil
}

func (m memStudents) List(_ context.Context) ([]*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Student
	for _, s := range m.students {
		if !s.IsDeleted {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memStudents) UpdateActivity(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failStudentUpdate[s.ID]; err != nil {
		return err
	}
	stored, ok := m.students[s.ID]
	if !ok {
		return fmt.Errorf("update student activity %d: %w", s.ID, repository.ErrNotFound)
	}
	stored.Status = s.Status
	stored.InactiveDays = s.InactiveDays
	stored.LastStatusChange = s.LastStatusChange
	stored.AssignedTeacherID = s.AssignedTeacherID
	m.studentUpdates++
	return nil
}

// fixedClock фиксированное время для тестов
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
