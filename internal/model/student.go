package model

import "time"

// Student ученик. Уникален по паре (имя ученика, имя родителя в FB) без учёта регистра
type Student struct {
	ID            int64  `json:"id"`
	StudentName   string `json:"student_name"`
	ParentName    string `json:"parent_name"`
	ParentFbName  string `json:"parent_fb_name"`
	Grade         string `json:"grade"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`

	// Учитель текущей недели, выводится из броней
	AssignedTeacherID *int64 `json:"assigned_teacher_id"`

	Status           ActivityStatus `json:"status"`
	InactiveDays     int            `json:"inactive_days"`
	LastStatusChange *time.Time     `json:"last_status_change"`
	IsDeleted        bool           `json:"is_deleted"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsActive проверяет активность ученика
func (s *Student) IsActive() bool {
	return s.Status == ActivityActive
}
