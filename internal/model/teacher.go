package model

import "time"

// ActivityStatus грубый признак активности учителя или ученика
type ActivityStatus string

const (
	ActivityActive   ActivityStatus = "active"
	ActivityInactive ActivityStatus = "inactive"
)

// Teacher учитель агентства
type Teacher struct {
	ID               int64          `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	ContactNumber    string         `json:"contact_number"`
	Status           ActivityStatus `json:"status"`
	InactiveDays     int            `json:"inactive_days"`
	LastStatusChange *time.Time     `json:"last_status_change"`
	TotalBookings    int            `json:"total_bookings"` // счётчик созданных броней
	IsDeleted        bool           `json:"is_deleted"`
	DeletedAt        *time.Time     `json:"deleted_at"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsActive проверяет активность учителя
func (t *Teacher) IsActive() bool {
	return t.Status == ActivityActive
}
