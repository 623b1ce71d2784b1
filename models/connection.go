package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ConnectionPending  = "pending"
	ConnectionApproved = "approved"
	ConnectionRejected = "rejected"
)

// Connection links a student account to a teacher. Quiz visibility filters on
// approved connections only. At most one pending-or-approved record may exist
// per (student, teacher) pair; a rejected record does not block a new request.
type Connection struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	StudentID   uint           `json:"student_id" gorm:"not null;index"`
	TeacherID   uint           `json:"teacher_id" gorm:"not null;index"`
	Status      string         `json:"status" gorm:"not null;default:'pending'"`
	Course      string         `json:"course"`
	RequestedAt time.Time      `json:"requested_at"`
	RespondedAt *time.Time     `json:"responded_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Student User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Teacher User `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}
