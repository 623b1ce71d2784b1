package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrStudentNotPresent = errors.New("student must be marked present before being allowed")

// Student is a teacher-scoped roster entry, distinct from a User with the
// Student role. Attendance gates quiz access: Allowed can only be true while
// Attendance is true.
type Student struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Email       string         `json:"email" gorm:"not null;index"`
	Course      string         `json:"course" gorm:"not null"`
	TeacherID   uint           `json:"teacher_id" gorm:"not null;index"`
	Attendance  bool           `json:"attendance" gorm:"not null;default:false"`
	Allowed     bool           `json:"allowed" gorm:"not null;default:false"`
	LastUpdated time.Time      `json:"last_updated"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// MarkAttendance sets attendance. Marking a student absent revokes quiz
// access regardless of its prior value; marking present never grants it.
func (s *Student) MarkAttendance(present bool) {
	s.Attendance = present
	if !present {
		s.Allowed = false
	}
	s.LastUpdated = time.Now()
}

// SetAllowed grants or revokes quiz access. Granting requires the student to
// be present; that case is rejected, not silently coerced.
func (s *Student) SetAllowed(allowed bool) error {
	if allowed && !s.Attendance {
		return ErrStudentNotPresent
	}
	s.Allowed = allowed
	s.LastUpdated = time.Now()
	return nil
}
