package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleTeacher = "Teacher"
	RoleStudent = "Student"
)

type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Role      string         `json:"role" gorm:"not null"` // Teacher or Student, fixed at registration
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"` // bcrypt hash
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
