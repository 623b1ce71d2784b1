package models

import (
	"time"

	"gorm.io/gorm"
)

type Topic struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Duration    int            `json:"duration" gorm:"not null;default:1"` // hours
	Difficulty  string         `json:"difficulty" gorm:"not null;default:'medium'"`
	Order       int            `json:"order" gorm:"column:position;not null"`
	Quizzes     int            `json:"quizzes" gorm:"not null;default:0"` // denormalized counter
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Course Course `json:"course,omitempty"`
}
