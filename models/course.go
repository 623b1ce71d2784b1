package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CourseActive   = "active"
	CourseInactive = "inactive"
	CourseArchived = "archived"
)

type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TeacherID   uint           `json:"teacher_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Code        string         `json:"code" gorm:"not null"`
	Description string         `json:"description"`
	Credits     int            `json:"credits" gorm:"not null;default:3"`
	Department  string         `json:"department" gorm:"default:'Computer Science'"`
	Students    int            `json:"students" gorm:"not null;default:0"` // denormalized counter
	Topics      int            `json:"topics" gorm:"not null;default:0"`   // kept in step with topic rows
	Status      string         `json:"status" gorm:"not null;default:'active'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	TopicList []Topic `json:"topic_list,omitempty" gorm:"foreignKey:CourseID"`
}
