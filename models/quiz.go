package models

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	TeacherID   uint           `json:"teacher_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Duration    int            `json:"duration" gorm:"not null;default:30"` // minutes
	Difficulty  string         `json:"difficulty" gorm:"not null;default:'medium'"`
	TotalMarks  int            `json:"total_marks" gorm:"not null;default:0"` // cached sum of question marks
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Teacher   User       `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

// SumMarks recomputes the total from the question list. The stored TotalMarks
// must be kept equal to this whenever Questions change.
func (q *Quiz) SumMarks() int {
	total := 0
	for _, question := range q.Questions {
		marks := question.Marks
		if marks == 0 {
			marks = 1
		}
		total += marks
	}
	return total
}
