package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ReportStatusCompleted  = "completed"
	ReportStatusInProgress = "in-progress"
	ReportStatusNotStarted = "not-started"
)

// Report is the persisted outcome of one quiz attempt. There is deliberately
// no uniqueness constraint on (student, quiz): every submission creates a new
// report, so retakes show up as separate rows.
type Report struct {
	ID          uint                              `json:"id" gorm:"primaryKey"`
	StudentID   uint                              `json:"student_id" gorm:"not null;index"`
	TeacherID   uint                              `json:"teacher_id" gorm:"not null;index"`
	StudentName string                            `json:"student_name"`
	QuizID      uint                              `json:"quiz_id" gorm:"not null;index"`
	QuizTitle   string                            `json:"quiz_title"`
	Score       int                               `json:"score" gorm:"not null"`
	TotalMarks  int                               `json:"total_marks" gorm:"not null"`
	Percentage  float64                           `json:"percentage" gorm:"not null"` // one decimal
	Grade       string                            `json:"grade"`
	TimeSpent   string                            `json:"time_spent" gorm:"default:'00:00'"`
	Date        time.Time                         `json:"date"`
	Status      string                            `json:"status" gorm:"not null;default:'completed'"`
	Answers     datatypes.JSONSlice[AnswerRecord] `json:"answers"`
	CreatedAt   time.Time                         `json:"created_at"`
	UpdatedAt   time.Time                         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                    `json:"-" gorm:"index"`
}
