package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeTrueFalse   = "tf"
	QuestionTypeShortAnswer = "sa"
)

type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	QuizID        uint                        `json:"quiz_id" gorm:"not null;index"`
	Position      int                         `json:"position" gorm:"not null"`
	Text          string                      `json:"text" gorm:"not null"`
	Type          string                      `json:"type" gorm:"not null;default:'mcq'"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer int                         `json:"correct_answer" gorm:"not null;default:0"` // index into Options
	Marks         int                         `json:"marks" gorm:"not null;default:1"`
	Explanation   string                      `json:"explanation"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `json:"-" gorm:"index"`
}
