package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GeneralSettings struct {
	QuestionsPerPage int    `json:"questionsPerPage"`
	ShuffleQuestions bool   `json:"shuffleQuestions"`
	ShuffleOptions   bool   `json:"shuffleOptions"`
	MarksPerQuestion int    `json:"marksPerQuestion"`
	TimeLimit        int    `json:"timeLimit"` // minutes
	AllowReview      bool   `json:"allowReview"`
	AutoSubmit       bool   `json:"autoSubmit"`
	ShowResults      bool   `json:"showResults"`
	Difficulty       string `json:"difficulty"`
}

type SecuritySettings struct {
	AutoSubmit       bool `json:"autoSubmit"`
	SessionTimeout   int  `json:"sessionTimeout"` // minutes
	PreventCopyPaste bool `json:"preventCopyPaste"`
	FullScreenMode   bool `json:"fullScreenMode"`
}

type NotificationSettings struct {
	EmailNotifications bool   `json:"emailNotifications"`
	QuizSubmissions    bool   `json:"quizSubmissions"`
	StudentQuestions   bool   `json:"studentQuestions"`
	SystemUpdates      bool   `json:"systemUpdates"`
	PerformanceReports bool   `json:"performanceReports"`
	DeliverySchedule   string `json:"deliverySchedule"` // immediately, daily, weekly
}

// Settings holds one configuration document per teacher.
type Settings struct {
	ID            uint                                     `json:"id" gorm:"primaryKey"`
	TeacherID     uint                                     `json:"teacher_id" gorm:"uniqueIndex;not null"`
	General       datatypes.JSONType[GeneralSettings]      `json:"general"`
	Security      datatypes.JSONType[SecuritySettings]     `json:"security"`
	Notifications datatypes.JSONType[NotificationSettings] `json:"notifications"`
	LastUpdated   time.Time                                `json:"last_updated"`
	CreatedAt     time.Time                                `json:"created_at"`
	UpdatedAt     time.Time                                `json:"updated_at"`
	DeletedAt     gorm.DeletedAt                           `json:"-" gorm:"index"`
}

func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{
		QuestionsPerPage: 5,
		ShuffleQuestions: true,
		ShuffleOptions:   false,
		MarksPerQuestion: 1,
		TimeLimit:        30,
		AllowReview:      true,
		AutoSubmit:       false,
		ShowResults:      true,
		Difficulty:       "medium",
	}
}

func DefaultSecuritySettings() SecuritySettings {
	return SecuritySettings{
		AutoSubmit:       false,
		SessionTimeout:   30,
		PreventCopyPaste: true,
		FullScreenMode:   false,
	}
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailNotifications: true,
		QuizSubmissions:    true,
		StudentQuestions:   true,
		SystemUpdates:      false,
		PerformanceReports: true,
		DeliverySchedule:   "immediately",
	}
}

func DefaultSettings(teacherID uint) Settings {
	return Settings{
		TeacherID:     teacherID,
		General:       datatypes.NewJSONType(DefaultGeneralSettings()),
		Security:      datatypes.NewJSONType(DefaultSecuritySettings()),
		Notifications: datatypes.NewJSONType(DefaultNotificationSettings()),
		LastUpdated:   time.Now(),
	}
}
