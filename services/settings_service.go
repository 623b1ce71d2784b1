package services

import (
	"errors"
	"time"

	"quizquest/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// GetSettings returns the teacher's settings row, creating one with defaults
// on first access.
func (s *SettingsService) GetSettings(teacherID uint) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("teacher_id = ?", teacherID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSettings(teacherID)
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Patch structs carry only the fields present in the request body, so a
// section update merges field-wise instead of replacing the whole section.

type GeneralPatch struct {
	QuestionsPerPage *int    `json:"questionsPerPage"`
	ShuffleQuestions *bool   `json:"shuffleQuestions"`
	ShuffleOptions   *bool   `json:"shuffleOptions"`
	MarksPerQuestion *int    `json:"marksPerQuestion"`
	TimeLimit        *int    `json:"timeLimit"`
	AllowReview      *bool   `json:"allowReview"`
	AutoSubmit       *bool   `json:"autoSubmit"`
	ShowResults      *bool   `json:"showResults"`
	Difficulty       *string `json:"difficulty"`
}

type SecurityPatch struct {
	AutoSubmit       *bool `json:"autoSubmit"`
	SessionTimeout   *int  `json:"sessionTimeout"`
	PreventCopyPaste *bool `json:"preventCopyPaste"`
	FullScreenMode   *bool `json:"fullScreenMode"`
}

type NotificationsPatch struct {
	EmailNotifications *bool   `json:"emailNotifications"`
	QuizSubmissions    *bool   `json:"quizSubmissions"`
	StudentQuestions   *bool   `json:"studentQuestions"`
	SystemUpdates      *bool   `json:"systemUpdates"`
	PerformanceReports *bool   `json:"performanceReports"`
	DeliverySchedule   *string `json:"deliverySchedule"`
}

type UpdateSettingsRequest struct {
	General       *GeneralPatch       `json:"general"`
	Security      *SecurityPatch      `json:"security"`
	Notifications *NotificationsPatch `json:"notifications"`
}

func (s *SettingsService) UpdateSettings(teacherID uint, req *UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.GetSettings(teacherID)
	if err != nil {
		return nil, err
	}

	if req.General != nil {
		general := settings.General.Data()
		applyGeneralPatch(&general, req.General)
		settings.General = datatypes.NewJSONType(general)
	}
	if req.Security != nil {
		security := settings.Security.Data()
		applySecurityPatch(&security, req.Security)
		settings.Security = datatypes.NewJSONType(security)
	}
	if req.Notifications != nil {
		notifications := settings.Notifications.Data()
		applyNotificationsPatch(&notifications, req.Notifications)
		settings.Notifications = datatypes.NewJSONType(notifications)
	}
	settings.LastUpdated = time.Now()

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ResetSettings restores every section to its documented defaults.
func (s *SettingsService) ResetSettings(teacherID uint) (*models.Settings, error) {
	settings, err := s.GetSettings(teacherID)
	if err != nil {
		return nil, err
	}

	settings.General = datatypes.NewJSONType(models.DefaultGeneralSettings())
	settings.Security = datatypes.NewJSONType(models.DefaultSecuritySettings())
	settings.Notifications = datatypes.NewJSONType(models.DefaultNotificationSettings())
	settings.LastUpdated = time.Now()

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func applyGeneralPatch(dst *models.GeneralSettings, patch *GeneralPatch) {
	if patch.QuestionsPerPage != nil {
		dst.QuestionsPerPage = *patch.QuestionsPerPage
	}
	if patch.ShuffleQuestions != nil {
		dst.ShuffleQuestions = *patch.ShuffleQuestions
	}
	if patch.ShuffleOptions != nil {
		dst.ShuffleOptions = *patch.ShuffleOptions
	}
	if patch.MarksPerQuestion != nil {
		dst.MarksPerQuestion = *patch.MarksPerQuestion
	}
	if patch.TimeLimit != nil {
		dst.TimeLimit = *patch.TimeLimit
	}
	if patch.AllowReview != nil {
		dst.AllowReview = *patch.AllowReview
	}
	if patch.AutoSubmit != nil {
		dst.AutoSubmit = *patch.AutoSubmit
	}
	if patch.ShowResults != nil {
		dst.ShowResults = *patch.ShowResults
	}
	if patch.Difficulty != nil {
		dst.Difficulty = *patch.Difficulty
	}
}

func applySecurityPatch(dst *models.SecuritySettings, patch *SecurityPatch) {
	if patch.AutoSubmit != nil {
		dst.AutoSubmit = *patch.AutoSubmit
	}
	if patch.SessionTimeout != nil {
		dst.SessionTimeout = *patch.SessionTimeout
	}
	if patch.PreventCopyPaste != nil {
		dst.PreventCopyPaste = *patch.PreventCopyPaste
	}
	if patch.FullScreenMode != nil {
		dst.FullScreenMode = *patch.FullScreenMode
	}
}

func applyNotificationsPatch(dst *models.NotificationSettings, patch *NotificationsPatch) {
	if patch.EmailNotifications != nil {
		dst.EmailNotifications = *patch.EmailNotifications
	}
	if patch.QuizSubmissions != nil {
		dst.QuizSubmissions = *patch.QuizSubmissions
	}
	if patch.StudentQuestions != nil {
		dst.StudentQuestions = *patch.StudentQuestions
	}
	if patch.SystemUpdates != nil {
		dst.SystemUpdates = *patch.SystemUpdates
	}
	if patch.PerformanceReports != nil {
		dst.PerformanceReports = *patch.PerformanceReports
	}
	if patch.DeliverySchedule != nil {
		dst.DeliverySchedule = *patch.DeliverySchedule
	}
}
