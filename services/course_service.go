package services

import (
	"errors"
	"strings"

	"quizquest/models"

	"gorm.io/gorm"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseCodeExists = errors.New("course with this code already exists")
	ErrTopicNotFound    = errors.New("topic not found")
)

type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

type CreateCourseRequest struct {
	TeacherID   uint   `json:"teacherId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Department  string `json:"department"`
}

func (s *CourseService) ListCourses(teacherID uint) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (s *CourseService) CreateCourse(req *CreateCourseRequest) (*models.Course, error) {
	code := strings.ToUpper(req.Code)

	var existing models.Course
	err := s.db.Where("teacher_id = ? AND code = ?", req.TeacherID, code).First(&existing).Error
	if err == nil {
		return nil, ErrCourseCodeExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	credits := req.Credits
	if credits <= 0 {
		credits = 3
	}
	department := req.Department
	if department == "" {
		department = "Computer Science"
	}

	course := models.Course{
		TeacherID:   req.TeacherID,
		Title:       req.Title,
		Code:        code,
		Description: req.Description,
		Credits:     credits,
		Department:  department,
		Status:      models.CourseActive,
	}
	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes a course and cascades to its topics in one
// transaction, so a crash cannot strand orphaned topics.
func (s *CourseService) DeleteCourse(courseID uint) error {
	var course models.Course
	err := s.db.First(&course, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.Topic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
}

type CreateTopicRequest struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

func (s *CourseService) ListTopics(courseID uint) ([]models.Topic, error) {
	var topics []models.Topic
	err := s.db.Where("course_id = ?", courseID).
		Order("position").
		Find(&topics).Error
	return topics, err
}

// CreateTopic appends a topic at the end of the course's ordering and bumps
// the course's topic counter in the same transaction. The counter and the
// topic rows can therefore never drift apart.
func (s *CourseService) CreateTopic(req *CreateTopicRequest) (*models.Topic, error) {
	var course models.Course
	err := s.db.First(&course, req.CourseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	duration := req.Duration
	if duration <= 0 {
		duration = 1
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	topic := models.Topic{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    duration,
		Difficulty:  difficulty,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var last models.Topic
		err := tx.Where("course_id = ?", req.CourseID).Order("position DESC").First(&last).Error
		switch {
		case err == nil:
			topic.Order = last.Order + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			topic.Order = 1
		default:
			return err
		}

		if err := tx.Create(&topic).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", req.CourseID).
			UpdateColumn("topics", gorm.Expr("topics + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// DeleteTopic removes a topic and decrements its course's counter in the same
// transaction.
func (s *CourseService) DeleteTopic(topicID uint) error {
	var topic models.Topic
	err := s.db.First(&topic, topicID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTopicNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&topic).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", topic.CourseID).
			UpdateColumn("topics", gorm.Expr("topics - ?", 1)).Error
	})
}

// TeacherTopic is a topic joined with its course's title and code for the
// all-topics view.
type TeacherTopic struct {
	models.Topic
	CourseTitle string `json:"courseTitle"`
	CourseCode  string `json:"courseCode"`
}

func (s *CourseService) ListTeacherTopics(teacherID uint) ([]TeacherTopic, error) {
	var topics []models.Topic
	err := s.db.Joins("Course").
		Where("\"Course\".teacher_id = ?", teacherID).
		Order("topics.created_at DESC").
		Find(&topics).Error
	if err != nil {
		return nil, err
	}

	result := make([]TeacherTopic, 0, len(topics))
	for _, topic := range topics {
		result = append(result, TeacherTopic{
			Topic:       topic,
			CourseTitle: topic.Course.Title,
			CourseCode:  topic.Course.Code,
		})
	}
	return result, nil
}
