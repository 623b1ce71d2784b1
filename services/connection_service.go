package services

import (
	"errors"
	"time"

	"quizquest/models"

	"gorm.io/gorm"
)

var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrRequestPending     = errors.New("connection request already sent")
	ErrAlreadyLinked      = errors.New("student is already linked")
	ErrRequestNotPending  = errors.New("connection request has already been responded to")
)

type ConnectionService struct {
	db *gorm.DB
}

func NewConnectionService(db *gorm.DB) *ConnectionService {
	return &ConnectionService{db: db}
}

type ConnectionRequest struct {
	TeacherID uint   `json:"teacherId" binding:"required"`
	StudentID uint   `json:"studentId" binding:"required"`
	Course    string `json:"course"`
}

// Request creates a pending connection for a (student, teacher) pair. A pair
// with an existing pending or approved record is refused; only a rejected
// record permits a retry.
func (s *ConnectionService) Request(req *ConnectionRequest) (*models.Connection, error) {
	var existing models.Connection
	err := s.db.Where("teacher_id = ? AND student_id = ? AND status IN ?",
		req.TeacherID, req.StudentID,
		[]string{models.ConnectionPending, models.ConnectionApproved}).
		First(&existing).Error
	if err == nil {
		if existing.Status == models.ConnectionPending {
			return nil, ErrRequestPending
		}
		return nil, ErrAlreadyLinked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := req.Course
	if course == "" {
		course = "General"
	}

	connection := models.Connection{
		TeacherID:   req.TeacherID,
		StudentID:   req.StudentID,
		Course:      course,
		Status:      models.ConnectionPending,
		RequestedAt: time.Now(),
	}
	if err := s.db.Create(&connection).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Student").First(&connection, connection.ID).Error; err != nil {
		return nil, err
	}
	return &connection, nil
}

type RespondRequest struct {
	ConnectionID uint   `json:"connectionId" binding:"required"`
	Action       string `json:"action" binding:"required,oneof=approve reject"`
}

// Respond moves a pending request to approved or rejected. Both outcomes are
// terminal for the record; responding twice is an error.
func (s *ConnectionService) Respond(req *RespondRequest) (*models.Connection, error) {
	var connection models.Connection
	err := s.db.Preload("Student").First(&connection, req.ConnectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}

	if connection.Status != models.ConnectionPending {
		return nil, ErrRequestNotPending
	}

	if req.Action == "approve" {
		connection.Status = models.ConnectionApproved
	} else {
		connection.Status = models.ConnectionRejected
	}
	now := time.Now()
	connection.RespondedAt = &now

	if err := s.db.Save(&connection).Error; err != nil {
		return nil, err
	}
	return &connection, nil
}

func (s *ConnectionService) Remove(connectionID uint) error {
	var connection models.Connection
	err := s.db.First(&connection, connectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrConnectionNotFound
	}
	if err != nil {
		return err
	}
	return s.db.Delete(&connection).Error
}

type ConnectionStats struct {
	TotalLinked      int64 `json:"totalLinked"`
	TotalPending     int64 `json:"totalPending"`
	TotalConnections int64 `json:"totalConnections"`
}

func (s *ConnectionService) Stats(teacherID uint) (*ConnectionStats, error) {
	var stats ConnectionStats
	err := s.db.Model(&models.Connection{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.ConnectionApproved).
		Count(&stats.TotalLinked).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&models.Connection{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.ConnectionPending).
		Count(&stats.TotalPending).Error
	if err != nil {
		return nil, err
	}
	stats.TotalConnections = stats.TotalLinked + stats.TotalPending
	return &stats, nil
}

func (s *ConnectionService) PendingForTeacher(teacherID uint) ([]models.Connection, error) {
	var connections []models.Connection
	err := s.db.Where("teacher_id = ? AND status = ?", teacherID, models.ConnectionPending).
		Preload("Student").
		Find(&connections).Error
	return connections, err
}

func (s *ConnectionService) LinkedForTeacher(teacherID uint) ([]models.Connection, error) {
	var connections []models.Connection
	err := s.db.Where("teacher_id = ? AND status = ?", teacherID, models.ConnectionApproved).
		Preload("Student").
		Find(&connections).Error
	return connections, err
}

func (s *ConnectionService) PendingForStudent(studentID uint) ([]models.Connection, error) {
	var connections []models.Connection
	err := s.db.Where("student_id = ? AND status = ?", studentID, models.ConnectionPending).
		Preload("Teacher").
		Find(&connections).Error
	return connections, err
}

// Find returns the approved connection between a student and a teacher, or
// nil when none exists.
func (s *ConnectionService) Find(studentID, teacherID uint) (*models.Connection, error) {
	var connection models.Connection
	err := s.db.Where("student_id = ? AND teacher_id = ? AND status = ?",
		studentID, teacherID, models.ConnectionApproved).
		First(&connection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

func (s *ConnectionService) TeachersForStudent(studentID uint) ([]models.Connection, error) {
	var connections []models.Connection
	err := s.db.Where("student_id = ? AND status = ?", studentID, models.ConnectionApproved).
		Preload("Teacher").
		Find(&connections).Error
	return connections, err
}
