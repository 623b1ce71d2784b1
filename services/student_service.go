package services

import (
	"errors"
	"time"

	"quizquest/models"

	"gorm.io/gorm"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentExists   = errors.New("student with this email already exists")
)

type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

type AddStudentRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Course    string `json:"course" binding:"required"`
	TeacherID uint   `json:"teacherId" binding:"required"`
}

func (s *StudentService) AddStudent(req *AddStudentRequest) (*models.Student, error) {
	var existing models.Student
	err := s.db.Where("email = ? AND teacher_id = ?", req.Email, req.TeacherID).First(&existing).Error
	if err == nil {
		return nil, ErrStudentExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	student := models.Student{
		Name:        req.Name,
		Email:       req.Email,
		Course:      req.Course,
		TeacherID:   req.TeacherID,
		Attendance:  false,
		Allowed:     false,
		LastUpdated: time.Now(),
	}
	if err := s.db.Create(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// ListForTeacher merges the teacher's roster with students linked through
// approved connections. Connection-only students appear with default roster
// state (absent, not allowed) until the teacher adds them explicitly.
func (s *StudentService) ListForTeacher(teacherID uint) ([]models.Student, error) {
	var roster []models.Student
	if err := s.db.Where("teacher_id = ?", teacherID).Find(&roster).Error; err != nil {
		return nil, err
	}

	var linked []models.Connection
	err := s.db.Where("teacher_id = ? AND status = ?", teacherID, models.ConnectionApproved).
		Preload("Student").
		Find(&linked).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(roster))
	for _, student := range roster {
		seen[student.Email] = true
	}

	for _, conn := range linked {
		if seen[conn.Student.Email] {
			continue
		}
		seen[conn.Student.Email] = true
		course := conn.Course
		if course == "" {
			course = "General"
		}
		roster = append(roster, models.Student{
			ID:          conn.Student.ID,
			Name:        conn.Student.Name,
			Email:       conn.Student.Email,
			Course:      course,
			TeacherID:   teacherID,
			Attendance:  false,
			Allowed:     false,
			LastUpdated: time.Now(),
		})
	}
	return roster, nil
}

type UpdateStudentRequest struct {
	Attendance *bool `json:"attendance"`
	Allowed    *bool `json:"allowed"`
}

// UpdateStudent applies attendance and permission changes through the roster
// gate: marking absent always revokes access, and granting access to an
// absent student is rejected rather than coerced.
func (s *StudentService) UpdateStudent(studentID uint, req *UpdateStudentRequest) (*models.Student, error) {
	student, err := s.getStudent(studentID)
	if err != nil {
		return nil, err
	}

	if err := applyRosterUpdate(student, req); err != nil {
		return nil, err
	}

	if err := s.db.Save(student).Error; err != nil {
		return nil, err
	}
	return student, nil
}

func applyRosterUpdate(student *models.Student, req *UpdateStudentRequest) error {
	if req.Attendance != nil {
		student.MarkAttendance(*req.Attendance)
	}
	if req.Allowed != nil {
		if err := student.SetAllowed(*req.Allowed); err != nil {
			return err
		}
	}
	return nil
}

type BulkStudentUpdate struct {
	StudentID  uint  `json:"studentId" binding:"required"`
	Attendance *bool `json:"attendance"`
	Allowed    *bool `json:"allowed"`
}

type BulkUpdateRequest struct {
	TeacherID uint                `json:"teacherId" binding:"required"`
	Updates   []BulkStudentUpdate `json:"updates" binding:"required,min=1,dive"`
}

// BulkUpdate applies a batch of roster changes in one transaction, each one
// routed through the same gate as single updates. A single invalid change
// rolls back the whole batch.
func (s *StudentService) BulkUpdate(req *BulkUpdateRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range req.Updates {
			var student models.Student
			err := tx.Where("id = ? AND teacher_id = ?", update.StudentID, req.TeacherID).
				First(&student).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			if err != nil {
				return err
			}

			rosterReq := UpdateStudentRequest{Attendance: update.Attendance, Allowed: update.Allowed}
			if err := applyRosterUpdate(&student, &rosterReq); err != nil {
				return err
			}
			if err := tx.Save(&student).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *StudentService) DeleteStudent(studentID uint) error {
	if _, err := s.getStudent(studentID); err != nil {
		return err
	}
	return s.db.Delete(&models.Student{}, studentID).Error
}

func (s *StudentService) getStudent(studentID uint) (*models.Student, error) {
	var student models.Student
	err := s.db.First(&student, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// StudentSearchResult is one Student-role user matched by a roster search,
// flagged when a pending or approved connection with the teacher exists.
type StudentSearchResult struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsLinked bool   `json:"isLinked"`
}

func (s *StudentService) SearchStudents(query string, teacherID uint) ([]StudentSearchResult, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := s.db.Where("role = ?", models.RoleStudent).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	linked := make(map[uint]bool)
	if teacherID != 0 && len(ids) > 0 {
		var connections []models.Connection
		err := s.db.Where("teacher_id = ? AND student_id IN ? AND status IN ?",
			teacherID, ids, []string{models.ConnectionPending, models.ConnectionApproved}).
			Find(&connections).Error
		if err != nil {
			return nil, err
		}
		for _, conn := range connections {
			linked[conn.StudentID] = true
		}
	}

	results := make([]StudentSearchResult, 0, len(users))
	for _, user := range users {
		results = append(results, StudentSearchResult{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			IsLinked: linked[user.ID],
		})
	}
	return results, nil
}
