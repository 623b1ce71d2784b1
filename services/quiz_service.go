package services

import (
	"errors"

	"quizquest/models"

	"gorm.io/gorm"
)

var ErrQuizNotFound = errors.New("quiz not found")

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type QuestionRequest struct {
	Text          string             `json:"text" binding:"required"`
	Type          string             `json:"type" binding:"omitempty,oneof=mcq tf sa"`
	Options       []string           `json:"options"`
	CorrectAnswer models.AnswerValue `json:"correctAnswer"`
	Marks         int                `json:"marks"`
	Explanation   string             `json:"explanation"`
}

type CreateQuizRequest struct {
	TeacherID   uint              `json:"teacherId" binding:"required"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
	Difficulty  string            `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Duration    int               `json:"duration"`
}

type UpdateQuizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" binding:"omitempty,dive"`
	Difficulty  string            `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Duration    int               `json:"duration"`
}

// QuizSummary is the list-view shape: question count instead of the full list.
type QuizSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	QuestionsCount int    `json:"questionsCount"`
	Difficulty     string `json:"difficulty"`
	Duration       int    `json:"duration"`
	TotalMarks     int    `json:"totalMarks"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
}

// buildQuestions turns already-normalized question requests into model rows.
// CorrectAnswer arrives through AnswerValue, so string input has been parsed
// and invalid or negative values are already 0 by the time it lands here.
func buildQuestions(quizID uint, reqs []QuestionRequest) []models.Question {
	questions := make([]models.Question, 0, len(reqs))
	for i, qReq := range reqs {
		qType := qReq.Type
		if qType == "" {
			qType = models.QuestionTypeMCQ
		}
		marks := qReq.Marks
		if marks <= 0 {
			marks = 1
		}
		questions = append(questions, models.Question{
			QuizID:        quizID,
			Position:      i,
			Text:          qReq.Text,
			Type:          qType,
			Options:       qReq.Options,
			CorrectAnswer: qReq.CorrectAnswer.Int(),
			Marks:         marks,
			Explanation:   qReq.Explanation,
		})
	}
	return questions
}

func sumQuestionMarks(questions []models.Question) int {
	total := 0
	for _, q := range questions {
		total += q.Marks
	}
	return total
}

func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (*models.Quiz, error) {
	questions := buildQuestions(0, req.Questions)

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}
	duration := req.Duration
	if duration <= 0 {
		duration = 30
	}

	quiz := models.Quiz{
		TeacherID:   req.TeacherID,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  difficulty,
		Duration:    duration,
		TotalMarks:  sumQuestionMarks(questions),
		IsActive:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ?", quizID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) ListTeacherQuizzes(teacherID uint) ([]QuizSummary, error) {
	var quizzes []models.Quiz
	err := s.db.Where("teacher_id = ?", teacherID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, QuizSummary{
			ID:             quiz.ID,
			Title:          quiz.Title,
			Description:    quiz.Description,
			QuestionsCount: len(quiz.Questions),
			Difficulty:     quiz.Difficulty,
			Duration:       quiz.Duration,
			TotalMarks:     quiz.TotalMarks,
			IsActive:       quiz.IsActive,
			CreatedAt:      quiz.CreatedAt.Format("2006-01-02"),
		})
	}
	return summaries, nil
}

// UpdateQuiz mutates quiz fields and, when a question list is provided,
// replaces all questions and recomputes the cached total in the same
// transaction. A stale TotalMarks would mis-score every later attempt.
func (s *QuizService) UpdateQuiz(quizID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.Difficulty != "" {
		quiz.Difficulty = req.Difficulty
	}
	if req.Duration > 0 {
		quiz.Duration = req.Duration
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Questions != nil {
			if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
				return err
			}
			questions := buildQuestions(quiz.ID, req.Questions)
			if len(questions) > 0 {
				if err := tx.Create(&questions).Error; err != nil {
					return err
				}
			}
			quiz.TotalMarks = sumQuestionMarks(questions)
		}
		quiz.Questions = nil
		return tx.Save(quiz).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	if _, err := s.GetQuiz(quizID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, quizID).Error
	})
}

// StudentQuiz annotates a quiz summary with attempt state for the student
// quiz-browsing view.
type StudentQuiz struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	TeacherID      uint   `json:"teacherId"`
	TeacherName    string `json:"teacherName"`
	Difficulty     string `json:"difficulty"`
	Duration       int    `json:"duration"`
	TotalMarks     int    `json:"totalMarks"`
	QuestionsCount int    `json:"questionsCount"`
	IsAttempted    bool   `json:"isAttempted"`
}

// ListStudentQuizzes returns active quizzes of every teacher the student has
// an approved connection with, flagging the ones already attempted.
func (s *QuizService) ListStudentQuizzes(studentID uint) ([]StudentQuiz, error) {
	var connections []models.Connection
	err := s.db.Where("student_id = ? AND status = ?", studentID, models.ConnectionApproved).
		Find(&connections).Error
	if err != nil {
		return nil, err
	}
	if len(connections) == 0 {
		return []StudentQuiz{}, nil
	}

	teacherIDs := make([]uint, 0, len(connections))
	for _, conn := range connections {
		teacherIDs = append(teacherIDs, conn.TeacherID)
	}

	var quizzes []models.Quiz
	err = s.db.Where("teacher_id IN ? AND is_active = ?", teacherIDs, true).
		Preload("Teacher").
		Preload("Questions").
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	var reports []models.Report
	if err := s.db.Where("student_id = ?", studentID).Find(&reports).Error; err != nil {
		return nil, err
	}
	attempted := make(map[uint]bool, len(reports))
	for _, report := range reports {
		attempted[report.QuizID] = true
	}

	result := make([]StudentQuiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		totalMarks := quiz.TotalMarks
		if totalMarks == 0 {
			totalMarks = quiz.SumMarks()
		}
		result = append(result, StudentQuiz{
			ID:             quiz.ID,
			Title:          quiz.Title,
			Description:    quiz.Description,
			TeacherID:      quiz.TeacherID,
			TeacherName:    quiz.Teacher.Name,
			Difficulty:     quiz.Difficulty,
			Duration:       quiz.Duration,
			TotalMarks:     totalMarks,
			QuestionsCount: len(quiz.Questions),
			IsAttempted:    attempted[quiz.ID],
		})
	}
	return result, nil
}
