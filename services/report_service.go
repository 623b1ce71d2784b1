package services

import (
	"errors"
	"time"

	"quizquest/models"

	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

type AttemptRequest struct {
	StudentID   uint              `json:"studentId" binding:"required"`
	StudentName string            `json:"studentName"`
	QuizID      uint              `json:"quizId" binding:"required"`
	QuizTitle   string            `json:"quizTitle"`
	TeacherID   uint              `json:"teacherId"`
	Answers     []SubmittedAnswer `json:"answers" binding:"required"`
	TimeSpent   string            `json:"timeSpent"`
}

// SubmitAttempt evaluates a submission against the quiz's ordered question
// list and persists exactly one report for it. There is no deduplication:
// submitting the same quiz again creates another report.
func (s *ReportService) SubmitAttempt(req *AttemptRequest) (*models.Report, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ?", req.QuizID).
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

	evaluation := EvaluateSubmission(quiz.Questions, req.Answers, quiz.TotalMarks)

	teacherID := req.TeacherID
	if teacherID == 0 {
		teacherID = quiz.TeacherID
	}
	quizTitle := req.QuizTitle
	if quizTitle == "" {
		quizTitle = quiz.Title
	}
	timeSpent := req.TimeSpent
	if timeSpent == "" {
		timeSpent = "00:00"
	}

	report := models.Report{
		StudentID:   req.StudentID,
		TeacherID:   teacherID,
		StudentName: req.StudentName,
		QuizID:      quiz.ID,
		QuizTitle:   quizTitle,
		Score:       evaluation.Score,
		TotalMarks:  evaluation.TotalMarks,
		Percentage:  evaluation.Percentage,
		Grade:       evaluation.Grade,
		TimeSpent:   timeSpent,
		Date:        time.Now(),
		Status:      models.ReportStatusCompleted,
		Answers:     evaluation.Answers,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

type AddReportRequest struct {
	StudentID   uint                  `json:"studentId" binding:"required"`
	TeacherID   uint                  `json:"teacherId" binding:"required"`
	StudentName string                `json:"studentName"`
	QuizID      uint                  `json:"quizId" binding:"required"`
	QuizTitle   string                `json:"quizTitle"`
	Score       int                   `json:"score"`
	TotalMarks  int                   `json:"totalMarks" binding:"required"`
	Answers     []models.AnswerRecord `json:"answers"`
	TimeSpent   string                `json:"timeSpent"`
}

// AddReport persists a pre-scored result, deriving percentage and grade from
// the supplied score and total.
func (s *ReportService) AddReport(req *AddReportRequest) (*models.Report, error) {
	timeSpent := req.TimeSpent
	if timeSpent == "" {
		timeSpent = "00:00"
	}

	percentage := Percentage(req.Score, req.TotalMarks)
	report := models.Report{
		StudentID:   req.StudentID,
		TeacherID:   req.TeacherID,
		StudentName: req.StudentName,
		QuizID:      req.QuizID,
		QuizTitle:   req.QuizTitle,
		Score:       req.Score,
		TotalMarks:  req.TotalMarks,
		Percentage:  percentage,
		Grade:       GradeFor(percentage),
		TimeSpent:   timeSpent,
		Date:        time.Now(),
		Status:      models.ReportStatusCompleted,
		Answers:     req.Answers,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

type UpdateReportRequest struct {
	Score      *int                  `json:"score"`
	TotalMarks *int                  `json:"totalMarks"`
	TimeSpent  string                `json:"timeSpent"`
	Answers    []models.AnswerRecord `json:"answers"`
}

// UpdateReport patches score fields and rederives percentage and grade so the
// stored derived values never drift from their inputs.
func (s *ReportService) UpdateReport(reportID uint, req *UpdateReportRequest) (*models.Report, error) {
	report, err := s.getReport(reportID)
	if err != nil {
		return nil, err
	}

	if req.Score != nil {
		report.Score = *req.Score
	}
	if req.TotalMarks != nil {
		report.TotalMarks = *req.TotalMarks
	}
	if req.TimeSpent != "" {
		report.TimeSpent = req.TimeSpent
	}
	if req.Answers != nil {
		report.Answers = req.Answers
	}

	report.Percentage = Percentage(report.Score, report.TotalMarks)
	report.Grade = GradeFor(report.Percentage)

	if err := s.db.Save(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) DeleteReport(reportID uint) error {
	if _, err := s.getReport(reportID); err != nil {
		return err
	}
	return s.db.Delete(&models.Report{}, reportID).Error
}

func (s *ReportService) getReport(reportID uint) (*models.Report, error) {
	var report models.Report
	err := s.db.First(&report, reportID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) ListTeacherReports(teacherID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Where("teacher_id = ?", teacherID).
		Order("date DESC").
		Find(&reports).Error
	return reports, err
}

func (s *ReportService) ListStudentReports(studentID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&reports).Error
	return reports, err
}

// QuizAnalytics aggregates report rows per quiz title.
type QuizAnalytics struct {
	QuizTitle         string  `json:"quizTitle"`
	AverageScore      float64 `json:"averageScore"`
	HighestScore      int     `json:"highestScore"`
	LowestScore       int     `json:"lowestScore"`
	TotalStudents     int     `json:"totalStudents"`
	TotalMarks        int     `json:"totalMarks"`
	AveragePercentage float64 `json:"averagePercentage"`
}

func (s *ReportService) Analytics(teacherID uint, quizFilter string) ([]QuizAnalytics, error) {
	query := s.db.Model(&models.Report{}).
		Select("quiz_title, AVG(score) AS average_score, MAX(score) AS highest_score, " +
			"MIN(score) AS lowest_score, COUNT(*) AS total_students, " +
			"MAX(total_marks) AS total_marks, AVG(percentage) AS average_percentage").
		Where("teacher_id = ?", teacherID).
		Group("quiz_title")

	if quizFilter != "" && quizFilter != "all" {
		query = query.Where("quiz_title = ?", quizFilter)
	}

	var analytics []QuizAnalytics
	if err := query.Scan(&analytics).Error; err != nil {
		return nil, err
	}
	return analytics, nil
}

// StudentDashboard is the aggregate view backing the student landing page.
type StudentDashboard struct {
	TotalQuizzesAttempted int             `json:"totalQuizzesAttempted"`
	AverageScore          int             `json:"averageScore"` // rounded average percentage
	PendingQuizzes        int             `json:"pendingQuizzes"`
	TotalTeachers         int             `json:"totalTeachers"`
	RecentActivities      []models.Report `json:"recentActivities"`
	UpcomingQuizzes       []StudentQuiz   `json:"upcomingQuizzes"`
}

func (s *ReportService) StudentDashboard(studentID uint, quizzes []StudentQuiz, teacherCount int) (*StudentDashboard, error) {
	reports, err := s.ListStudentReports(studentID)
	if err != nil {
		return nil, err
	}

	averageScore := 0
	if len(reports) > 0 {
		total := 0.0
		for _, report := range reports {
			total += report.Percentage
		}
		averageScore = int(total/float64(len(reports)) + 0.5)
	}

	pending := 0
	upcoming := make([]StudentQuiz, 0, 2)
	for _, quiz := range quizzes {
		if !quiz.IsAttempted {
			pending++
			if len(upcoming) < 2 {
				upcoming = append(upcoming, quiz)
			}
		}
	}

	recent := reports
	if len(recent) > 3 {
		recent = recent[:3]
	}

	return &StudentDashboard{
		TotalQuizzesAttempted: len(reports),
		AverageScore:          averageScore,
		PendingQuizzes:        pending,
		TotalTeachers:         teacherCount,
		RecentActivities:      recent,
		UpcomingQuizzes:       upcoming,
	}, nil
}
