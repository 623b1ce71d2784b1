package services_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizquest/models"
	"quizquest/services"
)

func seedQuiz(t *testing.T, db *gorm.DB, teacherID uint) *models.Quiz {
	t.Helper()
	quizService := services.NewQuizService(db)
	quiz, err := quizService.CreateQuiz(&services.CreateQuizRequest{
		TeacherID: teacherID,
		Title:     "Algebra Basics",
		Questions: []services.QuestionRequest{
			{Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 1, Marks: 5},
			{Text: "3*3?", Options: []string{"6", "7", "9", "12"}, CorrectAnswer: 2, Marks: 5},
		},
	})
	require.NoError(t, err)
	return quiz
}

func TestReportService_SubmitAttempt(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := createUser(t, db, models.RoleStudent, "Sam", "sam@school.test")
	quiz := seedQuiz(t, db, teacher.ID)

	reportService := services.NewReportService(db)
	report, err := reportService.SubmitAttempt(&services.AttemptRequest{
		StudentID:   student.ID,
		StudentName: student.Name,
		QuizID:      quiz.ID,
		Answers: []services.SubmittedAnswer{
			{SelectedAnswer: 1, TimeSpent: 10}, // correct
			{SelectedAnswer: 0, TimeSpent: 15}, // wrong
		},
		TimeSpent: "04:30",
	})
	require.NoError(t, err)

	require.Equal(t, 5, report.Score)
	require.Equal(t, 10, report.TotalMarks)
	require.Equal(t, 50.0, report.Percentage)
	require.Equal(t, "F", report.Grade)
	require.Equal(t, models.ReportStatusCompleted, report.Status)
	require.Equal(t, teacher.ID, report.TeacherID, "teacher defaults to the quiz owner")
	require.Equal(t, quiz.Title, report.QuizTitle)
	require.Equal(t, "04:30", report.TimeSpent)

	require.Len(t, report.Answers, 2)
	require.True(t, report.Answers[0].IsCorrect)
	require.False(t, report.Answers[1].IsCorrect)

	// The answer records survive the jsonb round trip
	var stored models.Report
	require.NoError(t, db.First(&stored, report.ID).Error)
	require.Len(t, stored.Answers, 2)
	require.Equal(t, report.Answers[0], stored.Answers[0])
}

func TestReportService_SubmitAttempt_QuizNotFound(t *testing.T) {
	db := newTestDB(t)
	reportService := services.NewReportService(db)

	_, err := reportService.SubmitAttempt(&services.AttemptRequest{
		StudentID: 1,
		QuizID:    999,
		Answers:   []services.SubmittedAnswer{{SelectedAnswer: 0}},
	})
	require.ErrorIs(t, err, services.ErrQuizNotFound)
}

// Resubmitting the same quiz creates a second report; deduplication is
// deliberately absent so retakes show up as separate rows.
func TestReportService_SubmitAttempt_NoDeduplication(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := createUser(t, db, models.RoleStudent, "Sam", "sam@school.test")
	quiz := seedQuiz(t, db, teacher.ID)

	reportService := services.NewReportService(db)
	req := &services.AttemptRequest{
		StudentID: student.ID,
		QuizID:    quiz.ID,
		Answers:   []services.SubmittedAnswer{{SelectedAnswer: 1}, {SelectedAnswer: 2}},
	}

	first, err := reportService.SubmitAttempt(req)
	require.NoError(t, err)
	second, err := reportService.SubmitAttempt(req)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).
		Where("student_id = ? AND quiz_id = ?", student.ID, quiz.ID).
		Count(&count).Error)
	require.EqualValues(t, 2, count)
}

// A question saved with a string-typed correct answer must match a numeric
// submission: both sides go through the same integer coercion.
func TestReportService_SubmitAttempt_StringCorrectAnswerCoerced(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := createUser(t, db, models.RoleStudent, "Sam", "sam@school.test")

	// Bind the create request from raw JSON carrying correctAnswer as "2"
	var createReq services.CreateQuizRequest
	raw := `{
		"teacherId": ` + itoa(teacher.ID) + `,
		"title": "Coercion Quiz",
		"questions": [
			{"text": "Pick C", "options": ["A", "B", "C"], "correctAnswer": "2", "marks": 1}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &createReq))

	quizService := services.NewQuizService(db)
	quiz, err := quizService.CreateQuiz(&createReq)
	require.NoError(t, err)
	require.Equal(t, 2, quiz.Questions[0].CorrectAnswer, "string input stored as integer")

	reportService := services.NewReportService(db)
	report, err := reportService.SubmitAttempt(&services.AttemptRequest{
		StudentID: student.ID,
		QuizID:    quiz.ID,
		Answers:   []services.SubmittedAnswer{{SelectedAnswer: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Score)
	require.True(t, report.Answers[0].IsCorrect)
}

// A submission where the student skipped every question scores zero, even
// against questions whose answer key is option 0.
func TestReportService_SubmitAttempt_AllSkipped(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := createUser(t, db, models.RoleStudent, "Sam", "sam@school.test")

	quiz, err := services.NewQuizService(db).CreateQuiz(&services.CreateQuizRequest{
		TeacherID: teacher.ID,
		Title:     "Key Zero Quiz",
		Questions: []services.QuestionRequest{
			{Text: "Q1", Options: []string{"right", "wrong"}, CorrectAnswer: 0, Marks: 5},
			{Text: "Q2", Options: []string{"right", "wrong"}, CorrectAnswer: 0, Marks: 5},
		},
	})
	require.NoError(t, err)

	raw := `{
		"studentId": ` + itoa(student.ID) + `,
		"quizId": ` + itoa(quiz.ID) + `,
		"answers": [{"selectedAnswer": null}, {"selectedAnswer": null}]
	}`
	var req services.AttemptRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	report, err := services.NewReportService(db).SubmitAttempt(&req)
	require.NoError(t, err)
	require.Equal(t, 0, report.Score)
	require.Equal(t, 0.0, report.Percentage)
	require.Equal(t, "F", report.Grade)
	for _, record := range report.Answers {
		require.False(t, record.IsCorrect)
		require.Equal(t, models.NoAnswer, record.SelectedAnswer)
	}
}

func TestReportService_UpdateReport_RederivesGrade(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")
	student := createUser(t, db, models.RoleStudent, "Sam", "sam@school.test")

	reportService := services.NewReportService(db)
	report, err := reportService.AddReport(&services.AddReportRequest{
		StudentID:  student.ID,
		TeacherID:  teacher.ID,
		QuizID:     1,
		QuizTitle:  "Algebra Basics",
		Score:      5,
		TotalMarks: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 50.0, report.Percentage)
	require.Equal(t, "F", report.Grade)

	newScore := 9
	updated, err := reportService.UpdateReport(report.ID, &services.UpdateReportRequest{Score: &newScore})
	require.NoError(t, err)
	require.Equal(t, 90.0, updated.Percentage)
	require.Equal(t, "A+", updated.Grade)
}

func TestReportService_DeleteReport(t *testing.T) {
	db := newTestDB(t)
	reportService := services.NewReportService(db)

	require.ErrorIs(t, reportService.DeleteReport(42), services.ErrReportNotFound)

	report, err := reportService.AddReport(&services.AddReportRequest{
		StudentID: 1, TeacherID: 2, QuizID: 3, Score: 1, TotalMarks: 2,
	})
	require.NoError(t, err)
	require.NoError(t, reportService.DeleteReport(report.ID))

	reports, err := reportService.ListTeacherReports(2)
	require.NoError(t, err)
	require.Empty(t, reports)
}

func TestReportService_Analytics(t *testing.T) {
	db := newTestDB(t)
	teacher := createUser(t, db, models.RoleTeacher, "Ms. Lee", "lee@school.test")

	reportService := services.NewReportService(db)
	scores := []int{4, 6, 10}
	for i, score := range scores {
		_, err := reportService.AddReport(&services.AddReportRequest{
			StudentID:  uint(10 + i),
			TeacherID:  teacher.ID,
			QuizID:     1,
			QuizTitle:  "Algebra Basics",
			Score:      score,
			TotalMarks: 10,
		})
		require.NoError(t, err)
	}

	analytics, err := reportService.Analytics(teacher.ID, "")
	require.NoError(t, err)
	require.Len(t, analytics, 1)

	row := analytics[0]
	require.Equal(t, "Algebra Basics", row.QuizTitle)
	require.InDelta(t, 6.67, row.AverageScore, 0.01)
	require.Equal(t, 10, row.HighestScore)
	require.Equal(t, 4, row.LowestScore)
	require.Equal(t, 3, row.TotalStudents)
	require.Equal(t, 10, row.TotalMarks)

	filtered, err := reportService.Analytics(teacher.ID, "Other Quiz")
	require.NoError(t, err)
	require.Empty(t, filtered)
}

func itoa(n uint) string {
	b, _ := json.Marshal(n)
	return string(b)
}
